package toolkit

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/mwojcik/toolstream"
)

// StoryPromptInput are the arguments for the generate_story_prompt tool.
type StoryPromptInput struct {
	Genre      string `json:"genre,omitempty" jsonschema:"description=Optional story genre"`
	Complexity string `json:"complexity,omitempty" jsonschema:"enum=simple,enum=complex,description=Complexity of the story prompt"`
}

// StoryPrompt is a generated writing exercise.
type StoryPrompt struct {
	Genre                 string   `json:"genre"`
	Complexity            string   `json:"complexity"`
	Prompt                string   `json:"prompt"`
	AdditionalConstraints []string `json:"additional_constraints"`
}

var (
	genres = []string{"Fantasy", "Science Fiction", "Mystery", "Historical Fiction", "Horror", "Romance"}

	promptsByComplexity = map[string][]string{
		"simple": {
			"Write about a character who finds a mysterious object.",
			"Describe a journey that changes everything.",
			"Tell a story that begins with an unexpected arrival.",
		},
		"complex": {
			"Create a narrative that explores the consequences of a single decision across multiple timelines.",
			"Write a story where the protagonist's greatest strength is also their fatal flaw.",
			"Develop a tale that interweaves three seemingly unrelated characters' lives.",
		},
	}

	constraints = []string{
		"Must include a talking animal",
		"Story must be told in reverse chronological order",
		"No dialogue allowed",
		"Include exactly three plot twists",
	}
)

// StoryPromptTool returns the schema declaration for generate_story_prompt.
func StoryPromptTool() toolstream.Tool {
	return toolstream.Tool{
		Name:        "generate_story_prompt",
		Description: "Create a random story writing prompt",
		InputSchema: toolstream.MustSchemaFor[StoryPromptInput](),
	}
}

// GenerateStoryPrompt picks a writing prompt, honoring an optional genre and
// complexity.
func GenerateStoryPrompt(_ context.Context, input map[string]any) (any, error) {
	var in StoryPromptInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}

	genre := in.Genre
	if genre == "" {
		genre = genres[rand.Intn(len(genres))]
	}
	complexity := in.Complexity
	if complexity == "" {
		if rand.Intn(2) == 0 {
			complexity = "simple"
		} else {
			complexity = "complex"
		}
	}
	prompts, ok := promptsByComplexity[complexity]
	if !ok {
		return nil, fmt.Errorf("toolkit: unknown complexity %q", complexity)
	}

	return StoryPrompt{
		Genre:                 genre,
		Complexity:            complexity,
		Prompt:                prompts[rand.Intn(len(prompts))],
		AdditionalConstraints: sample(constraints, rand.Intn(3)),
	}, nil
}
