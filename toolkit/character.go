package toolkit

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mwojcik/toolstream"
)

// CharacterInput are the arguments for the generate_character_profile tool.
type CharacterInput struct {
	Profession string `json:"profession,omitempty" jsonschema:"description=Optional specific profession"`
	AgeRange   string `json:"age_range,omitempty" jsonschema:"enum=child,enum=teen,enum=young_adult,enum=adult,enum=elder,description=Optional age range"`
}

// CharacterProfile is a generated character.
type CharacterProfile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Profession    string   `json:"profession"`
	Age           int      `json:"age"`
	Skills        []string `json:"skills"`
	BackstorySeed string   `json:"backstory_seed"`
}

var (
	professions = []string{"Wizard", "Knight", "Archer", "Merchant", "Scholar", "Blacksmith", "Farmer", "Sailor"}

	ageRanges = map[string][2]int{
		"child":       {6, 12},
		"teen":        {13, 19},
		"young_adult": {20, 35},
		"adult":       {36, 50},
		"elder":       {51, 70},
	}

	firstNames = []string{"Aria", "Kai", "Lyra", "Rowan", "Sage", "Quinn"}
	lastNames  = []string{"Stormwind", "Blackwood", "Silverlight", "Nightshade"}

	allSkills = []string{"Sword Fighting", "Magic", "Archery", "Diplomacy", "Crafting", "Healing", "Navigation", "Survival"}

	backstorySeeds = []string{
		"Orphaned at a young age",
		"Seeking revenge",
		"Driven by curiosity",
		"Following a mysterious prophecy",
		"Escaping a troubled past",
	}
)

// CharacterProfileTool returns the schema declaration for
// generate_character_profile.
func CharacterProfileTool() toolstream.Tool {
	return toolstream.Tool{
		Name:        "generate_character_profile",
		Description: "Generate a random character profile with optional constraints",
		InputSchema: toolstream.MustSchemaFor[CharacterInput](),
	}
}

// GenerateCharacterProfile builds a random character, honoring an optional
// profession and age range. An age range outside the known set is a handler
// error.
func GenerateCharacterProfile(_ context.Context, input map[string]any) (any, error) {
	var in CharacterInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}

	profession := in.Profession
	if profession == "" {
		profession = professions[rand.Intn(len(professions))]
	}

	ageRange := in.AgeRange
	if ageRange == "" {
		keys := make([]string, 0, len(ageRanges))
		for k := range ageRanges {
			keys = append(keys, k)
		}
		ageRange = keys[rand.Intn(len(keys))]
	}
	bounds, ok := ageRanges[ageRange]
	if !ok {
		return nil, fmt.Errorf("toolkit: unknown age range %q", ageRange)
	}
	age := bounds[0] + rand.Intn(bounds[1]-bounds[0]+1)

	return CharacterProfile{
		ID:            uuid.NewString(),
		Name:          firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))],
		Profession:    profession,
		Age:           age,
		Skills:        sample(allSkills, 2+rand.Intn(3)),
		BackstorySeed: backstorySeeds[rand.Intn(len(backstorySeeds))],
	}, nil
}

// sample returns k distinct elements of pool in random order.
func sample(pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]string, 0, k)
	for _, i := range rand.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}
