// Package toolkit provides a small set of self-contained demo tools that
// exercise tool dispatch without external services: dice rolling, character
// profile generation, and story prompt generation.
package toolkit

import (
	"encoding/json"
	"fmt"

	"github.com/mwojcik/toolstream"
)

// Register adds every toolkit tool to the registry.
func Register(r *toolstream.Registry) error {
	for _, reg := range []struct {
		tool    toolstream.Tool
		handler toolstream.Handler
	}{
		{RollDiceTool(), toolstream.HandlerFunc(RollDice)},
		{CharacterProfileTool(), toolstream.HandlerFunc(GenerateCharacterProfile)},
		{StoryPromptTool(), toolstream.HandlerFunc(GenerateStoryPrompt)},
	} {
		if err := r.Register(reg.tool, reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// decode round-trips a parsed argument object into a typed struct.
func decode(input map[string]any, v any) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("toolkit: encoding input: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("toolkit: decoding input: %w", err)
	}
	return nil
}
