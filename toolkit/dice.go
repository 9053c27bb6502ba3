package toolkit

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/mwojcik/toolstream"
)

// DiceInput are the arguments for the roll_dice tool.
type DiceInput struct {
	NumDice int `json:"num_dice,omitempty" jsonschema:"description=Number of dice to roll"`
	Sides   int `json:"sides,omitempty" jsonschema:"description=Number of sides on each die"`
}

// DiceResult is the result of one roll_dice invocation.
type DiceResult struct {
	Rolls    []int  `json:"rolls"`
	Total    int    `json:"total"`
	NumDice  int    `json:"num_dice"`
	DiceType string `json:"dice_type"`
}

// RollDiceTool returns the schema declaration for roll_dice.
func RollDiceTool() toolstream.Tool {
	return toolstream.Tool{
		Name:        "roll_dice",
		Description: "Simulate dice rolls with configurable parameters",
		InputSchema: toolstream.MustSchemaFor[DiceInput](),
	}
}

// RollDice rolls NumDice dice with Sides sides each. Defaults to 1d6.
func RollDice(_ context.Context, input map[string]any) (any, error) {
	var in DiceInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.NumDice == 0 {
		in.NumDice = 1
	}
	if in.Sides == 0 {
		in.Sides = 6
	}
	if in.NumDice < 0 || in.Sides < 1 {
		return nil, fmt.Errorf("toolkit: invalid dice configuration %dd%d", in.NumDice, in.Sides)
	}

	rolls := make([]int, in.NumDice)
	total := 0
	for i := range rolls {
		rolls[i] = rand.Intn(in.Sides) + 1
		total += rolls[i]
	}

	return DiceResult{
		Rolls:    rolls,
		Total:    total,
		NumDice:  in.NumDice,
		DiceType: fmt.Sprintf("d%d", in.Sides),
	}, nil
}
