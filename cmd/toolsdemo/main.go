// Command toolsdemo runs the demo toolkit against a streamed model response.
//
// Usage:
//
//	toolsdemo                      Replay a canned, fragmented stream offline.
//	ANTHROPIC_API_KEY=... toolsdemo -live
//
// Flags:
//
//	-live            Query the Anthropic API instead of the canned stream
//	-model string    Model ID (default: client default)
//	-api-key string  API key (overrides ANTHROPIC_API_KEY)
//	-verbose         Enable debug logging
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwojcik/toolstream"
	"github.com/mwojcik/toolstream/anthropic"
	"github.com/mwojcik/toolstream/mock"
	"github.com/mwojcik/toolstream/toolkit"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "toolsdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		live    = flag.Bool("live", false, "Query the Anthropic API instead of the canned stream")
		model   = flag.String("model", "", "Model ID")
		apiKey  = flag.String("api-key", "", "API key (overrides ANTHROPIC_API_KEY)")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry := toolstream.NewRegistry(toolstream.WithValidation())
	if err := toolkit.Register(registry); err != nil {
		return err
	}

	src, err := openSource(ctx, *live, *apiKey, *model, registry)
	if err != nil {
		return err
	}
	defer src.Close()

	processor := toolstream.NewProcessor(registry,
		toolstream.WithLogger(logger),
		toolstream.WithTextFunc(func(_ int, text string) {
			fmt.Println(textStyle.Render(text))
		}),
	)

	outcomes, err := processor.Process(ctx, src)
	render(outcomes)
	if err != nil {
		return fmt.Errorf("run incomplete (%d outcome(s) finalized): %w", len(outcomes), err)
	}
	return nil
}

func openSource(ctx context.Context, live bool, apiKey, model string, registry *toolstream.Registry) (toolstream.Source, error) {
	if !live {
		return cannedSource(), nil
	}
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("-live requires an API key (flag -api-key or ANTHROPIC_API_KEY)")
	}
	client := anthropic.New(apiKey)
	return client.Stream(ctx, anthropic.Request{
		Model: model,
		Messages: []anthropic.Message{
			{Role: "user", Content: "Can you generate a character for a fantasy story? Maybe a young adult wizard."},
			{Role: "user", Content: "Now roll some dice for me - how about 3d20?"},
			{Role: "user", Content: "Give me an interesting story prompt for a science fiction story."},
		},
		Tools:      registry.Tools(),
		ToolChoice: "any",
	})
}

// cannedSource replays a response with one text block and three tool calls,
// their argument text split across several deltas.
func cannedSource() toolstream.Source {
	return mock.Script(
		toolstream.EventMessageStart{},
		toolstream.EventBlockStart{Index: 0, Kind: toolstream.BlockText},
		toolstream.EventBlockDelta{Index: 0, Text: "Rolling up a character "},
		toolstream.EventBlockDelta{Index: 0, Text: "and some dice."},
		toolstream.EventBlockStop{Index: 0},
		toolstream.EventBlockStart{Index: 1, Kind: toolstream.BlockToolCall, ToolName: "generate_character_profile", ToolCallID: "toolu_01"},
		toolstream.EventBlockDelta{Index: 1, PartialArgs: `{"age_range": "you`},
		toolstream.EventBlockDelta{Index: 1, PartialArgs: `ng_adult", "profe`},
		toolstream.EventBlockDelta{Index: 1, PartialArgs: `ssion": "Wizard"}`},
		toolstream.EventBlockStop{Index: 1},
		toolstream.EventBlockStart{Index: 2, Kind: toolstream.BlockToolCall, ToolName: "roll_dice", ToolCallID: "toolu_02"},
		toolstream.EventBlockDelta{Index: 2, PartialArgs: `{"num_dice"`},
		toolstream.EventBlockDelta{Index: 2, PartialArgs: `: 3, "sides": 20}`},
		toolstream.EventBlockStop{Index: 2},
		toolstream.EventBlockStart{Index: 3, Kind: toolstream.BlockToolCall, ToolName: "generate_story_prompt", ToolCallID: "toolu_03"},
		toolstream.EventBlockDelta{Index: 3, PartialArgs: `{"genre": "Scien`},
		toolstream.EventBlockDelta{Index: 3, PartialArgs: `ce Fiction"}`},
		toolstream.EventBlockStop{Index: 3},
		toolstream.EventMessageDelta{StopReason: "tool_use"},
		toolstream.EventMessageStop{},
	)
}

func render(outcomes []toolstream.ToolOutcome) {
	for _, out := range outcomes {
		fmt.Println(headerStyle.Render("--- " + out.ToolName + " ---"))
		fmt.Printf("%s %s\n", labelStyle.Render("call id:"), out.ToolCallID)
		if out.Input != nil {
			fmt.Printf("%s %s\n", labelStyle.Render("input:  "), compactJSON(out.Input))
		}
		if out.Err != nil {
			fmt.Printf("%s %s\n", labelStyle.Render("error:  "), errorStyle.Render(describeError(out.Err)))
			continue
		}
		fmt.Printf("%s %s\n", labelStyle.Render("result: "), compactJSON(out.Result))
	}
}

// describeError prefixes each per-call error kind so failures read distinctly.
func describeError(err error) string {
	switch {
	case errors.Is(err, toolstream.ErrMalformedArguments):
		return "malformed arguments: " + err.Error()
	case errors.Is(err, toolstream.ErrUnknownTool):
		return "unknown tool: " + err.Error()
	default:
		return "handler failed: " + err.Error()
	}
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
