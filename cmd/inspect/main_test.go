package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/brensch/tiles/game"
)

func TestInspect_Sample(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blocks := game.Inventory{
		{H: 3, W: 2}: 1,
		{H: 2, W: 2}: 1,
		{H: 1, W: 1}: 4,
	}

	var buf bytes.Buffer
	if err := inspect(&buf, logger, 4, blocks); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	out := buf.String()
	t.Logf("\n%s", out)

	for _, want := range []string{
		"═══ AStar0 ═══",
		"═══ AStarH1 ═══",
		"═══ AStarH2 ═══",
		"Applying action: (1x1, 0)",
		"Initial state after the move:\n....\n....\n....\n....\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	if blocks[game.Shape{H: 1, W: 1}] != 4 {
		t.Fatalf("caller inventory modified: %v", blocks)
	}
}

func TestInspect_NoActions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var buf bytes.Buffer
	if err := inspect(&buf, logger, 2, game.Inventory{{H: 3, W: 3}: 1}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if strings.Contains(buf.String(), "Applying action") {
		t.Fatalf("applied an action with none legal:\n%s", buf.String())
	}
}
