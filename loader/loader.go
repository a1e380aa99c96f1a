// Package loader reads puzzle descriptions from disk.
//
// The text format is the grid size on the first line followed by one line per
// block kind:
//
//	4
//	1 3x2
//	4 1x1
//
// where "1 3x2" means one block three high and two wide. Files ending in
// .yaml or .yml use the equivalent YAML document:
//
//	grid: 4
//	blocks:
//	  - {shape: 3x2, count: 1}
//	  - {shape: 1x1, count: 4}
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brensch/tiles/game"
)

var ErrInvalidProblem = errors.New("invalid problem")

// Problem is a validated puzzle description.
type Problem struct {
	Name     string
	GridSize int
	Blocks   game.Inventory
}

// Load reads path, choosing the format from its extension.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}

	var p *Problem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		p, err = ParseText(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p, nil
}

// ParseText reads the line-oriented format. Blank lines are ignored.
func ParseText(r io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(r)
	p := &Problem{Blocks: game.Inventory{}}
	haveGrid := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !haveGrid {
			n, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: grid size %q", ErrInvalidProblem, lineNo, line)
			}
			p.GridSize = n
			haveGrid = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"count HxW\", got %q", ErrInvalidProblem, lineNo, line)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: count %q", ErrInvalidProblem, lineNo, fields[0])
		}
		shape, err := ParseShape(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		p.Blocks[shape] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan problem: %w", err)
	}
	if !haveGrid {
		return nil, fmt.Errorf("%w: empty description", ErrInvalidProblem)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

type yamlProblem struct {
	Grid   int `yaml:"grid"`
	Blocks []struct {
		Shape string `yaml:"shape"`
		Count int    `yaml:"count"`
	} `yaml:"blocks"`
}

// ParseYAML reads the YAML form of a description.
func ParseYAML(data []byte) (*Problem, error) {
	var doc yamlProblem
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}

	p := &Problem{GridSize: doc.Grid, Blocks: game.Inventory{}}
	for i, b := range doc.Blocks {
		shape, err := ParseShape(b.Shape)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		p.Blocks[shape] += b.Count
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseShape reads "HxW", for example "2x3".
func ParseShape(s string) (game.Shape, error) {
	hs, ws, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return game.Shape{}, fmt.Errorf("%w: shape %q", ErrInvalidProblem, s)
	}
	h, errH := strconv.Atoi(hs)
	w, errW := strconv.Atoi(ws)
	if errH != nil || errW != nil {
		return game.Shape{}, fmt.Errorf("%w: shape %q", ErrInvalidProblem, s)
	}
	return game.Shape{H: h, W: w}, nil
}

// Validate checks the invariants the transition model relies on.
func (p *Problem) Validate() error {
	if p.GridSize <= 0 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidProblem, p.GridSize)
	}
	for shape, count := range p.Blocks {
		if shape.H <= 0 || shape.W <= 0 {
			return fmt.Errorf("%w: shape %s", ErrInvalidProblem, shape)
		}
		if count < 0 {
			return fmt.Errorf("%w: %d blocks of %s", ErrInvalidProblem, count, shape)
		}
	}
	return nil
}
