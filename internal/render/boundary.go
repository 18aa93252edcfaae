package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Boundary is the workspace rectangle parsed from a sidecar file.
// The sidecar format is semicolon-separated:
//
//	1; [[x1,y1],[x2,y2],[x3,y3],[x4,y4]]; <ignored trailing parts>
//
// Part 0 is a binary label that rendering does not use. Part 1 is a
// four-point polygon interpreted as an axis-aligned rectangle: corner 0 is
// the top-left and corner 2 the bottom-right.
type Boundary struct {
	TopLeft     image.Point
	BottomRight image.Point
}

// BoundaryPath returns the sidecar path for an image: same base name with
// the extension replaced by .txt.
func BoundaryPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".txt"
}

// ParseBoundaryFile reads and parses the sidecar file at path.
func ParseBoundaryFile(path string) (*Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read boundary file %s: %w", path, err)
	}
	b, err := ParseBoundary(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBoundary parses the sidecar content. Failures are classified into
// ErrBoundaryParts, ErrBoundarySyntax, and ErrBoundaryShape so callers can
// report a distinct diagnostic per failure type.
func ParseBoundary(content string) (*Boundary, error) {
	parts := strings.Split(content, ";")
	if len(parts) < 2 {
		return nil, ErrBoundaryParts
	}

	points, err := parseNestedNumberList(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	if len(points) != 4 {
		return nil, fmt.Errorf("%w: got %d points", ErrBoundaryShape, len(points))
	}
	for _, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: point has %d coordinates", ErrBoundaryShape, len(p))
		}
	}

	return &Boundary{
		TopLeft:     ipt(points[0][0], points[0][1]),
		BottomRight: ipt(points[2][0], points[2][1]),
	}, nil
}

// parseNestedNumberList parses a two-level bracketed number list like
// [[1,2],[3,4]]. The grammar is fixed and narrow, so this is a small
// dedicated scanner rather than a general expression evaluator.
func parseNestedNumberList(s string) ([][]float64, error) {
	p := &listParser{input: s}

	p.skipSpace()
	if !p.consume('[') {
		return nil, fmt.Errorf("%w: expected '[' at offset %d", ErrBoundarySyntax, p.pos)
	}

	var outer [][]float64
	p.skipSpace()
	if !p.consume(']') {
		for {
			inner, err := p.parseNumberList()
			if err != nil {
				return nil, err
			}
			outer = append(outer, inner)

			p.skipSpace()
			if p.consume(',') {
				continue
			}
			if p.consume(']') {
				break
			}
			return nil, fmt.Errorf("%w: expected ',' or ']' at offset %d", ErrBoundarySyntax, p.pos)
		}
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrBoundarySyntax, p.pos)
	}
	return outer, nil
}

type listParser struct {
	input string
	pos   int
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *listParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) parseNumberList() ([]float64, error) {
	p.skipSpace()
	if !p.consume('[') {
		return nil, fmt.Errorf("%w: expected '[' at offset %d", ErrBoundarySyntax, p.pos)
	}

	var nums []float64
	p.skipSpace()
	if p.consume(']') {
		return nums, nil
	}
	for {
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			return nums, nil
		}
		return nil, fmt.Errorf("%w: expected ',' or ']' at offset %d", ErrBoundarySyntax, p.pos)
	}
}

func (p *listParser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, fmt.Errorf("%w: expected a number at offset %d", ErrBoundarySyntax, start)
	}
	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q at offset %d", ErrBoundarySyntax, p.input[start:p.pos], start)
	}
	return n, nil
}
