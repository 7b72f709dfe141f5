// Query selects pixels with boolean expressions such as "r > 200 && b < 50".
package query

import (
	"fmt"
	"image/color"

	"github.com/knetic/govaluate"

	"github.com/anas-shakeel/go-bmpdecode/internal/utils"
)

// Image is the part of a decoded bitmap a query reads.
type Image interface {
	Width() int
	Height() int
	Get(x, y int) color.NRGBA
	IsPaletted() bool
	ColorIndex(x, y int) (int, error)
}

// Match is one pixel accepted by a query.
type Match struct {
	X, Y  int
	Color color.NRGBA
	Index int // Palette index, -1 for RGB images
}

type Query struct {
	expr   *govaluate.EvaluableExpression
	source string
}

// Functions returns the functions usable in expressions.
func Functions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// luma(r, g, b): ITU-R 601-2 luma transform
		"luma": func(args ...interface{}) (interface{}, error) {
			n, err := numbers("luma", args)
			if err != nil {
				return nil, err
			}
			if len(n) != 3 {
				return nil, fmt.Errorf("luma expects 3 arguments (r, g, b), got %d", len(n))
			}
			return float64(n[0]*299/1000 + n[1]*587/1000 + n[2]*114/1000), nil
		},
		// avg(...): integer average of the arguments
		"avg": func(args ...interface{}) (interface{}, error) {
			n, err := numbers("avg", args)
			if err != nil {
				return nil, err
			}
			if len(n) == 0 {
				return nil, fmt.Errorf("avg expects at least 1 argument")
			}
			return float64(utils.Average(n...)), nil
		},
	}
}

// numbers converts govaluate arguments, which are float64, to ints.
func numbers(name string, args []interface{}) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be numeric", name, i+1)
		}
		out[i] = int(f)
	}
	return out, nil
}

// Compile parses expr. Expressions may use x, y, r, g, b, a and index.
func Compile(expr string) (*Query, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, Functions())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return &Query{expr: e, source: expr}, nil
}

func (q *Query) String() string {
	return q.source
}

// Match evaluates the query for one pixel.
func (q *Query) Match(x, y int, c color.NRGBA, index int) (bool, error) {
	params := map[string]interface{}{
		"x":     float64(x),
		"y":     float64(y),
		"r":     float64(c.R),
		"g":     float64(c.G),
		"b":     float64(c.B),
		"a":     float64(c.A),
		"index": float64(index),
	}
	result, err := q.expr.Evaluate(params)
	if err != nil {
		return false, fmt.Errorf("query %q: %w", q.source, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("query %q: result %v is not a boolean", q.source, result)
	}
	return ok, nil
}

// Run evaluates the query over every pixel, top row first. It returns at
// most limit matches (all when limit is 0) and the total match count.
func Run(img Image, q *Query, limit int) ([]Match, int, error) {
	var matches []Match
	var total int

	for y := range img.Height() {
		for x := range img.Width() {
			c := img.Get(x, y)
			index := -1
			if img.IsPaletted() {
				if i, err := img.ColorIndex(x, y); err == nil {
					index = i
				}
			}

			ok, err := q.Match(x, y, c, index)
			if err != nil {
				return matches, total, err
			}
			if !ok {
				continue
			}
			total++
			if limit == 0 || len(matches) < limit {
				matches = append(matches, Match{X: x, Y: y, Color: c, Index: index})
			}
		}
	}
	return matches, total, nil
}
