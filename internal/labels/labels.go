// Package labels compiles user-supplied label expressions into label functions.
//
// An expression sees these variables:
//
//	selected     []string  texts of the selected options
//	count        int       number of selected options
//	allSelected  bool
//	prompt       string
//	allLabel     string
//
// and must evaluate to a string, for example
//
//	allSelected ? "Everything" : count == 0 ? prompt : string(count) + " picked"
package labels

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"dropselect/internal/selection"
)

// ErrEmptyExpression is returned when compiling an empty expression
var ErrEmptyExpression = errors.New("label expression must not be empty")

// Expression is a compiled label expression
type Expression struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks a label expression
func Compile(source string) (*Expression, error) {
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := expr.Compile(source,
		expr.Env(environment(nil, false, "", "")),
		expr.AsKind(reflect.String),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile label expression %q: %w", source, err)
	}
	return &Expression{source: source, program: program}, nil
}

// Source returns the expression text
func (e *Expression) Source() string { return e.source }

// Eval runs the expression against a selection
func (e *Expression) Eval(selected []string, allSelected bool, prompt, allLabel string) (string, error) {
	out, err := expr.Run(e.program, environment(selected, allSelected, prompt, allLabel))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate label expression %q: %w", e.source, err)
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("label expression %q returned %T, want string", e.source, out)
	}
	return s, nil
}

// LabelFunc adapts the expression to the engine's label hook. Evaluation
// errors fall back to the default label rules.
func LabelFunc[T comparable](e *Expression, prompt, allLabel string) selection.LabelFunc[T] {
	fallback := selection.DefaultLabel[T](prompt, allLabel)
	return func(selected []selection.Option[T], allSelected bool) string {
		texts := make([]string, len(selected))
		for i, opt := range selected {
			texts[i] = opt.Text
		}
		label, err := e.Eval(texts, allSelected, prompt, allLabel)
		if err != nil {
			log.Printf("Label expression failed, using default: %v", err)
			return fallback(selected, allSelected)
		}
		return label
	}
}

func environment(selected []string, allSelected bool, prompt, allLabel string) map[string]any {
	if selected == nil {
		selected = []string{}
	}
	return map[string]any{
		"selected":    selected,
		"count":       len(selected),
		"allSelected": allSelected,
		"prompt":      prompt,
		"allLabel":    allLabel,
	}
}
