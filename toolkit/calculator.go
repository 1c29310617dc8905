package toolkit

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/tools"
)

var (
	arithmetic = regexp.MustCompile(`^[0-9+\-*/%().\s]+$`)
	number     = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)
)

// Calculator returns a tool that evaluates one arithmetic expression.
// Only digits, + - * / %, parentheses, '.' and spaces are accepted. Numbers
// are evaluated as float64 unless the expression uses %, which requires
// integer operands.
func Calculator() tools.Tool {
	def := protocol.Tool{
		Name:        NameCalculator,
		Description: "计算一个算术表达式，支持 + - * / % 和括号，例如 (3+4)*2。",
	}
	return tools.New(def, func(_ context.Context, input string) (string, error) {
		return Evaluate(input)
	})
}

// Evaluate computes expr and formats the result in its shortest form.
func Evaluate(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", ErrEmptyInput
	}
	if !arithmetic.MatchString(expr) {
		return "", fmt.Errorf("%w: only numbers, + - * / %% and parentheses are allowed", ErrInvalidExpression)
	}

	src := expr
	if !strings.Contains(expr, "%") {
		src = number.ReplaceAllString(expr, "float64($0)")
	}

	i := interp.New(interp.Options{})
	v, err := i.Eval(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return formatValue(v)
}

func formatValue(v reflect.Value) (string, error) {
	if !v.IsValid() {
		return "", ErrInvalidExpression
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", fmt.Errorf("%w: division by zero", ErrInvalidExpression)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	default:
		return "", fmt.Errorf("%w: result is %s", ErrInvalidExpression, v.Kind())
	}
}
