package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Knetic/govaluate"
)

// CalculatorArgs are the arguments of the calculator tool.
type CalculatorArgs struct {
	Expression string `json:"expression" jsonschema:"required,description=Arithmetic expression such as '2+2*3'."`
}

// NewCalculatorTool returns the arithmetic tool. Expressions are evaluated
// without any functions or identifiers in scope.
func NewCalculatorTool() Tool {
	return Tool{
		Name:        "calculator",
		Description: "Safely evaluate a simple arithmetic expression like '2+2*3'.",
		Parameters:  CalculatorArgs{},
		Func: func(_ context.Context, raw json.RawMessage) (map[string]interface{}, error) {
			var args CalculatorArgs
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("invalid calculator arguments: %w", err)
				}
			}
			expr, err := govaluate.NewEvaluableExpression(args.Expression)
			if err != nil {
				return nil, fmt.Errorf("invalid expression: %w", err)
			}
			result, err := expr.Evaluate(nil)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate expression: %w", err)
			}
			return map[string]interface{}{"ok": true, "result": result}, nil
		},
	}
}

// DefaultRegistry returns the standard tool set for the agent.
func DefaultRegistry(defaultProvider string) Registry {
	r := Registry{}
	r.Add(NewGoogleTool(defaultProvider))
	r.Add(NewCalculatorTool())
	return r
}
