package calculator

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llmutils"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/effective-security/agentexec/tools"
	"github.com/invopop/jsonschema"
)

const ToolName = "Calculator"

// Request represents the tool input.
type Request struct {
	Operation string  `json:"Operation" yaml:"Operation" jsonschema:"title=Operation,description=The arithmetic operation to perform: add | subtract | multiply | divide."`
	A         float64 `json:"A" yaml:"A" jsonschema:"title=A,description=The first operand."`
	B         float64 `json:"B" yaml:"B" jsonschema:"title=B,description=The second operand."`
}

// Result represents the tool output.
type Result struct {
	Value float64 `json:"Value" yaml:"Value" jsonschema:"title=Value,description=The result of the operation."`
}

func (r *Result) GetContent() string {
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Tool performs basic arithmetic, useful in tests and demos where a
// deterministic side-effect-free tool is needed.
type Tool struct {
	name        string
	description string
	funcParams  *jsonschema.Schema
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

func New() (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "A tool that performs basic arithmetic: add, subtract, multiply, divide.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() *jsonschema.Schema {
	return t.funcParams
}

func (t *Tool) Run(_ context.Context, req *Request) (*Result, error) {
	var val float64
	switch req.Operation {
	case "add":
		val = req.A + req.B
	case "subtract":
		val = req.A - req.B
	case "multiply":
		val = req.A * req.B
	case "divide":
		if req.B == 0 {
			return nil, errors.WithMessage(tools.ErrInvalidInput, "division by zero")
		}
		val = req.A / req.B
	default:
		return nil, errors.WithMessagef(tools.ErrInvalidInput, "unsupported operation: %s", req.Operation)
	}
	return &Result{Value: val}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req Request
	if err := ljson.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessagef(tools.ErrInvalidInput, "failed to unmarshal input: %s", err.Error())
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(bs), nil
}
