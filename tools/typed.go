package tools

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llmutils"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// Func adapts a typed Go function into an ITool. Input decoding is
// tolerant of the loose JSON that models produce, and validation
// failures are reported as ErrInvalidInput so the loop can hand them
// back to the model.
type Func[I any, O any] struct {
	name        string
	description string
	funcParams  *jsonschema.Schema
	validate    bool
	fn          func(context.Context, *I) (*O, error)
}

var _ Tool[struct{}, struct{}] = (*Func[struct{}, struct{}])(nil)

func NewFunc[I any, O any](name, description string, fn func(context.Context, *I) (*O, error)) (*Func[I, O], error) {
	var in I
	sc, err := schema.New(reflect.TypeOf(in))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Func[I, O]{
		name:        name,
		description: description,
		funcParams:  sc.Parameters,
		fn:          fn,
	}, nil
}

func (t *Func[I, O]) WithValidation(validate bool) *Func[I, O] {
	t.validate = validate
	return t
}

func (t *Func[I, O]) Name() string {
	return t.name
}

func (t *Func[I, O]) Description() string {
	return t.description
}

func (t *Func[I, O]) Parameters() *jsonschema.Schema {
	return t.funcParams
}

func (t *Func[I, O]) Run(ctx context.Context, req *I) (*O, error) {
	return t.fn(ctx, req)
}

func (t *Func[I, O]) Call(ctx context.Context, input string) (string, error) {
	var req I
	if err := ljson.Unmarshal(llmutils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithMessagef(ErrInvalidInput, "failed to unmarshal input: %s", err.Error())
	}
	if t.validate {
		if err := validator.New().Struct(&req); err != nil {
			return "", errors.WithMessagef(ErrInvalidInput, "failed to validate input: %s", err.Error())
		}
	}
	out, err := t.fn(ctx, &req)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(bs), nil
}
