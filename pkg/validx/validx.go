// Package validx validates JSON request bodies against a schema reflected
// from the Go type they decode into.
package validx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

var (
	// ErrInvalidBody is returned when the body is not a JSON document.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrValidation is returned when the body does not satisfy the schema.
	ErrValidation = errors.New("validation failed")
)

// FieldError is one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validator decodes and validates request bodies of type T. Unknown
// properties are allowed and dropped on decode.
type Validator[T any] struct {
	schema *jschema.Schema
	raw    []byte
}

// For reflects and compiles the schema for T. It fails only when the struct
// tags produce an invalid schema.
func For[T any]() (*Validator[T], error) {
	r := jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}

	var zero T
	schema := r.ReflectFromType(reflect.TypeOf(zero))

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	doc, err := jschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator[T]{schema: sch, raw: raw}, nil
}

// MustFor is For for package-level validators.
func MustFor[T any]() *Validator[T] {
	v, err := For[T]()
	if err != nil {
		panic(err)
	}
	return v
}

// Schema returns the reflected JSON schema document.
func (v *Validator[T]) Schema() []byte { return v.raw }

// Decode reads one JSON document from r, validates it and decodes it into T.
func (v *Validator[T]) Decode(r io.Reader) (T, error) {
	var out T

	body, err := io.ReadAll(r)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	inst, err := jschema.UnmarshalJSON(strings.NewReader(string(body)))
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if err := v.schema.Validate(inst); err != nil {
		var ve *jschema.ValidationError
		if errors.As(err, &ve) {
			return out, toValidationError(ve)
		}
		return out, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return out, nil
}

func toValidationError(ve *jschema.ValidationError) *ValidationError {
	var fields []FieldError
	var walk func(e *jschema.ValidationError)
	walk = func(e *jschema.ValidationError) {
		if req, ok := e.ErrorKind.(*kind.Required); ok {
			for _, m := range req.Missing {
				fields = append(fields, FieldError{
					Field:   fieldName(append(slices.Clone(e.InstanceLocation), m)),
					Message: "is required",
				})
			}
			return
		}
		if len(e.Causes) == 0 {
			fields = append(fields, FieldError{
				Field:   fieldName(e.InstanceLocation),
				Message: leafMessage(e),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &ValidationError{Fields: fields}
}

func fieldName(loc []string) string {
	if len(loc) == 0 {
		return "body"
	}
	return strings.Join(loc, ".")
}

// leafMessage renders the violation without the schema and instance
// locations ValidationError.Error adds.
func leafMessage(e *jschema.ValidationError) string {
	out := e.BasicOutput()
	if out == nil {
		return e.Error()
	}
	if out.Error != nil {
		return fmt.Sprint(out.Error)
	}
	for _, u := range out.Errors {
		if u.Error != nil {
			return fmt.Sprint(u.Error)
		}
	}
	return e.Error()
}
