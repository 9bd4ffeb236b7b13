package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed constraint. Field is the JSON path of the
// offending value ("data.salary").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Registry.Bind when a payload does not satisfy its schema.
// Fields keep the declaration order of the request struct.
type Error struct {
	Schema string
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
}

// Schema names a request type. Strict schemas reject unknown JSON fields.
type Schema struct {
	Name   string
	Strict bool
	typ    reflect.Type
}

// NewSchema declares that payloads for name decode into a *T.
func NewSchema[T any](name string, strict bool) Schema {
	return Schema{Name: name, Strict: strict, typ: reflect.TypeOf((*T)(nil))}
}

// Registry maps schema names to request types. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	validate *validator.Validate
	schemas  map[string]Schema
}

func NewRegistry(schemas ...Schema) (*Registry, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)

	byName := make(map[string]Schema, len(schemas))
	for _, s := range schemas {
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("validation: schema %q registered twice", s.Name)
		}
		byName[s.Name] = s
	}
	return &Registry{validate: v, schemas: byName}, nil
}

// Bind decodes body into dst and checks it against the named schema.
// Payload problems come back as *Error; anything else is a programming error.
func (r *Registry) Bind(name string, body io.Reader, dst any) error {
	schema, ok := r.schemas[name]
	if !ok {
		return fmt.Errorf("validation: unknown schema %q", name)
	}
	if reflect.TypeOf(dst) != schema.typ {
		return fmt.Errorf("validation: schema %q binds %v, got %T", name, schema.typ, dst)
	}

	dec := json.NewDecoder(body)
	if schema.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return &Error{Schema: name, Fields: []FieldError{decodeError(err)}}
	}

	if err := r.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		return &Error{Schema: name, Fields: FormatValidationErrors(verrs)}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func decodeError(err error) FieldError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return FieldError{Field: "data", Message: "is required"}
	case errors.As(err, &syntaxErr):
		return FieldError{Field: "body", Message: fmt.Sprintf("is not valid JSON (offset %d)", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		return FieldError{Field: typeErr.Field, Message: "must be of type " + typeName(typeErr.Type)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return FieldError{Field: field, Message: "is not allowed"}
	default:
		return FieldError{Field: "body", Message: err.Error()}
	}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}
