// Package schema declares and enforces the shape of inbound request
// payloads. A Schema is an explicit list of field descriptors consumed by a
// single generic validation function, so resources declare their payload
// shapes as configuration rather than code.
package schema

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
)

// Field describes one payload field: its name, whether it must be present,
// and any additional constraints applied to its value.
type Field struct {
	Name     string
	Required bool
	Rules    []validation.Rule
}

// Schema is an ordered set of field descriptors. Keys not declared by the
// schema are rejected.
type Schema struct {
	fields []Field
}

// New builds a schema from the given field descriptors.
func New(fields ...Field) Schema {
	return Schema{fields: fields}
}

// Validate checks a raw decoded payload against the schema. On success it
// returns the payload reduced to the declared fields. On failure it returns
// a validation.Errors value enumerating every violated field.
func (s Schema) Validate(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	keys := make([]*validation.KeyRules, 0, len(s.fields))
	for _, f := range s.fields {
		rules := f.Rules
		if f.Required {
			rules = append([]validation.Rule{validation.Required}, rules...)
		}
		kr := validation.Key(f.Name, rules...)
		if !f.Required {
			kr = kr.Optional()
		}
		keys = append(keys, kr)
	}

	if err := validation.Validate(raw, validation.Map(keys...)); err != nil {
		return nil, err
	}

	// Reduce to declared fields only.
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if v, ok := raw[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out, nil
}

// Fields returns the declared field names, in declaration order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return names
}

// Decode maps a validated payload onto a typed value. JSON numbers are
// coerced onto integer fields, matching what encoding/json hands us.
func Decode(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// FieldErrors flattens a validation failure into a field -> reason map for
// the error envelope. Returns nil when err carries no per-field detail.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for name, ferr := range verrs {
		if ferr != nil {
			fields[name] = ferr.Error()
		}
	}
	return fields
}

// PositiveInt validates a JSON number as an integer >= 1.
func PositiveInt() validation.Rule {
	return validation.By(func(v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 1 {
			return errors.New("must be a positive integer")
		}
		return nil
	})
}

// MaxInt validates a JSON number as an integer <= max.
func MaxInt(max int) validation.Rule {
	return validation.By(func(v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n > int64(max) {
			return errors.New("must be no greater than the allowed maximum")
		}
		return nil
	})
}

// toInt accepts the numeric representations encoding/json and friends
// produce. Fractional values are rejected.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.New("must be an integer")
		}
		return int64(n), nil
	default:
		return 0, errors.New("must be an integer")
	}
}
