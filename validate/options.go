package validate

import "github.com/go-playground/validator/v10"

// Options bounds the validator's own recursion (input-object cycle
// detection, fragment-cycle detection, field-merging conflict
// detection) separately from the parser's nesting limit. Grounded on parser.Options' same go-playground/validator/v10
// tagged-struct pattern.
type Options struct {
	SchemaRecursionLimit     int `validate:"required,min=1"`
	ExecutableRecursionLimit int `validate:"required,min=1"`
}

// DefaultOptions returns conservative limits, deliberately smaller than
// parser.DefaultOptions's 500.
func DefaultOptions() Options {
	return Options{SchemaRecursionLimit: 100, ExecutableRecursionLimit: 100}
}

var validate = validator.New()

func (o Options) Validate() error { return validate.Struct(o) }
