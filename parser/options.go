package parser

import "github.com/go-playground/validator/v10"

// Options configures recursion and token limits. The struct is
// tag-validated with go-playground/validator/v10 rather than
// hand-rolled range checks.
type Options struct {
	// RecursionLimit bounds grammar nesting depth. Zero is rejected by
	// validation; use DefaultOptions() for the default of 500, since
	// "unlimited recursion" is not a supported configuration: every
	// parseable input must have a bounded stack cost.
	RecursionLimit int `validate:"required,min=1"`
	// TokenLimit bounds the number of non-trivia tokens per parse.
	// Zero means unbounded.
	TokenLimit int `validate:"min=0"`
}

// DefaultOptions returns a recursion limit of 500 and an unbounded
// token limit.
func DefaultOptions() Options {
	return Options{RecursionLimit: 500, TokenLimit: 0}
}

var validate = validator.New()

// Validate reports whether o is a well-formed configuration.
func (o Options) Validate() error {
	return validate.Struct(o)
}
