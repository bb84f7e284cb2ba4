package validators

import (
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

const (
	// TagGlob accepts strings that filepath.Match can compile.
	TagGlob = "glob"
	// TagLogLevel accepts level names zerolog can parse.
	TagLogLevel = "loglevel"
)

// New creates a validator with the glob and loglevel tags registered.
func New() *Validate {
	validate := validator.New()
	// registration only fails on an empty tag or a nil func
	_ = validate.RegisterValidation(TagGlob, isGlob)
	_ = validate.RegisterValidation(TagLogLevel, isLogLevel)
	return validate
}

func isGlob(fl validator.FieldLevel) bool {
	_, err := filepath.Match(fl.Field().String(), "")
	return err == nil
}

func isLogLevel(fl validator.FieldLevel) bool {
	_, err := zerolog.ParseLevel(fl.Field().String())
	return err == nil
}
