// Package validation checks configuration structs with validator/v10 and
// reports failures as coded validation errors.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/listenupapp/reviewaudit/internal/errors"
)

// TagParentDir is the custom tag for paths whose directory must exist.
const TagParentDir = "parentdir"

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields by their yaml tag and knows
// the parentdir rule.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(TagParentDir, parentDirExists)

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION domain error whose
// details map field paths to messages.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "validation failed")
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	names := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := fieldPath(e)
		fieldErrors[field] = friendlyMessage(e)
		names = append(names, field+" "+fieldErrors[field])
	}

	return domainerrors.ValidationWithDetails("invalid configuration: "+strings.Join(names, "; "), fieldErrors)
}

// fieldPath drops the root struct name from the namespace, so
// "Config.input.books" becomes "input.books".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "file":
		return fmt.Sprintf("must be an existing file, got %q", e.Value())
	case TagParentDir:
		return fmt.Sprintf("must be in an existing directory, got %q", e.Value())
	case "oneof":
		return "must be one of: " + e.Param()
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "printascii":
		return "must contain printable ASCII only"
	default:
		return "is invalid"
	}
}

func parentDirExists(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(filepath.Dir(path))
	return err == nil && info.IsDir()
}
