package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all services; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Unset numbers validate as absent; unparseable ones as their raw text.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		n, ok := field.Interface().(domain.Number)
		if !ok || !n.Set {
			return nil
		}
		if n.Valid {
			return n.Value
		}
		return n.Raw()
	}, domain.Number{})

	return v
}

// validateRequest checks req against its validate tags and reports the first
// failing field as an *domain.ErrValidation carrying msg.
func validateRequest(req any, msg string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &domain.ErrValidation{Field: ve[0].Field(), Message: msg}
	}
	return &domain.ErrValidation{Message: msg}
}
