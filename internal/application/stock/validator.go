package stock

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeitaria-api/internal/domain"
)

// Validator valida los payloads de estoque con go-playground/validator y traduce los fallos
// a domain.ValidationError con el nombre JSON de cada campo.
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador con las reglas propias de decimal y notblank.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal se compara como número para gt/gte; el valor exacto sigue siendo decimal.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError si alguna regla falla.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return domain.NewValidationError(fields...)
}

// reason convierte un FieldError en un mensaje legible.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "notblank":
		return "no puede estar vacío"
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "max":
		return fmt.Sprintf("admite como máximo %s caracteres", fe.Param())
	case "datetime":
		return "debe ser una fecha válida con formato AAAA-MM-DD"
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
