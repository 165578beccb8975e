package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrValidation         = errors.New("datos inválidos")
	ErrRepository         = errors.New("fallo en la capa de persistencia")
	ErrDuplicate          = errors.New("recurso duplicado")
)

// FieldError motivo de rechazo de un campo concreto del payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError agrupa los errores por campo. errors.Is(err, ErrValidation) es verdadero.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error a partir de pares campo/motivo.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// RepositoryError envuelve un fallo del adaptador de persistencia (conexión, SQL, etc.).
// El detalle queda para el log; al cliente solo llega ErrRepository.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrRepository.Error(), e.Op, e.Err)
}

// Unwrap expone tanto ErrRepository como la causa original.
func (e *RepositoryError) Unwrap() []error { return []error{ErrRepository, e.Err} }
