package services

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match with errors.Is; the public message travels in
// ServiceError.Msg.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// ServiceError is a caller-facing failure with a message safe to show.
type ServiceError struct {
	Kind error
	Msg  string
	Err  error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ServiceError) Is(target error) bool {
	return e != nil && e.Kind == target
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func notFound(msg string) error {
	return &ServiceError{Kind: ErrNotFound, Msg: msg}
}

func conflict(msg string, cause error) error {
	return &ServiceError{Kind: ErrConflict, Msg: msg, Err: cause}
}

func badRequest(msg string) error {
	return &ServiceError{Kind: ErrBadRequest, Msg: msg}
}

// Public messages.
const (
	MsgRutinaNoEncontrada    = "Rutina no encontrada"
	MsgEjercicioNoEncontrado = "Ejercicio no encontrado"
	MsgNombreDuplicado       = "Ya existe una rutina con ese nombre"
	MsgReordenVacio          = "Debe enviar al menos un ejercicio"
	MsgReordenAjeno          = "Algún ejercicio no pertenece a la rutina"
	MsgFormatoNoSoportado    = "Formato de exportación no soportado"
)
