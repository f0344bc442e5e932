package services

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind klassifiziert Service-Fehler für die Transportschicht.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
)

// Error ist der Fehlertyp aller Service-Methoden. Die ursprüngliche Ursache
// bleibt über Unwrap erreichbar.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest erstellt einen Fehler für ungültige Eingaben.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NotFound erstellt einen Fehler für fehlende Datensätze oder Cache-Einträge.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict erstellt einen Fehler für Eindeutigkeitsverletzungen.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal erstellt einen Fehler für alles Übrige.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// KindOf liefert die Fehlerklasse; unbekannte Fehler gelten als Internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// HTTPStatus bildet die Fehlerklasse auf einen HTTP-Status ab.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// rethrow versieht einen Fehler mit dem Methoden-Tag. Eine bereits bekannte
// Fehlerklasse bleibt erhalten, GORM-Fehler werden übersetzt, alles andere
// wird zu Internal.
func rethrow(method string, err error) error {
	message := fmt.Sprintf("service error: method - %s", method)

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return &Error{Kind: svcErr.Kind, Message: message, Err: err}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: message, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: message, Err: err}
	}
	return &Error{Kind: KindInternal, Message: message, Err: err}
}
