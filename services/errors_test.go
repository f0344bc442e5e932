package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestRethrowTranslatesGormErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"anything else", errors.New("connection reset"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rethrow("TestMethod", tt.err)
			if KindOf(err) != tt.want {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), tt.want)
			}
			if !strings.Contains(err.Error(), "service error: method - TestMethod") {
				t.Errorf("message should name the method, got %q", err.Error())
			}
			if !errors.Is(err, tt.err) {
				t.Error("original error must stay unwrappable")
			}
		})
	}
}

func TestRethrowPreservesServiceKind(t *testing.T) {
	err := rethrow("Outer", BadRequest("invalid filter params"))
	if KindOf(err) != KindBadRequest {
		t.Errorf("KindOf() = %v, want KindBadRequest", KindOf(err))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
