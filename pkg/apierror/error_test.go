package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_String(t *testing.T) {
	if got := BadRequest("unknown command").Error(); got != "[400] unknown command" {
		t.Errorf("unexpected %q", got)
	}
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("routing: %w", BadRequest("unknown command"))

	e, ok := From(wrapped)
	if !ok || e.Code != http.StatusBadRequest || e.Message != "unknown command" {
		t.Errorf("expected wrapped 400, got %+v ok=%v", e, ok)
	}

	e, ok = From(errors.New("boom"))
	if ok || e.Code != http.StatusInternalServerError || e.Message != "internal error" {
		t.Errorf("expected generic 500, got %+v ok=%v", e, ok)
	}
}

func TestConstructors(t *testing.T) {
	if Unauthorized("x").Code != http.StatusUnauthorized {
		t.Error("Unauthorized code")
	}
	if Internal("x").Code != http.StatusInternalServerError {
		t.Error("Internal code")
	}
	if New(418, "teapot").Code != 418 {
		t.Error("New code")
	}
}
