package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorWrapsSentinel(t *testing.T) {
	err := New(ErrInvalidQuery, http.StatusBadRequest, "query must not be empty")

	if !errors.Is(err, ErrInvalidQuery) {
		t.Error("AppError must match its sentinel with errors.Is")
	}
	if got := HTTPStatusCode(err); got != http.StatusBadRequest {
		t.Errorf("HTTPStatusCode = %d, want 400", got)
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed")
	}
	if appErr.Message != "query must not be empty" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestHTTPStatusCodeSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidQuery, http.StatusBadRequest},
		{ErrInvalidLimit, http.StatusBadRequest},
		{ErrSourceNotFound, http.StatusNotFound},
		{ErrCorpusUnavailable, http.StatusServiceUnavailable},
		{ErrTimeout, http.StatusServiceUnavailable},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatusCode(tt.err); got != tt.want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatusCodeWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("loading corpus: %w", ErrCorpusUnavailable)
	if got := HTTPStatusCode(err); got != http.StatusServiceUnavailable {
		t.Errorf("wrapped sentinel: HTTPStatusCode = %d, want 503", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrInvalidLimit, http.StatusBadRequest, "limit must be between 1 and %d", 20)
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed")
	}
	if appErr.Message != "limit must be between 1 and 20" {
		t.Errorf("Message = %q", appErr.Message)
	}
}
