package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "conflict", err: E(KindConflict, "twice"), want: http.StatusConflict},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "unknown", err: E(KindUnknown, "?"), want: http.StatusInternalServerError},
		{name: "wrapped typed", err: fmt.Errorf("load: %w", E(KindNotFound, "missing")), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := Wrap(KindUnavailable, "save session", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(wrapped, cause) = false")
	}
	if got := err.Error(); got != "save session: disk full" {
		t.Fatalf("Error() = %q, want %q", got, "save session: disk full")
	}
	if got := KindOf(err); got != KindUnavailable {
		t.Fatalf("KindOf() = %q, want %q", got, KindUnavailable)
	}
	if Wrap(KindUnavailable, "noop", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
	if got := KindOf(cause); got != KindUnknown {
		t.Fatalf("KindOf(untyped) = %q, want %q", got, KindUnknown)
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " notice.team.invalid ", "bad team")); got != "notice.team.invalid" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "notice.team.invalid")
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("LocalizationKey(nil) = %q, want empty", got)
	}
}
