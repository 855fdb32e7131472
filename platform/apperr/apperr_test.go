package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad field"), http.StatusBadRequest},
		{BadRequest("bad body"), http.StatusBadRequest},
		{Conflict("already exists"), http.StatusConflict},
		{Forbidden("paid only"), http.StatusForbidden},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Internal("broken invariant"), http.StatusInternalServerError},
		{Upstream("model unavailable", errors.New("timeout")), http.StatusBadGateway},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	base := Upstream("vision unavailable", errors.New("rpc error"))
	wrapped := fmt.Errorf("annotate image: %w", base)

	if !Is(wrapped, KindUpstream) {
		t.Fatal("expected wrapped upstream error to match its kind")
	}
	if Is(wrapped, KindNotFound) {
		t.Fatal("unexpected kind match")
	}
	if Is(errors.New("plain"), KindUpstream) {
		t.Fatal("plain errors must not match a kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindUpstream, "speech transcription failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
}
