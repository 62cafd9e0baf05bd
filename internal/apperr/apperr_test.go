package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		Unexpected:      http.StatusInternalServerError,
		Unauthenticated: http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		NotFound:        http.StatusNotFound,
		Conflict:        http.StatusConflict,
		InvalidArgument: http.StatusBadRequest,
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOf(t *testing.T) {
	require.Equal(t, NotFound, KindOf(New(NotFound, "page not found")))
	require.Equal(t, Unexpected, KindOf(errors.New("raw driver error")))
	require.Equal(t, Unexpected, KindOf(nil))

	wrapped := Wrap(Conflict, "create tenant", errors.New("duplicate key"))
	require.Equal(t, Conflict, KindOf(wrapped))
	require.True(t, IsKind(wrapped, Conflict))
}

func TestMessageNeverLeaksUnexpectedDetail(t *testing.T) {
	internal := errors.New("connection refused 10.0.0.5:27017")
	msg := Message(Wrap(Unexpected, "storage failure", internal))
	require.NotContains(t, msg, "10.0.0.5")

	msg = Message(errors.New("pq: syntax error"))
	require.NotContains(t, msg, "pq:")

	require.Equal(t, "page not found", Message(New(NotFound, "page not found")))
}
