package client

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// authTransport decorates every request with the current bearer token and a
// request id.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if token := t.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	} else {
		req.Header.Del(common.AuthorizationHeaderName)
	}

	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	return t.base.RoundTrip(req)
}
