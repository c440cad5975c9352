package api

import "net/http"

// TokenProvider supplies the current token pair for outgoing requests. It is
// consulted per request so a login or logout mid-session takes effect without
// rebuilding the client. ok is false when no token is held.
type TokenProvider func() (pair TokenPair, ok bool)

// authTransport attaches the authorization header to every request. Keeping
// this at the transport layer means no call site builds auth headers by hand.
type authTransport struct {
	next   http.RoundTripper
	tokens TokenProvider
}

func newAuthTransport(next http.RoundTripper, tokens TokenProvider) http.RoundTripper {
	return &authTransport{next: next, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		if pair, ok := t.tokens(); ok {
			// Clone per RoundTripper contract: the request must not be mutated.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", pair.AuthorizationValue())
		}
	}
	return t.next.RoundTrip(req)
}
