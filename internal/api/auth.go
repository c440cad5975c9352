package api

import "context"

// TokenPair is the credential the backend issues on login/register.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthorizationValue renders the pair as an Authorization header value.
func (t TokenPair) AuthorizationValue() string {
	return t.TokenType + " " + t.AccessToken
}

// User is the authenticated account as reported by /auth/me.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Credentials are the inputs to login and register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil, nil)
}

// Register creates an account and returns its token pair.
func (c *Client) Register(ctx context.Context, creds Credentials) (TokenPair, error) {
	var tokens TokenPair
	err := c.postJSON(ctx, "/auth/register", creds, &tokens)
	return tokens, err
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var tokens TokenPair
	err := c.postJSON(ctx, "/auth/login", creds, &tokens)
	return tokens, err
}

// Me resolves the current user from the attached token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.getJSON(ctx, "/auth/me", nil, &user)
	return user, err
}
