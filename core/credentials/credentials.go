// Package credentials supplies bearer tokens for agent requests. The
// backend accepts anonymous calls, so an empty token is a valid answer.
package credentials

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Provider hands out the bearer token to attach to a run's request. An
// empty token with a nil error means "send the request unauthenticated".
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Static always returns the same token.
type Static string

func (s Static) Token(context.Context) (string, error) {
	return string(s), nil
}

// TokenSource adapts an oauth2.TokenSource (Auth0, client-credentials, any
// standard flow) to the Provider contract.
type TokenSource struct {
	Source oauth2.TokenSource
}

func (t TokenSource) Token(context.Context) (string, error) {
	token, err := t.Source.Token()
	if err != nil {
		return "", fmt.Errorf("error fetching access token: %w", err)
	}
	return token.AccessToken, nil
}
