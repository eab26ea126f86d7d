package model

import (
	"time"

	"golang.org/x/oauth2"
)

// Credential is the persisted OAuth token bundle granting read access to the photo library
type Credential struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// NewCredential builds a Credential from an exchanged oauth2 token
func NewCredential(token *oauth2.Token, scopes []string) *Credential {
	return &Credential{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Scopes:       scopes,
	}
}

// Token converts the credential back into an oauth2 token
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    c.TokenType,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// Valid reports whether the credential can still authorize requests at now.
// An expired access token is fine as long as a refresh token is present.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil {
		return false
	}
	if c.RefreshToken != "" {
		return true
	}
	if c.AccessToken == "" {
		return false
	}
	return c.Expiry.IsZero() || now.Before(c.Expiry)
}
