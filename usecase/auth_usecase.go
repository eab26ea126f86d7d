package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
	"photo-frame/infrastructure/logger"
)

var (
	ErrSessionExpired      = errors.New("session expired, start the authorization flow again")
	ErrStateMismatch       = errors.New("authorization state does not match this session")
	ErrAuthorizationDenied = errors.New("authorization was not granted")
)

// OAuthConfigLoader builds the OAuth client config for the given redirect URL
type OAuthConfigLoader func(redirectURL string) (*oauth2.Config, error)

// IAuthUsecase drives the authorization handshake for one browser session at a time
type IAuthUsecase interface {
	IsConfigured() bool
	// BeginAuthorization stores a fresh state for sessionID and returns the consent URL
	BeginAuthorization(ctx context.Context, sessionID string) (string, error)
	// CompleteAuthorization redeems the callback parameters and persists the credential
	CompleteAuthorization(ctx context.Context, sessionID string, params url.Values) error
}

type AuthUsecase struct {
	credentials  repository.ICredentialStore
	states       repository.IStateStore
	configLoader OAuthConfigLoader
	redirectURL  string
	stateTTL     time.Duration
	events       repository.IFrameEvents
}

func NewAuthUsecase(credentials repository.ICredentialStore, states repository.IStateStore, configLoader OAuthConfigLoader, redirectURL string) *AuthUsecase {
	return &AuthUsecase{
		credentials:  credentials,
		states:       states,
		configLoader: configLoader,
		redirectURL:  redirectURL,
	}
}

// WithStateTTL limits how long a started authorization may take to come back.
// Zero, the default, keeps a pending state until its callback arrives.
func (u *AuthUsecase) WithStateTTL(ttl time.Duration) *AuthUsecase {
	u.stateTTL = ttl
	return u
}

// WithEvents publishes an event on every successful authorization
func (u *AuthUsecase) WithEvents(events repository.IFrameEvents) *AuthUsecase {
	u.events = events
	return u
}

func (u *AuthUsecase) IsConfigured() bool {
	return u.credentials.Exists()
}

func (u *AuthUsecase) BeginAuthorization(ctx context.Context, sessionID string) (string, error) {
	config, err := u.configLoader(u.redirectURL)
	if err != nil {
		return "", err
	}
	state, err := generateRandomState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	if err := u.states.Save(ctx, sessionID, state, u.stateTTL); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}
	return config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

func (u *AuthUsecase) CompleteAuthorization(ctx context.Context, sessionID string, params url.Values) error {
	expected, err := u.states.Take(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if expected == "" {
		return ErrSessionExpired
	}
	if errParam := params.Get("error"); errParam != "" {
		return fmt.Errorf("%w: %s", ErrAuthorizationDenied, errParam)
	}
	if params.Get("state") != expected {
		return ErrStateMismatch
	}
	code := params.Get("code")
	if code == "" {
		return fmt.Errorf("%w: authorization code missing", ErrAuthorizationDenied)
	}

	config, err := u.configLoader(u.redirectURL)
	if err != nil {
		return err
	}
	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}
	if err := u.credentials.Save(model.NewCredential(token, config.Scopes)); err != nil {
		return err
	}
	logger.GetLogger().WithField("hasRefreshToken", token.RefreshToken != "").Info("Photo library authorized")
	if u.events != nil {
		u.events.Publish(model.FrameEvent{Type: model.FrameEventAuthorized, At: time.Now()})
	}
	return nil
}

func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
