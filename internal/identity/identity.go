package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

// Common identity errors.
var (
	ErrTokenInvalid = errors.New("identity token invalid")
	ErrSignupFailed = errors.New("identity provider rejected the account")
)

// Admin is the provider-side view of an administrator account.
type Admin struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Client wraps the Casdoor SDK. All administrator authentication is delegated
// to the provider; this backend only exchanges and validates bearer tokens.
type Client struct {
	sdk *casdoorsdk.Client
	org string
}

// NewClient builds an identity client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		sdk: casdoorsdk.NewClient(
			cfg.CasdoorEndpoint,
			cfg.CasdoorClientID,
			cfg.CasdoorClientSecret,
			cfg.CasdoorCertificate,
			cfg.CasdoorOrganization,
			cfg.CasdoorApplication,
		),
		org: cfg.CasdoorOrganization,
	}
}

// ExchangeCode swaps the OAuth authorization code for the provider's bearer
// token. The token is returned to the frontend as-is and validated on every
// subsequent request.
func (c *Client) ExchangeCode(code, state string) (string, time.Time, error) {
	token, err := c.sdk.GetOAuthToken(code, state)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("exchange oauth code: %w", err)
	}
	return token.AccessToken, token.Expiry, nil
}

// ParseToken validates a provider-issued bearer token and extracts the
// account it belongs to.
func (c *Client) ParseToken(token string) (*Admin, error) {
	claims, err := c.sdk.ParseJwtToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return &Admin{
		Username: claims.Name,
		Name:     claims.DisplayName,
		Email:    claims.Email,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// SignUp provisions a new administrator account in the identity provider.
// The provider owns the credential; nothing is stored locally.
func (c *Client) SignUp(username, name, email, password string) error {
	ok, err := c.sdk.AddUser(&casdoorsdk.User{
		Owner:       c.org,
		Name:        username,
		DisplayName: name,
		Email:       email,
		Password:    password,
		IsAdmin:     true,
		CreatedTime: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	if !ok {
		return ErrSignupFailed
	}
	return nil
}
