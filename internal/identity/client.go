package identity

import (
	"context"
	"fmt"
	"strings"

	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
)

// User 身分提供者回傳的使用者
type User struct {
	ID           uuid.UUID              `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// DisplayName 優先使用 user_metadata.display_name，否則取 email 的 local part
func (u *User) DisplayName() string {
	if name, ok := u.UserMetadata["display_name"].(string); ok && name != "" {
		return name
	}
	return EmailLocalPart(u.Email)
}

func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// CodeExchanger 以 OAuth / magic link 的 authorization code 換取 session
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error)
}

// Client 以 auth-go 呼叫 hosted auth 的 token endpoint
type Client struct {
	auth auth.Client
}

// NewClient baseURL 為專案網址，例如 https://xyz.supabase.co；空字串代表未設定
func NewClient(baseURL, anonKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return &Client{}
	}
	return &Client{auth: auth.New("", anonKey).WithCustomAuthURL(baseURL + "/auth/v1")}
}

func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error) {
	if c.auth == nil {
		return nil, apperrors.ErrIdentityNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.auth.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: codeVerifier,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if resp.User.ID == uuid.Nil || resp.User.Email == "" {
		return nil, fmt.Errorf("exchange code: response missing user")
	}

	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User: User{
			ID:           resp.User.ID,
			Email:        resp.User.Email,
			UserMetadata: resp.User.UserMetadata,
		},
	}, nil
}
