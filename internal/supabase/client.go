package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aaaquest/internal/domain"

	"go.uber.org/zap"
)

const usersPerPage = 200

// Client calls the hosted auth REST API with the service role key
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new auth admin client
func New(baseURL, serviceKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// AuthUser is an account as the auth service reports it
type AuthUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	AppMetadata      map[string]any `json:"app_metadata"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

// Provider returns the sign-in provider, "email" when unknown
func (u *AuthUser) Provider() string {
	if p, ok := u.AppMetadata["provider"].(string); ok && p != "" {
		return p
	}
	return "email"
}

// FullName returns the display name from user metadata
func (u *AuthUser) FullName() string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := u.UserMetadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// AvatarURL returns the avatar from user metadata
func (u *AuthUser) AvatarURL() string {
	for _, key := range []string{"avatar_url", "picture"} {
		if v, ok := u.UserMetadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// ToUser converts to the users table shape
func (u *AuthUser) ToUser() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		AvatarURL: u.AvatarURL(),
		Provider:  u.Provider(),
	}
}

type errorBody struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Code             any    `json:"code"`
}

// GetUser resolves the user behind an access token. Invalid tokens yield domain.ErrUnauthorized.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	var user AuthUser
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail looks the email up through the admin API. Returns nil if no account matches.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", fmt.Sprint(page))
		q.Set("per_page", fmt.Sprint(usersPerPage))

		var body struct {
			Users []AuthUser `json:"users"`
		}
		if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users?"+q.Encode(), "", nil, &body); err != nil {
			return nil, err
		}

		for i := range body.Users {
			if strings.EqualFold(body.Users[i].Email, email) {
				return &body.Users[i], nil
			}
		}

		if len(body.Users) < usersPerPage {
			return nil, nil
		}
	}
}

// UpdateUser patches an account through the admin API
func (c *Client) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*AuthUser, error) {
	payload := map[string]any{}
	if patch.Email != "" {
		payload["email"] = patch.Email
	}
	if patch.Password != "" {
		payload["password"] = patch.Password
	}
	if patch.FullName != "" {
		payload["user_metadata"] = map[string]any{"full_name": patch.FullName}
	}

	var user AuthUser
	if err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(id), "", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do performs a request. An empty bearer means the service key authenticates the call.
// Only a rejected user token maps to domain.ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	userToken := bearer != ""
	if !userToken {
		bearer = c.serviceKey
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	rejected := resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden
	if rejected && userToken {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := firstNonEmpty(eb.Message, eb.ErrorDescription, eb.Error, http.StatusText(resp.StatusCode))
		c.logger.Warn("Auth API request failed",
			zap.String("method", method),
			zap.String("path", strings.SplitN(path, "?", 2)[0]),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		if rejected {
			return errors.New("auth API rejected the service role key: " + msg)
		}
		if resp.StatusCode == http.StatusNotFound {
			return domain.ErrNotFound
		}
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
		}
		return errors.New("auth API error: " + msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
