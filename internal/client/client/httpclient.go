package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/netx"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type messageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userid"`
	Token   string `json:"token"`
	Expires string `json:"expires"`
	URL     string `json:"url"`
	User    *User  `json:"user"`
}

func (c *HTTPClient) call(ctx context.Context, method, path, token string, body any) (*messageResponse, error) {
	var out messageResponse
	status, err := netx.DoJSON(ctx, c.http, netx.Request{
		Method: method,
		URL:    c.baseURL + path,
		Token:  token,
		Body:   body,
		Out:    &out,
	})
	if status == 0 && err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if status >= 200 && status < 300 {
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, &APIError{Status: status, Message: out.Message, kind: kindFor(status)}
}

func kindFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrAlreadyExists
	default:
		return ErrServer
	}
}

func parseExpires(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad expires %q: %w", s, err)
	}
	return t, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	out, err := c.call(ctx, http.MethodPost, "/api/auth/register", "", body)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Session, error) {
	out, err := c.call(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	exp, err := parseExpires(out.Expires)
	if err != nil {
		return nil, err
	}
	return &Session{Token: out.Token, Expires: exp}, nil
}

func (c *HTTPClient) Session(ctx context.Context, token string) (*SessionInfo, error) {
	out, err := c.call(ctx, http.MethodGet, "/api/auth/session", token, nil)
	if err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: session response without user", ErrServer)
	}
	exp, err := parseExpires(out.Expires)
	if err != nil {
		return nil, err
	}
	return &SessionInfo{User: *out.User, Expires: exp}, nil
}

func (c *HTTPClient) SignOut(ctx context.Context, token string) (string, error) {
	out, err := c.call(ctx, http.MethodPost, "/api/auth/signout", token, nil)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}
