package client

import (
	"context"
	"time"
)

// Session is a token returned by login.
type Session struct {
	Token   string
	Expires time.Time
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// SessionInfo is the current user as reported by the server.
type SessionInfo struct {
	User    User
	Expires time.Time
}

type Client interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Session(ctx context.Context, token string) (*SessionInfo, error)
	// SignOut returns the route the caller should continue to.
	SignOut(ctx context.Context, token string) (string, error)
}
