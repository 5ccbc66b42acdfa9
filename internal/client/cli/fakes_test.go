package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/client/client"
	"github.com/dmitrijs2005/tuktask/internal/client/config"
	"github.com/dmitrijs2005/tuktask/internal/client/session"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	regName, regEmail, regPass string
	regID                      string
	regErr                     error

	loginEmail, loginPass string
	loginSession          *client.Session
	loginErr              error

	sessionToken string
	sessionInfo  *client.SessionInfo
	sessionErr   error

	signOutToken string
	signOutErr   error
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (string, error) {
	f.regName, f.regEmail, f.regPass = name, email, password
	return f.regID, f.regErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*client.Session, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginSession, f.loginErr
}

func (f *fakeAPI) Session(_ context.Context, token string) (*client.SessionInfo, error) {
	f.sessionToken = token
	return f.sessionInfo, f.sessionErr
}

func (f *fakeAPI) SignOut(_ context.Context, token string) (string, error) {
	f.signOutToken = token
	if f.signOutErr != nil {
		return "", f.signOutErr
	}
	return "/auth/login", nil
}

type memTokens struct {
	token   string
	saveErr error
}

func (m *memTokens) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Load() (string, error) {
	if m.token == "" {
		return "", session.ErrNoSession
	}
	return m.token, nil
}

func (m *memTokens) Clear() error {
	m.token = ""
	return nil
}

func newTestApp(api *fakeAPI, tokens *memTokens, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config: cfg,
		api:    api,
		tokens: tokens,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

// stubInputs answers text prompts in order and every password prompt with password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func silenceREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			if s, ok := v.(string); ok {
				parts[i] = s
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

var testExpiry = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
