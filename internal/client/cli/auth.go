package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tuktask/internal/client/client"
	"github.com/dmitrijs2005/tuktask/internal/client/session"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name (optional)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	id, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered, user id %s\n", id)
	return nil
}

// Login authenticates and stores the session token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if err := a.tokens.Save(s.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in until %s\n", s.Expires.Local().Format("2006-01-02 15:04"))
	return nil
}

// WhoAmI prints the user of the stored session. A session the server no
// longer accepts is forgotten.
func (a *App) WhoAmI(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	info, err := a.api.Session(ctx, token)
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.tokens.Clear()
		return session.ErrNoSession
	}
	if err != nil {
		return err
	}

	name := info.User.Name
	if name == "" {
		name = "User"
	}
	fmt.Fprintf(a.out, "%s <%s>\n", name, info.User.Email)
	return nil
}

// Logout revokes the stored session and forgets the token. The token is
// dropped locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	token, err := a.tokens.Load()
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	_, signOutErr := a.api.SignOut(ctx, token)
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	if signOutErr != nil {
		return fmt.Errorf("sign out: %w", signOutErr)
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}
