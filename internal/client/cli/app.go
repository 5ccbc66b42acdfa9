package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tuktask/internal/buildinfo"
	"github.com/dmitrijs2005/tuktask/internal/client/client"
	"github.com/dmitrijs2005/tuktask/internal/client/config"
	"github.com/dmitrijs2005/tuktask/internal/client/session"
	"github.com/dmitrijs2005/tuktask/internal/flagx"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// TokenStore persists the session token between invocations.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

type App struct {
	config *config.Config
	api    client.Client
	tokens TokenStore
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	tokens, err := session.NewStore(c.SessionDir)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		tokens: tokens,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	_, err := a.tokens.Load()
	return err == nil
}

// Exec runs the command named in args, or the interactive prompt when
// there is none, and returns the process exit status.
func (a *App) Exec(ctx context.Context, args []string) int {
	cmds := flagx.Positional(args, config.FlagsWithValues)
	if len(cmds) == 0 {
		fmt.Fprintln(a.out, "TukTask CLI (type 'help' for commands)")
		runREPL(ctx, a, a.reader)
		return ExitOK
	}

	run, ok := a.command(cmds[0])
	if !ok {
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmds[0])
		a.usage()
		return ExitUsage
	}
	if err := run(ctx); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return ExitError
	}
	return ExitOK
}

func (a *App) command(name string) (func(context.Context) error, bool) {
	switch name {
	case "register":
		return a.Register, true
	case "login":
		return a.Login, true
	case "whoami":
		return a.WhoAmI, true
	case "logout":
		return a.Logout, true
	case "help":
		return func(context.Context) error { a.usage(); return nil }, true
	case "version":
		return func(context.Context) error { buildinfo.PrintBuildData(a.out); return nil }, true
	}
	return nil, false
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: tuktask [-a server-url] [-t timeout] [-c config.json] <register|login|whoami|logout|version|help>")
}

// describe turns API errors into one line for the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, session.ErrNoSession):
		return "Not logged in"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	}
	return "Error: " + err.Error()
}
