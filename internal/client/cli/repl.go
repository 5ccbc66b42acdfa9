package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line until EOF, "exit" or "quit".
// Command errors are printed and the loop continues. Commands prompt on
// the same reader.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		status := "guest"
		if a.isLoggedIn() {
			status = "logged in"
		}
		printlnFn(fmt.Sprintf("tuktask (%s) > ", status))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		err = nil
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn(describe(err))
		}
	}
}
