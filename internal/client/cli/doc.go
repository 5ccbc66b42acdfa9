// Package cli provides the TukTask command-line client.
//
// Commands can be given as arguments ("tuktask login") or typed into an
// interactive prompt when no command is given. The session token obtained
// by login is stored under the working directory so later invocations
// reuse it.
//
// Commands:
//   - register: create an account
//   - login: authenticate and store the session token
//   - whoami: show the user of the stored session
//   - logout: revoke the session and forget the token
package cli
