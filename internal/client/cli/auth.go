package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
)

// getSimpleText, getMultiline and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

func (a *App) askCredentials(args []string) (string, string, error) {
	var userName string
	if len(args) > 0 {
		userName = args[0]
	} else {
		var err error
		if userName, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return "", "", err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return userName, password, nil
}

// Signup creates an account and keeps the returned token.
func (a *App) Signup(ctx context.Context, args []string) error {
	userName, password, err := a.askCredentials(args)
	if err != nil {
		return a.fail(err)
	}

	token, err := a.api.Signup(ctx, userName, password)
	if err != nil {
		return a.fail(err)
	}

	return a.startSession(userName, token, "Account created")
}

func (a *App) Login(ctx context.Context, args []string) error {
	userName, password, err := a.askCredentials(args)
	if err != nil {
		return a.fail(err)
	}

	token, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return a.fail(err)
	}

	return a.startSession(userName, token, "Login successful")
}

// Logout forgets the token locally. Tokens are not revoked server-side;
// it stays valid until it expires.
func (a *App) Logout(_ context.Context, _ []string) error {
	a.token, a.userName = "", ""
	if err := a.tokens.Clear(); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) startSession(userName, token, msg string) error {
	a.token, a.userName = token, userName
	if err := a.tokens.Save(token); err != nil {
		fmt.Fprintf(a.out, "Warning: token not saved: %v\n", err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// fail prints err and returns it. A rejected token ends the session.
func (a *App) fail(err error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn() {
		a.token, a.userName = "", ""
		_ = a.tokens.Clear()
		fmt.Fprintf(a.out, "Error: %v. Please log in again.\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Error: %v\n", err)
	return err
}
