// Package cli is an interactive shell over the notes API.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
)

type API interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	List(ctx context.Context, token string) ([]client.Note, error)
	Create(ctx context.Context, token, title, content string) (*client.Note, error)
	Update(ctx context.Context, token, id, title, content string) (*client.Note, error)
	Delete(ctx context.Context, token, id string) error
	Search(ctx context.Context, token, query string) ([]client.Note, error)
	Ping(ctx context.Context) error
}

type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type App struct {
	config   *config.Config
	api      API
	tokens   TokenStore
	token    string
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	tokens := NewFileTokenStore(c.TokenFile)
	token, err := tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("error reading token file: %w", err)
	}

	return &App{
		config: c,
		api:    client.NewNotesClient(c.ServerURL, c.RequestTimeout),
		tokens: tokens,
		token:  token,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophnotes CLI (type 'help' for commands)")

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := a.api.Ping(pingCtx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	switch {
	case a.userName != "":
		return "(" + a.userName + ")"
	case a.isLoggedIn():
		return "(logged in)"
	default:
		return ""
	}
}
