package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'signup'")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return a.fail(errNotLoggedIn)
	}
	return nil
}

func (a *App) List(ctx context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	list, err := a.api.List(ctx, a.token)
	if err != nil {
		return a.fail(err)
	}
	a.printNotes(list)
	return nil
}

func (a *App) Add(ctx context.Context, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, content, err := a.askNote()
	if err != nil {
		return a.fail(err)
	}

	n, err := a.api.Create(ctx, a.token, title, content)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Created note %s\n", n.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.askID(args, "Enter note id to edit")
	if err != nil {
		return a.fail(err)
	}
	title, content, err := a.askNote()
	if err != nil {
		return a.fail(err)
	}

	n, err := a.api.Update(ctx, a.token, id, title, content)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Updated note %s\n", n.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.askID(args, "Enter note id to delete")
	if err != nil {
		return a.fail(err)
	}

	if err := a.api.Delete(ctx, a.token, id); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if query == "" {
		var err error
		if query, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return a.fail(err)
		}
	}

	list, err := a.api.Search(ctx, a.token, query)
	if err != nil {
		return a.fail(err)
	}
	a.printNotes(list)
	return nil
}

func (a *App) askID(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askNote() (string, string, error) {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return "", "", err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return "", "", err
	}
	return title, content, nil
}

func (a *App) printNotes(list []client.Note) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tMODIFIED\tCONTENT")
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.ModifiedAt.Local().Format(time.DateTime), firstLine(n.Content))
	}
	tw.Flush()
}

// firstLine shortens s to its first line, at most 40 runes.
func firstLine(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	r := []rune(line)
	if len(r) > 40 {
		r, cut = r[:40], true
	}
	if cut {
		return string(r) + "…"
	}
	return line
}
