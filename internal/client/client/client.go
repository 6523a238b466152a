// Package client talks to the notes JSON API on behalf of the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type messageBody struct {
	Msg string `json:"msg"`
}

type NotesClient struct {
	baseURL string
	http    *http.Client
}

func NewNotesClient(baseURL string, timeout time.Duration) *NotesClient {
	return &NotesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *NotesClient) Signup(ctx context.Context, username, password string) (string, error) {
	var out tokenBody
	err := c.do(ctx, http.MethodPost, "/api/user/signup", "", credentials{username, password}, &out)
	return out.Token, err
}

func (c *NotesClient) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenBody
	err := c.do(ctx, http.MethodPost, "/api/user/login", "", credentials{username, password}, &out)
	return out.Token, err
}

func (c *NotesClient) List(ctx context.Context, token string) ([]Note, error) {
	var out []Note
	err := c.do(ctx, http.MethodGet, "/api/notes", token, nil, &out)
	return out, err
}

func (c *NotesClient) Create(ctx context.Context, token, title, content string) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", token, noteBody{title, content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NotesClient) Update(ctx context.Context, token, id, title, content string) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), token, noteBody{title, content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *NotesClient) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), token, nil, nil)
}

func (c *NotesClient) Search(ctx context.Context, token, query string) ([]Note, error) {
	var out []Note
	err := c.do(ctx, http.MethodGet, "/api/notes/search?query="+url.QueryEscape(query), token, nil, &out)
	return out, err
}

// Ping checks the server's health endpoint.
func (c *NotesClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *NotesClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AccessTokenHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var m messageBody
		_ = json.Unmarshal(raw, &m)
		return &APIError{StatusCode: resp.StatusCode, Message: m.Msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
