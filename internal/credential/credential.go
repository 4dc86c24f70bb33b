// Package credential supplies the bearer token used by the upload smoke test.
package credential

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TokenProvider yields the auth token for a single run.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// ConsolePrompt asks the operator to paste a token copied from the browser's DevTools.
// The token is not validated; an empty line yields an empty token.
type ConsolePrompt struct {
	In  io.Reader
	Out io.Writer
}

var instructions = []string{
	"To get your auth token:",
	"1. Open the app in Chrome",
	"2. Open DevTools (F12)",
	"3. Go to Network tab",
	"4. Make any authenticated request",
	"5. Look for 'Authorization: Bearer ...' in request headers",
	"",
}

type readResult struct {
	line string
	err  error
}

// Token prints the instructions and blocks on one line of input. Cancelling ctx
// unblocks it; the pending read is abandoned.
func (p ConsolePrompt) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, line := range instructions {
		fmt.Fprintln(p.Out, line)
	}
	fmt.Fprint(p.Out, "Enter your auth token (without 'Bearer '): ")

	done := make(chan readResult, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("read token: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

// Static returns a fixed token.
type Static string

func (s Static) Token(context.Context) (string, error) {
	return string(s), nil
}
