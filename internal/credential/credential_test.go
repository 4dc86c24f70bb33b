package credential

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrompt_Token(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  abc.def.ghi \n", want: "abc.def.ghi"},
		{name: "no trailing newline", input: "tok", want: "tok"},
		{name: "empty line accepted", input: "\n", want: ""},
		{name: "eof accepted", input: "", want: ""},
		{name: "only first line", input: "first\nsecond\n", want: "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := ConsolePrompt{In: strings.NewReader(tt.input), Out: &out}

			got, err := p.Token(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Open DevTools (F12)")
			assert.Contains(t, out.String(), "Enter your auth token (without 'Bearer '): ")
		})
	}
}

func TestConsolePrompt_ReadError(t *testing.T) {
	p := ConsolePrompt{In: iotest.ErrReader(errors.New("tty closed")), Out: &bytes.Buffer{}}

	_, err := p.Token(context.Background())

	assert.ErrorContains(t, err, "read token: tty closed")
}

func TestConsolePrompt_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	p := ConsolePrompt{In: strings.NewReader("tok\n"), Out: &out}

	_, err := p.Token(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestConsolePrompt_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	p := ConsolePrompt{In: pr, Out: io.Discard}

	errc := make(chan error, 1)
	go func() {
		_, err := p.Token(ctx)
		errc <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Token did not return after cancel")
	}
}

func TestStatic(t *testing.T) {
	got, err := Static("fixed").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}
