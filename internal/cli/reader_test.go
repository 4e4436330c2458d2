package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "successful read",
			input:         "client-id\n",
			expectedValue: "client-id",
		},
		{
			name:          "read with extra whitespace",
			input:         "  client-id  \n",
			expectedValue: "client-id",
		},
		{
			name:          "empty line",
			input:         "\n",
			expectedValue: "",
		},
		{
			name:          "last line without newline",
			input:         "secret",
			expectedValue: "secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))
			result, err := r.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, result)
		})
	}
}

func TestLineReader_EOF(t *testing.T) {
	r := NewLineReader(strings.NewReader(""))
	_, err := r.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_ContextCancellation(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		r := NewLineReader(strings.NewReader("ignored\n"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("canceled during read", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pr.Close() }()
		defer func() { _ = pw.Close() }()

		r := NewLineReader(pr)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := r.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

func TestLineReader_Ask(t *testing.T) {
	r := NewLineReader(strings.NewReader("\nmy-secret\n"))
	var out bytes.Buffer

	got, err := r.Ask(context.Background(), &out, "Client ID", "default-id")
	require.NoError(t, err)
	assert.Equal(t, "default-id", got)
	assert.Contains(t, out.String(), "Client ID [default-id]")

	got, err = r.Ask(context.Background(), &out, "Client secret", "")
	require.NoError(t, err)
	assert.Equal(t, "my-secret", got)
}
