package cli

import (
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
		expectedErr   error
	}{
		{name: "successful read", input: "which invoice first?\n", expectedValue: "which invoice first?"},
		{name: "extra whitespace", input: "  urgent  \n", expectedValue: "urgent"},
		{name: "empty line", input: "\n", expectedValue: ""},
		{name: "last line without newline", input: "quit", expectedValue: "quit"},
		{name: "end of input", input: "", expectedErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLineReader(strings.NewReader(tt.input))
			got, err := lr.ReadLine(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, got)
		})
	}
}

func TestLineReader_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	lr := NewLineReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := lr.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestLineReader_ReadQuestionSkipsBlankLines(t *testing.T) {
	lr := NewLineReader(strings.NewReader("\n   \nwhat is overdue?\nnext\n"))
	ctx := context.Background()

	q, err := lr.ReadQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "what is overdue?", q)

	q, err = lr.ReadQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next", q)

	_, err = lr.ReadQuestion(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewLineReader_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewLineReader(nil) })
}
