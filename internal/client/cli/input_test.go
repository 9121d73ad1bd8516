package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(readerFromLines("  alice@example.com  "), "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)
	assert.Equal(t, "Enter email\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("tail")), "p", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "p", io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline(t *testing.T) {
	r := readerFromLines("first line", "  second", "", "after")
	got, err := GetMultiline(r, "Enter note", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "first line\n  second", got)

	rest, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "after\n", rest)
}

func TestGetMultiline_StopsAtEOF(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only")), "Enter note", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(io.Discard)
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"YES", true},
		{"n", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Confirm(readerFromLines(tt.in), "Delete?", io.Discard))
		})
	}

	assert.False(t, Confirm(bufio.NewReader(strings.NewReader("")), "Delete?", io.Discard))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c ,"))
	assert.Empty(t, splitList("  "))
}
