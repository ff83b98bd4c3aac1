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

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  ann@example.com \nnext\n"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got)
	assert.Equal(t, "Enter email\n> ", out.String())

	got, err = GetSimpleText(in, "Again", &out)
	require.NoError(t, err)
	assert.Equal(t, "next", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret1"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	assert.EqualError(t, err, "boom")
}
