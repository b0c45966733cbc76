//go:build unit || !integration

package closer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	old := log.Logger
	t.Cleanup(func() {
		log.Logger = old
	})
	var b bytes.Buffer
	log.Logger = log.With().Str("foo", "bar").Logger().Output(&b)
	return &b
}

func TestCloseWithLogOnError_noErrors(t *testing.T) {
	b := captureLogs(t)
	CloseWithLogOnError(t.Name(), closer{nil})
	assert.Equal(t, "", b.String())
}

func TestCloseWithLogOnError_logsErrors(t *testing.T) {
	b := captureLogs(t)

	CloseWithLogOnError(t.Name(), closer{fmt.Errorf("error message")})

	var content map[string]string
	require.NoError(t, json.Unmarshal(b.Bytes(), &content))
	assert.Equal(t, "error message", content["error"])
	assert.Contains(t, content["message"], t.Name())
}

func TestCloseWithLogOnError_ignoresAlreadyClosed(t *testing.T) {
	b := captureLogs(t)
	CloseWithLogOnError(t.Name(), closer{os.ErrClosed})
	assert.Equal(t, "", b.String())
}

func TestDrainAndCloseWithLogOnError(t *testing.T) {
	b := captureLogs(t)
	body := &readCloser{Reader: strings.NewReader("unread body")}

	DrainAndCloseWithLogOnError(context.Background(), t.Name(), body)

	assert.True(t, body.closed)
	n, _ := body.Read(make([]byte, 1))
	assert.Zero(t, n, "body should have been drained")
	assert.Equal(t, "", b.String())
}

type closer struct {
	err error
}

func (c closer) Close() error {
	return c.err
}

type readCloser struct {
	io.Reader
	closed bool
}

func (r *readCloser) Close() error {
	r.closed = true
	return nil
}
