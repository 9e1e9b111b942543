package storage

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("calmwave.appspot.com", "articles/1700000000000_a@b.c", "tok")
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/calmwave.appspot.com/o/articles%2F1700000000000_a%40b.c?alt=media&token=tok",
		got)
}

func TestDownloadURLWithoutToken(t *testing.T) {
	got := DownloadURL("b", "profiles/u1/x.png", "")
	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/b/o/profiles%2Fu1%2Fx.png?alt=media", got)
}

type recordingWriter struct {
	bytes.Buffer
	closed bool
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestWriteObjectFinalizesCompleteUpload(t *testing.T) {
	w := &recordingWriter{}
	cancelled := false

	require.NoError(t, writeObject(w, strings.NewReader("image-bytes"), func() { cancelled = true }))
	assert.True(t, w.closed)
	assert.False(t, cancelled)
	assert.Equal(t, "image-bytes", w.String())
}

func TestWriteObjectAbortsOnReadFailure(t *testing.T) {
	w := &recordingWriter{}
	cancelled := false
	readErr := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(readErr))

	err := writeObject(w, r, func() { cancelled = true })
	require.ErrorIs(t, err, readErr)
	assert.True(t, cancelled, "upload context cancelled")
	assert.False(t, w.closed, "truncated object must not be finalized")
}
