package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "passwd", Sanitize("../../etc/passwd"))
	require.Equal(t, "my_photo_1.png", Sanitize("my photo 1.png"))
	require.Equal(t, "plain.jpg", Sanitize("plain.jpg"))
}

func TestSaveImageRejectsBadExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveImage(makeFileHeader(t, "animation.gif", "gif bytes"))
	require.ErrorIs(t, err, ErrBadExtension)

	_, err = store.SaveImage(makeFileHeader(t, "script.sh", "#!/bin/sh"))
	require.ErrorIs(t, err, ErrBadExtension)
}

func TestSaveImageWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	publicPath, err := store.SaveImage(makeFileHeader(t, "widget.png", "png bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(publicPath, "/static/uploads/"))
	require.True(t, strings.HasSuffix(publicPath, ".png"))

	onDisk := filepath.Join(dir, filepath.Base(publicPath))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, "png bytes", string(data))
}
