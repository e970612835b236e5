package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, Images(c))
	return rec
}

func TestImagesStoresFileAndReturnsURL(t *testing.T) {
	orig := Dir
	Dir = t.TempDir()
	defer func() { Dir = orig }()

	body, ct := multipartBody(t, "images", "photo.png", "image/png", []byte("fake-png-bytes"))
	rec := doUpload(t, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.URLs, 1)
	assert.True(t, strings.HasPrefix(resp.URLs[0], "/assets/images/"))
	assert.True(t, strings.HasSuffix(resp.URLs[0], ".png"))

	entries, err := os.ReadDir(Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	saved, err := os.ReadFile(Dir + "/" + entries[0].Name())
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), saved)
}

func TestImagesRejectsNonImage(t *testing.T) {
	orig := Dir
	Dir = t.TempDir()
	defer func() { Dir = orig }()

	body, ct := multipartBody(t, "images", "malware.exe", "application/octet-stream", []byte("nope"))
	rec := doUpload(t, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImagesRequiresFiles(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no files here"))
	require.NoError(t, w.Close())

	rec := doUpload(t, &buf, w.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImagesDefaultsExtension(t *testing.T) {
	orig := Dir
	Dir = t.TempDir()
	defer func() { Dir = orig }()

	body, ct := multipartBody(t, "images", "noext", "image/jpeg", []byte("jpeg-bytes"))
	rec := doUpload(t, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.URLs, 1)
	assert.True(t, strings.HasSuffix(resp.URLs[0], ".jpg"))
}
