package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinhphat/vpmetalbackend/uploads"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)

type stubStorage struct {
	mu       sync.Mutex
	uploaded []string
	failAll  bool
}

func (s *stubStorage) UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader) (*uploads.StoredObject, error) {
	if s.failAll {
		return nil, errors.New("bucket unavailable")
	}
	s.mu.Lock()
	s.uploaded = append(s.uploaded, folder+"/"+fh.Filename)
	s.mu.Unlock()
	return &uploads.StoredObject{
		URL:        "https://cdn.test/" + folder + "/" + fh.Filename,
		ObjectName: folder + "/" + fh.Filename,
		MimeType:   "image/png",
		SizeBytes:  fh.Size,
	}, nil
}

func (s *stubStorage) DeleteObjects(ctx context.Context, objectNames []string) error { return nil }

func (s *stubStorage) ObjectNameFromURL(raw string) (string, error) { return raw, nil }

func multipartUpload(t *testing.T, folder string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if folder != "" {
		require.NoError(t, w.WriteField("folder", folder))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func serveUpload(store uploads.ObjectStorage, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/uploads", UploadImages(store))

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImagesSuccess(t *testing.T) {
	store := &stubStorage{}
	body, ct := multipartUpload(t, "services", map[string][]byte{"hero.png": pngBytes})

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Items []uploads.StoredObject `json:"items"`
		Total int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "https://cdn.test/services/hero.png", resp.Items[0].URL)
	assert.Equal(t, []string{"services/hero.png"}, store.uploaded)
}

func TestUploadImagesDefaultFolder(t *testing.T) {
	store := &stubStorage{}
	body, ct := multipartUpload(t, "", map[string][]byte{"pic.png": pngBytes})

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"misc/pic.png"}, store.uploaded)
}

func TestUploadImagesRejectsBadFolder(t *testing.T) {
	store := &stubStorage{}
	body, ct := multipartUpload(t, "../secrets", map[string][]byte{"pic.png": pngBytes})

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.uploaded)
}

func TestUploadImagesRejectsEmptyForm(t *testing.T) {
	store := &stubStorage{}
	body, ct := multipartUpload(t, "services", nil)

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImagesRejectsNonImage(t *testing.T) {
	store := &stubStorage{}
	body, ct := multipartUpload(t, "services", map[string][]byte{"doc.txt": []byte("just some words")})

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.uploaded)
}

func TestUploadImagesBackendFailure(t *testing.T) {
	store := &stubStorage{failAll: true}
	body, ct := multipartUpload(t, "services", map[string][]byte{"pic.png": pngBytes})

	w := serveUpload(store, body, ct)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
