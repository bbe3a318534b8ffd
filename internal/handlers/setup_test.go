package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fajarjulyana/VideoStreamPro/internal/app"
	"github.com/fajarjulyana/VideoStreamPro/internal/config"
	"github.com/fajarjulyana/VideoStreamPro/internal/models"
	"github.com/fajarjulyana/VideoStreamPro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	store  storage.Storage
}

// newTestEnv builds a router backed by a throwaway database and upload
// directory. mutate, when non-nil, adjusts the config before wiring.
func newTestEnv(t *testing.T, mutate func(cfg *config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	db, err := app.OpenDatabase(filepath.Join(dir, "test.db"))
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Upload.MaxSize = 100 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"video/mp4", "video/webm", "video/ogg"}
	cfg.Upload.MaxThumbnailSize = 5 * 1024 * 1024
	cfg.Upload.ThumbnailTypes = []string{"image/jpeg", "image/png", "image/webp"}
	if mutate != nil {
		mutate(cfg)
	}

	return &testEnv{
		router: app.SetupRouter(cfg, db, store),
		db:     db,
		store:  store,
	}
}

// seedVideo inserts a catalog record and writes its bytes to storage.
func (e *testEnv) seedVideo(t *testing.T, title, filename, mimeType, content string) *models.Video {
	t.Helper()

	_, err := e.store.Save(context.Background(), filename, strings.NewReader(content))
	require.NoError(t, err)

	video := &models.Video{
		Title:      title,
		Filename:   filename,
		MimeType:   mimeType,
		UploadedAt: time.Now().UTC(),
	}
	require.NoError(t, e.db.Create(video).Error)
	return video
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return e.do(t, http.MethodGet, path, nil, nil)
}

func (e *testEnv) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	return e.do(t, http.MethodPost, path, strings.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// uploadForm builds a multipart body for POST /api/videos.
type uploadForm struct {
	title        string
	omitTitle    bool
	description  string
	fileName     string
	fileType     string
	fileContent  string
	omitFile     bool
	thumbName    string
	thumbType    string
	thumbContent string
}

func (f uploadForm) encode(t *testing.T) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if !f.omitTitle {
		require.NoError(t, mw.WriteField("title", f.title))
	}
	if f.description != "" {
		require.NoError(t, mw.WriteField("description", f.description))
	}

	if !f.omitFile {
		part, err := createFormFile(mw, "video", f.fileName, f.fileType)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.fileContent))
		require.NoError(t, err)
	}

	if f.thumbName != "" {
		part, err := createFormFile(mw, "thumbnail", f.thumbName, f.thumbType)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.thumbContent))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// createFormFile is mw.CreateFormFile with a controllable Content-Type.
func createFormFile(mw *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return mw.CreatePart(h)
}

func (e *testEnv) upload(t *testing.T, form uploadForm) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := form.encode(t)
	return e.do(t, http.MethodPost, "/api/videos", body,
		map[string]string{"Content-Type": contentType})
}

func (e *testEnv) videoCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.Video{}).Count(&count).Error)
	return count
}
