package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fajarjulyana/VideoStreamPro/internal/config"
	"github.com/fajarjulyana/VideoStreamPro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVideosEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get(t, "/api/videos")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListVideosReturnsAllInUploadOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVideo(t, "First clip", "a.mp4", "video/mp4", "aaa")
	env.seedVideo(t, "Second clip", "b.mp4", "video/mp4", "bbb")
	env.seedVideo(t, "Third clip", "c.webm", "video/webm", "ccc")

	w := env.get(t, "/api/videos")
	require.Equal(t, http.StatusOK, w.Code)

	var videos []models.Video
	decodeJSON(t, w, &videos)
	require.Len(t, videos, 3)
	assert.Equal(t, "First clip", videos[0].Title)
	assert.Equal(t, "Second clip", videos[1].Title)
	assert.Equal(t, "Third clip", videos[2].Title)
}

func TestListVideosSearch(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVideo(t, "Cat compilation", "a.mp4", "video/mp4", "aaa")
	env.seedVideo(t, "Dog tricks", "b.mp4", "video/mp4", "bbb")
	env.seedVideo(t, "More CATS here", "c.mp4", "video/mp4", "ccc")

	w := env.get(t, "/api/videos?search=cat")
	require.Equal(t, http.StatusOK, w.Code)

	var videos []models.Video
	decodeJSON(t, w, &videos)
	require.Len(t, videos, 2)
	assert.Equal(t, "Cat compilation", videos[0].Title)
	assert.Equal(t, "More CATS here", videos[1].Title)
}

func TestListVideosSearchNoMatches(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVideo(t, "Cat compilation", "a.mp4", "video/mp4", "aaa")

	w := env.get(t, "/api/videos?search=zebra")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListVideosSearchTreatsWildcardsLiterally(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVideo(t, "100% pure chaos", "a.mp4", "video/mp4", "aaa")
	env.seedVideo(t, "Ordinary video", "b.mp4", "video/mp4", "bbb")

	w := env.get(t, "/api/videos?search=%25")
	require.Equal(t, http.StatusOK, w.Code)

	var videos []models.Video
	decodeJSON(t, w, &videos)
	require.Len(t, videos, 1)
	assert.Equal(t, "100% pure chaos", videos[0].Title)
}

func TestGetVideoIncrementsViews(t *testing.T) {
	env := newTestEnv(t, nil)
	video := env.seedVideo(t, "Counted", "a.mp4", "video/mp4", "aaa")

	w := env.get(t, fmt.Sprintf("/api/videos/%d", video.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Video
	decodeJSON(t, w, &got)
	assert.Equal(t, video.ID, got.ID)
	assert.Equal(t, int64(1), got.Views)

	w = env.get(t, fmt.Sprintf("/api/videos/%d", video.ID))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &got)
	assert.Equal(t, int64(2), got.Views)
}

func TestGetVideoConcurrentViews(t *testing.T) {
	env := newTestEnv(t, nil)
	video := env.seedVideo(t, "Popular", "a.mp4", "video/mp4", "aaa")

	const viewers = 20
	path := fmt.Sprintf("/api/videos/%d", video.ID)

	var wg sync.WaitGroup
	codes := make([]int, viewers)
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		require.Equal(t, http.StatusOK, code)
	}

	var stored models.Video
	require.NoError(t, env.db.First(&stored, video.ID).Error)
	assert.Equal(t, int64(viewers), stored.Views)
}

func TestGetVideoNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get(t, "/api/videos/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.get(t, "/api/videos/not-a-number")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVideoMissingDoesNotCreateViews(t *testing.T) {
	env := newTestEnv(t, nil)

	env.get(t, "/api/videos/123")

	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideo(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:       "My first upload",
		description: "Recorded on a potato",
		fileName:    "holiday.mp4",
		fileType:    "video/mp4",
		fileContent: "fake mp4 bytes",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var video models.Video
	decodeJSON(t, w, &video)
	assert.NotZero(t, video.ID)
	assert.Equal(t, "My first upload", video.Title)
	require.NotNil(t, video.Description)
	assert.Equal(t, "Recorded on a potato", *video.Description)
	assert.Equal(t, "video/mp4", video.MimeType)
	assert.Equal(t, int64(0), video.Views)

	// The stored name is server-generated, never the client's.
	assert.NotEqual(t, "holiday.mp4", video.Filename)
	assert.True(t, strings.HasSuffix(video.Filename, ".mp4"))

	exists, err := env.store.Exists(context.Background(), video.Filename)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadVideoWithThumbnail(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:        "With cover art",
		fileName:     "clip.webm",
		fileType:     "video/webm",
		fileContent:  "webm bytes",
		thumbName:    "cover.png",
		thumbType:    "image/png",
		thumbContent: "png bytes",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var video models.Video
	decodeJSON(t, w, &video)
	require.NotNil(t, video.ThumbnailPath)
	assert.True(t, strings.HasPrefix(*video.ThumbnailPath, "thumb_"))

	exists, err := env.store.Exists(context.Background(), *video.ThumbnailPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadVideoFallsBackToExtensionMime(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:       "No content type",
		fileName:    "clip.webm",
		fileType:    "",
		fileContent: "webm bytes",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var video models.Video
	decodeJSON(t, w, &video)
	assert.Equal(t, "video/webm", video.MimeType)
}

func TestUploadVideoMissingTitle(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		omitTitle:   true,
		fileName:    "clip.mp4",
		fileType:    "video/mp4",
		fileContent: "bytes",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideoBlankTitle(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:       "   ",
		fileName:    "clip.mp4",
		fileType:    "video/mp4",
		fileContent: "bytes",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideoMissingFile(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:    "No file attached",
		omitFile: true,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideoRejectsDisallowedType(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:       "Not a video",
		fileName:    "report.pdf",
		fileType:    "application/pdf",
		fileContent: "pdf bytes",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideoRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Upload.MaxSize = 10
	})

	w := env.upload(t, uploadForm{
		title:       "Too big",
		fileName:    "huge.mp4",
		fileType:    "video/mp4",
		fileContent: "these bytes exceed the ten byte limit",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}

func TestUploadVideoRejectsBadThumbnailType(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.upload(t, uploadForm{
		title:        "Bad thumb",
		fileName:     "clip.mp4",
		fileType:     "video/mp4",
		fileContent:  "bytes",
		thumbName:    "cover.gif",
		thumbType:    "image/gif",
		thumbContent: "gif bytes",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), env.videoCount(t))
}
