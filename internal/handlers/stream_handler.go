package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/fajarjulyana/VideoStreamPro/internal/logger"
	"github.com/fajarjulyana/VideoStreamPro/internal/services"
	"github.com/fajarjulyana/VideoStreamPro/internal/storage"
	"github.com/fajarjulyana/VideoStreamPro/internal/stream"
	"github.com/fajarjulyana/VideoStreamPro/internal/validator"
	"github.com/fajarjulyana/VideoStreamPro/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// copyBufferSize bounds the memory used per streaming response.
const copyBufferSize = 64 * 1024

type StreamHandler struct {
	*BaseHandler
	videoService services.VideoService
	storage      storage.Storage
}

func NewStreamHandler(v *validator.Validator, videoService services.VideoService, store storage.Storage) *StreamHandler {
	return &StreamHandler{
		BaseHandler:  NewBaseHandler(v),
		videoService: videoService,
		storage:      store,
	}
}

func (h *StreamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stream/:filename", h.StreamVideo)
	rg.GET("/thumbnails/:filename", h.ServeThumbnail)
}

// StreamVideo serves a stored video in full (200) or as a single byte
// range (206). The Content-Type comes from the catalog record, not from
// the file itself.
func (h *StreamHandler) StreamVideo(c *gin.Context) {
	db := h.GetDB(c)
	ctx := c.Request.Context()

	filename := c.Param("filename")
	if !storage.ValidKey(filename) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Video not found"))
		return
	}

	video, err := h.videoService.GetVideoByFilename(db, filename)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, err := h.storage.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("Video not found"))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Type", video.MimeType)

	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
		c.Status(http.StatusOK)
		h.copyStream(c, file, size)
		return
	}

	byteRange, err := stream.ParseRange(rangeHeader, size)
	if err != nil {
		// Both malformed and out-of-window ranges get a 416 carrying the
		// resource size, so players can retry with a valid window.
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", size))
		apperrors.HandleError(c, apperrors.NewRangeNotSatisfiableError("Requested range not satisfiable"))
		return
	}

	if _, err := file.Seek(byteRange.Start, io.SeekStart); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", byteRange.Start, byteRange.End, size))
	c.Header("Content-Length", strconv.FormatInt(byteRange.Length(), 10))
	c.Status(http.StatusPartialContent)
	h.copyStream(c, io.LimitReader(file, byteRange.Length()), byteRange.Length())
}

// ServeThumbnail serves a stored thumbnail image in full.
func (h *StreamHandler) ServeThumbnail(c *gin.Context) {
	ctx := c.Request.Context()

	filename := c.Param("filename")
	if !storage.ValidKey(filename) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Thumbnail not found"))
		return
	}

	file, err := h.storage.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("Thumbnail not found"))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Type", services.MimeTypeFromFilename(filename))
	c.Header("Content-Length", strconv.FormatInt(size, 10))
	c.Status(http.StatusOK)
	h.copyStream(c, file, size)
}

// copyStream pushes src to the client through a fixed-size buffer. A
// short write usually just means the player closed the connection.
func (h *StreamHandler) copyStream(c *gin.Context, src io.Reader, expected int64) {
	buf := make([]byte, copyBufferSize)
	written, err := io.CopyBuffer(c.Writer, src, buf)
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "stream interrupted",
			"written", written,
			"expected", expected,
			"error", err,
		)
	}
}
