package handlers

import (
	"net/http"

	"github.com/fajarjulyana/VideoStreamPro/internal/logger"
	"github.com/fajarjulyana/VideoStreamPro/internal/services"
	"github.com/fajarjulyana/VideoStreamPro/internal/services/dto"
	"github.com/fajarjulyana/VideoStreamPro/internal/validator"
	"github.com/fajarjulyana/VideoStreamPro/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	*BaseHandler
	videoService services.VideoService
}

func NewVideoHandler(v *validator.Validator, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  NewBaseHandler(v),
		videoService: videoService,
	}
}

func (h *VideoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	videos := rg.Group("/videos")
	{
		videos.GET("", h.ListVideos)
		videos.POST("", h.UploadVideo)
		videos.GET("/:id", h.GetVideo)
	}
}

// ListVideos returns the catalog, optionally filtered by ?search=.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	db := h.GetDB(c)

	videos, err := h.videoService.ListVideos(db, c.Query("search"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// GetVideo returns one video and counts the request as a view.
func (h *VideoHandler) GetVideo(c *gin.Context) {
	db := h.GetDB(c)

	id, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Video not found"))
		return
	}

	video, err := h.videoService.GetVideo(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// UploadVideo accepts a multipart form with a required "video" file,
// a required title and optional description and thumbnail.
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	db := h.GetDB(c)
	ctx := c.Request.Context()

	req := &dto.UploadVideoRequest{
		Title: c.PostForm("title"),
	}
	if desc, ok := c.GetPostForm("description"); ok {
		req.Description = &desc
	}

	file, err := c.FormFile("video")
	if err != nil {
		logger.CtxWithError(ctx, "Missing video file in upload", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("No video file provided"))
		return
	}
	req.File = file

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		req.Thumbnail = thumb
	}

	if !h.Validate(c, req) {
		return
	}

	video, err := h.videoService.UploadVideo(ctx, db, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(ctx, "Video uploaded", "id", video.ID, "filename", video.Filename)
	c.JSON(http.StatusCreated, video)
}
