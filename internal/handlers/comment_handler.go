package handlers

import (
	"net/http"

	"github.com/fajarjulyana/VideoStreamPro/internal/services"
	"github.com/fajarjulyana/VideoStreamPro/internal/services/dto"
	"github.com/fajarjulyana/VideoStreamPro/internal/validator"
	"github.com/fajarjulyana/VideoStreamPro/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(v *validator.Validator, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    NewBaseHandler(v),
		commentService: commentService,
	}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comments := rg.Group("/videos/:id/comments")
	{
		comments.GET("", h.ListComments)
		comments.POST("", h.CreateComment)
	}
}

// ListComments returns a video's comments, oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	db := h.GetDB(c)

	videoID, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Video not found"))
		return
	}

	comments, err := h.commentService.ListComments(db, videoID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CreateComment records a comment against an existing video.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	db := h.GetDB(c)

	videoID, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("Video not found"))
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(db, videoID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}
