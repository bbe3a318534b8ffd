package services

import (
	"errors"
	"strings"
	"time"

	"github.com/fajarjulyana/VideoStreamPro/internal/models"
	"github.com/fajarjulyana/VideoStreamPro/internal/repositories"
	"github.com/fajarjulyana/VideoStreamPro/internal/services/dto"
	"github.com/fajarjulyana/VideoStreamPro/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	// ListComments returns the comments of a video ordered by creation
	// time, oldest first.
	ListComments(db *gorm.DB, videoID uint) ([]models.Comment, error)

	// CreateComment validates and records a comment. The referenced
	// video must exist.
	CreateComment(db *gorm.DB, videoID uint, req *dto.CreateCommentRequest) (*models.Comment, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	videoRepo   repositories.VideoRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	videoRepo repositories.VideoRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

func (s *commentService) ListComments(db *gorm.DB, videoID uint) ([]models.Comment, error) {
	comments, err := s.commentRepo.FindByVideo(db, videoID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

func (s *commentService) CreateComment(db *gorm.DB, videoID uint, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if req.VideoID != nil && *req.VideoID != videoID {
		return nil, apperrors.NewBadRequestError("videoId in body does not match the URL")
	}

	// Check the video up front instead of relying on the foreign key
	// failing inside the insert.
	if _, err := s.videoRepo.FindByID(db, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Video not found")
		}
		return nil, apperrors.InternalError(err)
	}

	comment := &models.Comment{
		VideoID:   videoID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return comment, nil
}
