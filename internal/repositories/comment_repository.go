package repositories

import (
	"github.com/fajarjulyana/VideoStreamPro/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByVideo(db *gorm.DB, videoID uint) ([]models.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *commentRepository) FindByVideo(db *gorm.DB, videoID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := db.
		Where("video_id = ?", videoID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
