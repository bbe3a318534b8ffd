package repositories

import (
	"strings"

	"github.com/fajarjulyana/VideoStreamPro/internal/models"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(db *gorm.DB, video *models.Video) error
	FindByID(db *gorm.DB, id uint) (*models.Video, error)
	FindByFilename(db *gorm.DB, filename string) (*models.Video, error)
	FindAll(db *gorm.DB) ([]models.Video, error)
	SearchByTitle(db *gorm.DB, query string) ([]models.Video, error)
	IncrementViews(db *gorm.DB, id uint) (int64, error)
}

type videoRepository struct{}

func NewVideoRepository() VideoRepository {
	return &videoRepository{}
}

func (r *videoRepository) Create(db *gorm.DB, video *models.Video) error {
	return db.Create(video).Error
}

func (r *videoRepository) FindByID(db *gorm.DB, id uint) (*models.Video, error) {
	var video models.Video
	if err := db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindByFilename(db *gorm.DB, filename string) (*models.Video, error) {
	var video models.Video
	if err := db.Where("filename = ?", filename).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindAll(db *gorm.DB) ([]models.Video, error) {
	videos := make([]models.Video, 0)
	err := db.Order("uploaded_at ASC, id ASC").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) SearchByTitle(db *gorm.DB, query string) ([]models.Video, error) {
	videos := make([]models.Video, 0)
	pattern := "%" + escapeLike(query) + "%"
	err := db.
		Where("LOWER(title) LIKE LOWER(?) ESCAPE '\\'", pattern).
		Order("uploaded_at ASC, id ASC").
		Find(&videos).Error
	return videos, err
}

// IncrementViews bumps the view counter in a single UPDATE so
// concurrent viewers never lose an increment. Returns the number of
// rows updated; zero means the video does not exist.
func (r *videoRepository) IncrementViews(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return result.RowsAffected, result.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike protects user input used inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
