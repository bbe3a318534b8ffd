package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fajarjulyana/VideoStreamPro/internal/config"
	"github.com/fajarjulyana/VideoStreamPro/internal/logger"
	"github.com/fajarjulyana/VideoStreamPro/internal/models"
	"github.com/fajarjulyana/VideoStreamPro/internal/repositories"
	"github.com/fajarjulyana/VideoStreamPro/internal/services/dto"
	"github.com/fajarjulyana/VideoStreamPro/internal/storage"
	"github.com/fajarjulyana/VideoStreamPro/pkg/apperrors"

	"gorm.io/gorm"
)

type VideoService interface {
	// ListVideos returns the catalog ordered by upload time, filtered
	// by a case-insensitive title substring when search is non-empty.
	ListVideos(db *gorm.DB, search string) ([]models.Video, error)

	// GetVideo increments the view counter and returns the
	// post-increment record.
	GetVideo(db *gorm.DB, id uint) (*models.Video, error)

	// GetVideoByFilename resolves a storage key back to its catalog
	// entry. Used by the streaming responder for the MIME lookup.
	GetVideoByFilename(db *gorm.DB, filename string) (*models.Video, error)

	// UploadVideo validates, stores and records a multipart upload.
	UploadVideo(ctx context.Context, db *gorm.DB, req *dto.UploadVideoRequest) (*models.Video, error)
}

// UploadConfig holds the validation limits for the ingestion pipeline.
type UploadConfig struct {
	MaxFileSize      int64
	AllowedTypes     []string
	MaxThumbnailSize int64
	ThumbnailTypes   []string
}

// UploadConfigFrom builds the service limits from the app config.
func UploadConfigFrom(cfg *config.Config) *UploadConfig {
	return &UploadConfig{
		MaxFileSize:      cfg.Upload.MaxSize,
		AllowedTypes:     cfg.Upload.AllowedTypes,
		MaxThumbnailSize: cfg.Upload.MaxThumbnailSize,
		ThumbnailTypes:   cfg.Upload.ThumbnailTypes,
	}
}

type videoService struct {
	videoRepo repositories.VideoRepository
	storage   storage.Storage
	config    *UploadConfig
}

func NewVideoService(
	videoRepo repositories.VideoRepository,
	storage storage.Storage,
	config *UploadConfig,
) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		storage:   storage,
		config:    config,
	}
}

func (s *videoService) ListVideos(db *gorm.DB, search string) ([]models.Video, error) {
	search = strings.TrimSpace(search)

	var (
		videos []models.Video
		err    error
	)
	if search == "" {
		videos, err = s.videoRepo.FindAll(db)
	} else {
		videos, err = s.videoRepo.SearchByTitle(db, search)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return videos, nil
}

func (s *videoService) GetVideo(db *gorm.DB, id uint) (*models.Video, error) {
	// Increment first, in one UPDATE. Zero rows means no such video,
	// and the read below then returns the already-bumped count.
	rows, err := s.videoRepo.IncrementViews(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == 0 {
		return nil, apperrors.NewNotFoundError("Video not found")
	}

	video, err := s.videoRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Video not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return video, nil
}

func (s *videoService) GetVideoByFilename(db *gorm.DB, filename string) (*models.Video, error) {
	video, err := s.videoRepo.FindByFilename(db, filename)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Video not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return video, nil
}

func (s *videoService) UploadVideo(ctx context.Context, db *gorm.DB, req *dto.UploadVideoRequest) (*models.Video, error) {
	mimeType, err := s.validateVideoFile(req.File)
	if err != nil {
		return nil, err
	}

	if req.Thumbnail != nil {
		if err := s.validateThumbnail(req.Thumbnail); err != nil {
			return nil, err
		}
	}

	filename, err := s.storeFile(ctx, req.File, "")
	if err != nil {
		return nil, err
	}

	var thumbnailPath *string
	if req.Thumbnail != nil {
		thumbName, err := s.storeFile(ctx, req.Thumbnail, "thumb_")
		if err != nil {
			s.discard(ctx, filename)
			return nil, err
		}
		thumbnailPath = &thumbName
	}

	video := &models.Video{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Filename:      filename,
		MimeType:      mimeType,
		UploadedAt:    time.Now().UTC(),
		ThumbnailPath: thumbnailPath,
	}

	if err := s.videoRepo.Create(db, video); err != nil {
		// Compensating delete: no record means no stored bytes either.
		s.discard(ctx, filename)
		if thumbnailPath != nil {
			s.discard(ctx, *thumbnailPath)
		}
		return nil, apperrors.InternalError(err)
	}

	return video, nil
}

func (s *videoService) validateVideoFile(file *multipart.FileHeader) (string, error) {
	mimeType := resolveMimeType(file)
	if !containsString(s.config.AllowedTypes, mimeType) {
		return "", apperrors.NewInvalidFileTypeError(mimeType)
	}
	if file.Size > s.config.MaxFileSize {
		return "", apperrors.NewFileTooLargeError(s.config.MaxFileSize)
	}
	return mimeType, nil
}

func (s *videoService) validateThumbnail(file *multipart.FileHeader) error {
	mimeType := resolveMimeType(file)
	if !containsString(s.config.ThumbnailTypes, mimeType) {
		return apperrors.NewInvalidFileTypeError(mimeType)
	}
	if file.Size > s.config.MaxThumbnailSize {
		return apperrors.NewFileTooLargeError(s.config.MaxThumbnailSize)
	}
	return nil
}

// storeFile writes the upload under a fresh generated key and returns
// the key. The key never derives from client input beyond the file
// extension.
func (s *videoService) storeFile(ctx context.Context, file *multipart.FileHeader, prefix string) (string, error) {
	var key string
	for attempt := 0; ; attempt++ {
		key = prefix + generateStorageName(file.Filename)
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !exists {
			break
		}
		if attempt >= 3 {
			return "", apperrors.InternalError(fmt.Errorf("could not allocate a unique storage name"))
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	if _, err := s.storage.Save(ctx, key, src); err != nil {
		s.discard(ctx, key)
		return "", apperrors.InternalError(fmt.Errorf("failed to save file to storage: %w", err))
	}

	return key, nil
}

func (s *videoService) discard(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.Error("failed to discard stored file", "key", key, "error", err)
	}
}

var safeExtPattern = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

func generateStorageName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !safeExtPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), secureRandomString(8), ext)
}

func secureRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}

func resolveMimeType(file *multipart.FileHeader) string {
	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = MimeTypeFromFilename(file.Filename)
	}
	// Strip parameters such as "; codecs=...".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}

var extensionMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".ogv":  "video/ogg",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MimeTypeFromFilename maps a file extension to a MIME type, falling
// back to application/octet-stream.
func MimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := extensionMimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
