package dto

import (
	"mime/multipart"
)

// UploadVideoRequest carries the multipart fields of a video upload.
// The files are attached by the handler, not bound from the form.
type UploadVideoRequest struct {
	Title       string                `form:"title" validate:"required,notblank,max=200"`
	Description *string               `form:"description"`
	File        *multipart.FileHeader `form:"-" validate:"required"`
	Thumbnail   *multipart.FileHeader `form:"-"`
}
