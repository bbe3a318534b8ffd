package services

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fajarjulyana/VideoStreamPro/internal/storage"
)

func fileHeader(name, contentType string) *multipart.FileHeader {
	fh := &multipart.FileHeader{
		Filename: name,
		Header:   make(textproto.MIMEHeader),
	}
	if contentType != "" {
		fh.Header.Set("Content-Type", contentType)
	}
	return fh
}

func TestResolveMimeType(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        string
	}{
		{"header wins", "clip.webm", "video/mp4", "video/mp4"},
		{"header normalized to lowercase", "clip.mp4", "Video/MP4", "video/mp4"},
		{"parameters stripped", "clip.webm", "video/webm; codecs=vp9", "video/webm"},
		{"falls back to extension", "clip.ogv", "", "video/ogg"},
		{"unknown extension", "clip.mov", "", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveMimeType(fileHeader(tt.filename, tt.contentType))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMimeTypeFromFilename(t *testing.T) {
	assert.Equal(t, "video/mp4", MimeTypeFromFilename("a.mp4"))
	assert.Equal(t, "video/webm", MimeTypeFromFilename("a.WEBM"))
	assert.Equal(t, "image/jpeg", MimeTypeFromFilename("a.jpeg"))
	assert.Equal(t, "application/octet-stream", MimeTypeFromFilename("a"))
	assert.Equal(t, "application/octet-stream", MimeTypeFromFilename("a.exe"))
}

func TestGenerateStorageName(t *testing.T) {
	name := generateStorageName("My Holiday Video.MP4")
	assert.True(t, storage.ValidKey(name), "generated name %q must be a valid key", name)
	assert.Contains(t, name, ".mp4")
	assert.NotContains(t, name, "Holiday")

	// Hostile extensions are dropped rather than sanitized.
	name = generateStorageName("weird.name/../x.sh{evil}")
	assert.True(t, storage.ValidKey(name), "generated name %q must be a valid key", name)
	assert.NotContains(t, name, "/")

	// Two calls never collide on the random suffix.
	assert.NotEqual(t, generateStorageName("a.mp4"), generateStorageName("a.mp4"))
}
