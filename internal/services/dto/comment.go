package dto

// CreateCommentRequest is the JSON body of a comment post. VideoID is
// optional; when present it must agree with the URL.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,notblank"`
	VideoID *uint  `json:"videoId"`
}
