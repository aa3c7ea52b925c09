package domain

import "io"

// FileUpload is a media file handed from the HTTP layer to a service for
// storage upload
type FileUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}
