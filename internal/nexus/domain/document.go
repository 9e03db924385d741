package domain

import "time"

type Document struct {
	ID           string
	ProjectID    string
	Filename     string // blob store name
	OriginalName string
	ContentType  string
	SizeBytes    int64
	UploadedBy   string
	UploaderName string // filled by list queries
	UploadedAt   time.Time
}
