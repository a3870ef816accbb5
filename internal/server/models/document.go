package models

import "time"

const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

// Document describes a project file. The content itself lives in object
// storage under StorageKey.
type Document struct {
	ID          string
	ProjectID   string
	FileName    string
	ContentType string
	StorageKey  string
	// UploadStatus is UploadPending until the client confirms the upload.
	UploadStatus string
	CreatedAt    time.Time
}

// UploadTask hands the client a presigned URL to PUT the document content.
type UploadTask struct {
	Document Document
	URL      string
}
