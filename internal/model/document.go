package model

import "time"

// DocumentDetail describes one uploaded document as reported back to the client.
type DocumentDetail struct {
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadResponse is the success body of the test-upload endpoint.
type UploadResponse struct {
	Success           bool             `json:"success"`
	ApplicationID     string           `json:"applicationId"`
	DocumentsUploaded int              `json:"documentsUploaded"`
	DocumentDetails   []DocumentDetail `json:"documentDetails,omitempty"`
}
