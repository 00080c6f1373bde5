package documents

import "time"

type fileDescriptorRequest struct {
	Filename string `json:"filename"`
	FileType string `json:"fileType"`
	Size     int64  `json:"size"`
}

type requestUploadRequest struct {
	Email string                  `json:"email"`
	Files []fileDescriptorRequest `json:"files"`
}

type uploadSlotResponse struct {
	DocumentID   string `json:"documentId"`
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
}

type requestUploadResponse struct {
	Uploads []uploadSlotResponse `json:"uploads"`
}

type documentMetadata struct {
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified string `json:"lastModified"`
}

type confirmedDocumentRequest struct {
	DocumentID string            `json:"documentId"`
	S3Key      string            `json:"s3Key"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Metadata   *documentMetadata `json:"metadata,omitempty"`
}

type confirmUploadRequest struct {
	Email     string                     `json:"email"`
	Documents []confirmedDocumentRequest `json:"documents"`
}

type confirmResultResponse struct {
	DocumentID string `json:"documentId"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type confirmUploadResponse struct {
	Message string                  `json:"message"`
	Results []confirmResultResponse `json:"results"`
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID           string    `json:"id"`
	OwnerEmail   string    `json:"owner_email"`
	Filename     string    `json:"filename"`
	S3Key        string    `json:"s3_key"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type,omitempty"`
	UploadStatus string    `json:"upload_status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type listDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		OwnerEmail:   doc.OwnerEmail,
		Filename:     doc.Filename,
		S3Key:        doc.StorageKey,
		FileSize:     doc.SizeBytes,
		FileType:     doc.FileType,
		UploadStatus: doc.Status,
		Error:        doc.Error,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
