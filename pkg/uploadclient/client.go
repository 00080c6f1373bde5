// Package uploadclient drives the two-phase document upload protocol:
// request presigned slots from the API, PUT the bytes directly to object
// storage, then confirm per-file outcomes so no record is left pending.
package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// File is one local file queued for upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// Slot is one upload grant issued by the API.
type Slot struct {
	DocumentID   string `json:"documentId"`
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
}

// States of one file during an upload attempt.
const (
	StateQueued    = "queued"
	StateUploading = "uploading"
	StateUploaded  = "uploaded"
	StateFailed    = "failed"
)

// FileResult is the final client-side view of one file's attempt,
// including the server's verdict from the confirm phase.
type FileResult struct {
	Filename     string
	DocumentID   string
	State        string
	ServerStatus string
	Err          error
}

// ProgressFunc receives per-file progress in the range 0..100.
type ProgressFunc func(filename string, percent int)

// UploadError attributes a failure to a specific file where possible.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	if e.Filename == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Err.Error())
}

func (e *UploadError) Unwrap() error { return e.Err }

// Client talks to the documents API and to object storage.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New constructs a Client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

type requestUploadBody struct {
	Email string           `json:"email"`
	Files []fileDescriptor `json:"files"`
}

type fileDescriptor struct {
	Filename string `json:"filename"`
	FileType string `json:"fileType"`
	Size     int64  `json:"size"`
}

type requestUploadReply struct {
	Uploads []Slot `json:"uploads"`
}

// RequestSlots asks the API for one presigned slot per file.
func (c *Client) RequestSlots(ctx context.Context, email string, files []File) ([]Slot, error) {
	descriptors := make([]fileDescriptor, 0, len(files))
	for _, f := range files {
		descriptors = append(descriptors, fileDescriptor{
			Filename: f.Name,
			FileType: f.ContentType,
			Size:     f.Size,
		})
	}

	var reply requestUploadReply
	if err := c.postJSON(ctx, "/api/v1/documents/request-upload", requestUploadBody{Email: email, Files: descriptors}, &reply); err != nil {
		return nil, err
	}
	if len(reply.Uploads) != len(files) {
		return nil, fmt.Errorf("expected %d upload slots, got %d", len(files), len(reply.Uploads))
	}
	return reply.Uploads, nil
}

// Transfer PUTs one file's bytes to its presigned URL, reporting progress
// as the body is consumed. Safe to call again after a failure: the content
// is rewound first.
func (c *Client) Transfer(ctx context.Context, slot Slot, file File, progress ProgressFunc) error {
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return &UploadError{Filename: file.Name, Err: fmt.Errorf("rewind content: %w", err)}
	}

	body := newProgressReader(file.Content, file.Size, func(percent int) {
		if progress != nil {
			progress(file.Name, percent)
		}
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, slot.PresignedURL, body)
	if err != nil {
		return &UploadError{Filename: file.Name, Err: err}
	}
	req.ContentLength = file.Size
	if file.ContentType != "" {
		req.Header.Set("Content-Type", file.ContentType)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &UploadError{Filename: file.Name, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UploadError{Filename: file.Name, Err: fmt.Errorf("storage rejected upload: status %d", resp.StatusCode)}
	}
	return nil
}

type confirmBody struct {
	Email     string              `json:"email"`
	Documents []confirmedDocument `json:"documents"`
}

type confirmedDocument struct {
	DocumentID string           `json:"documentId"`
	S3Key      string           `json:"s3Key"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Metadata   *confirmMetadata `json:"metadata,omitempty"`
}

type confirmMetadata struct {
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified string `json:"lastModified"`
}

// ConfirmResult is the server's verdict for one document.
type ConfirmResult struct {
	DocumentID string `json:"documentId"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type confirmReply struct {
	Message string          `json:"message"`
	Results []ConfirmResult `json:"results"`
}

// Report is one per-file outcome handed to Confirm.
type Report struct {
	Slot    Slot
	File    File
	Success bool
	Err     error
}

// Confirm reports every attempt, successes and failures alike, so the
// server can finalize each record.
func (c *Client) Confirm(ctx context.Context, email string, reports []Report) ([]ConfirmResult, error) {
	docs := make([]confirmedDocument, 0, len(reports))
	for _, r := range reports {
		doc := confirmedDocument{
			DocumentID: r.Slot.DocumentID,
			S3Key:      r.Slot.S3Key,
			Status:     "failed",
		}
		if r.Success {
			doc.Status = "success"
			doc.Metadata = &confirmMetadata{
				Size:         r.File.Size,
				Type:         r.File.ContentType,
				LastModified: time.Now().UTC().Format(time.RFC3339),
			}
		} else if r.Err != nil {
			doc.Error = r.Err.Error()
		}
		docs = append(docs, doc)
	}

	var reply confirmReply
	if err := c.postJSON(ctx, "/api/v1/documents/confirm-upload", confirmBody{Email: email, Documents: docs}, &reply); err != nil {
		return nil, err
	}
	return reply.Results, nil
}

// UploadAll runs the full protocol for a batch of files. Transfer failures
// are captured per file and still confirmed; the returned results carry
// both the local state machine outcome and the server's verdict.
func (c *Client) UploadAll(ctx context.Context, email string, files []File, progress ProgressFunc) ([]FileResult, error) {
	slots, err := c.RequestSlots(ctx, email, files)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	reports := make([]Report, len(files))
	for i := range files {
		results[i] = FileResult{
			Filename:   files[i].Name,
			DocumentID: slots[i].DocumentID,
			State:      StateUploading,
		}

		transferErr := c.Transfer(ctx, slots[i], files[i], progress)
		reports[i] = Report{
			Slot:    slots[i],
			File:    files[i],
			Success: transferErr == nil,
			Err:     transferErr,
		}
		if transferErr != nil {
			results[i].State = StateFailed
			results[i].Err = transferErr
		} else {
			results[i].State = StateUploaded
		}
	}

	verdicts, err := c.Confirm(ctx, email, reports)
	if err != nil {
		return results, err
	}

	byID := make(map[string]ConfirmResult, len(verdicts))
	for _, v := range verdicts {
		byID[v.DocumentID] = v
	}
	for i := range results {
		if v, ok := byID[results[i].DocumentID]; ok {
			results[i].ServerStatus = v.Status
			if v.Status == "failed" && results[i].Err == nil && v.Error != "" {
				results[i].State = StateFailed
				results[i].Err = &UploadError{Filename: results[i].Filename, Err: fmt.Errorf("%s", v.Error)}
			}
		}
	}
	return results, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("api %s: %s (%s)", path, apiErr.Error.Message, apiErr.Error.Code)
		}
		return fmt.Errorf("api %s: status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
