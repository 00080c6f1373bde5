package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"waitlist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/request-upload", h.requestUpload)
	rg.POST("/documents/confirm-upload", h.confirmUpload)
	rg.GET("/documents", h.list)
}

func (h *Handler) requestUpload(c *gin.Context) {
	var req requestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}
	if len(req.Files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "files are required", nil)
		return
	}

	files := make([]FileDescriptor, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, FileDescriptor{
			Filename: f.Filename,
			FileType: f.FileType,
			Size:     f.Size,
		})
	}

	slots, err := h.Svc.RequestUpload(c.Request.Context(), req.Email, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, "uploads_unavailable", "uploads are not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload URLs", nil)
		}
		return
	}

	uploads := make([]uploadSlotResponse, 0, len(slots))
	for _, slot := range slots {
		uploads = append(uploads, uploadSlotResponse{
			DocumentID:   slot.DocumentID,
			PresignedURL: slot.PresignedURL,
			S3Key:        slot.StorageKey,
		})
	}
	respond.OK(c, requestUploadResponse{Uploads: uploads})
}

func (h *Handler) confirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}
	if len(req.Documents) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documents are required", nil)
		return
	}

	outcomes := make([]ConfirmOutcome, 0, len(req.Documents))
	for _, d := range req.Documents {
		outcomes = append(outcomes, ConfirmOutcome{
			DocumentID: d.DocumentID,
			StorageKey: d.S3Key,
			Status:     d.Status,
			Error:      d.Error,
		})
	}

	results, err := h.Svc.ConfirmUpload(c.Request.Context(), req.Email, outcomes)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to confirm uploads", nil)
		}
		return
	}

	out := make([]confirmResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, confirmResultResponse{
			DocumentID: r.DocumentID,
			Status:     r.Status,
			Error:      r.Error,
		})
	}
	respond.OK(c, confirmUploadResponse{
		Message: "upload confirmations processed",
		Results: out,
	})
}

func (h *Handler) list(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	docs, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		}
		return
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	respond.OK(c, listDocumentsResponse{Documents: out})
}
