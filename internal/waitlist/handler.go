package waitlist

import (
	"errors"
	"net/http"
	"time"

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

// RegisterRoutes attaches waitlist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/waitlist/submit", h.submit)
	rg.GET("/waitlist/entries", h.entries)
}

type submitRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Industry     string `json:"industry"`
	LeadsPerWeek int    `json:"leads_per_week"`
	CompanySize  string `json:"company_size"`
	UseCase      string `json:"use_case"`
}

type entryResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Position     string    `json:"position,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	LeadsPerWeek int       `json:"leads_per_week"`
	CompanySize  string    `json:"company_size,omitempty"`
	UseCase      string    `json:"use_case,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(entry Entry) entryResponse {
	return entryResponse{
		ID:           entry.ID,
		Email:        entry.Email,
		Name:         entry.Name,
		Position:     entry.Position,
		Industry:     entry.Industry,
		LeadsPerWeek: entry.LeadsPerWeek,
		CompanySize:  entry.CompanySize,
		UseCase:      entry.UseCase,
		CreatedAt:    entry.CreatedAt,
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.Submit(c.Request.Context(), Entry{
		Email:        req.Email,
		Name:         req.Name,
		Position:     req.Position,
		Industry:     req.Industry,
		LeadsPerWeek: req.LeadsPerWeek,
		CompanySize:  req.CompanySize,
		UseCase:      req.UseCase,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save signup", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(entry))
}

func (h *Handler) entries(c *gin.Context) {
	entries, err := h.Svc.Entries(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list entries", nil)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toResponse(entry))
	}
	respond.OK(c, gin.H{"entries": out})
}
