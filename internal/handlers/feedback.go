package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"feedback-desk/internal/logger"
	"feedback-desk/internal/models"
	"feedback-desk/internal/notifier"

	"github.com/go-chi/chi/v5"
)

const (
	msgLoadFailed = "could not load feedback"
	msgSaveFailed = "could not save feedback"
)

// FeedbackStore is the query/mutation surface the handlers need.
type FeedbackStore interface {
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, in models.CreateInput) (*models.Feedback, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	Filter(ctx context.Context, criteria models.FilterCriteria) ([]models.Feedback, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

type FeedbackHandler struct {
	store    FeedbackStore
	notifier notifier.Notifier
}

// NewFeedbackHandler accepts a nil notifier, in which case nothing is published.
func NewFeedbackHandler(store FeedbackStore, n notifier.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:    store,
		notifier: n,
	}
}

// Routes mounts the feedback API on r.
func (h *FeedbackHandler) Routes(r chi.Router) {
	r.Get("/feedback", h.ListFeedback)
	r.Post("/feedback", h.SubmitFeedback)
	r.Get("/feedback/{id}", h.GetFeedback)
	r.Delete("/feedback/{id}", h.DeleteFeedback)
	r.Patch("/feedback/{id}/status", h.UpdateStatus)
	r.Get("/stats", h.GetStats)
}

type SubmitFeedbackRequest struct {
	CustomerName string `json:"customerName" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Category     string `json:"category" validate:"required,oneof=Product Service Support"`
	Comments     string `json:"comments" validate:"required,max=1000"`
}

func (req *SubmitFeedbackRequest) normalize() {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Email = strings.TrimSpace(req.Email)
	req.Comments = strings.TrimSpace(req.Comments)
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

// --- GET /feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	criteria, errMsg := parseFilter(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	var (
		results []models.Feedback
		err     error
	)
	if criteria.IsEmpty() {
		results, err = h.store.ListAll(r.Context())
	} else {
		results, err = h.store.Filter(r.Context(), criteria)
	}
	if err != nil {
		logger.Error().Err(err).Msg("listing feedback")
		writeError(w, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	if results == nil {
		results = []models.Feedback{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": results,
		"count":    len(results),
	})
}

func parseFilter(r *http.Request) (models.FilterCriteria, string) {
	q := r.URL.Query()
	var criteria models.FilterCriteria

	if raw := q.Get("rating"); raw != "" && raw != "all" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, "rating must be an integer"
		}
		criteria.Rating = rating
	}

	if raw := q.Get("category"); raw != "" && raw != "all" {
		category := models.Category(raw)
		if !category.Valid() {
			return criteria, "unknown category: " + raw
		}
		criteria.Category = category
	}

	criteria.Search = q.Get("search")
	return criteria, ""
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.normalize()
	if err := getValidator().Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": parseValidationErrors(err),
		})
		return
	}

	feedback, err := h.store.Create(r.Context(), models.CreateInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Rating:       req.Rating,
		Category:     models.Category(req.Category),
		Comments:     req.Comments,
	})
	if err != nil {
		logger.Error().Err(err).Msg("creating feedback")
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	if h.notifier != nil {
		message := notifier.FormatNewFeedback(feedback)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.notifier.Publish(ctx, message); err != nil {
				logger.Warn().Err(err).Str("feedback_id", feedback.ID).Msg("publishing new feedback notification")
			}
		}()
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": feedback,
	})
}

// --- GET /feedback/{id} ---

func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	feedback, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		logger.Error().Err(err).Str("feedback_id", id).Msg("loading feedback")
		writeError(w, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	if feedback == nil {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}

// --- DELETE /feedback/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		logger.Error().Err(err).Str("feedback_id", id).Msg("deleting feedback")
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

// --- PATCH /feedback/{id}/status ---

func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be one of New, Read, Resolved")
		return
	}

	updated, err := h.store.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		logger.Error().Err(err).Str("feedback_id", id).Msg("updating feedback status")
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"status":  req.Status,
	})
}

// --- GET /stats ---

func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing feedback stats")
		writeError(w, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
