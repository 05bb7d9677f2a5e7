package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kymyz/lessons/internal/models"
	"github.com/kymyz/lessons/internal/projection"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for Lessons business logic.
type LessonService interface {
	// Method ListLessons retrieve every lesson with its scenes and attachments using configured repositories.
	//
	// Lessons are ordered newest first, scenes by their order and attachments newest first.
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	ListLessons(ctx context.Context) ([]models.LessonGraph, error)
	// Method GetLesson retrieve one lesson with its scenes and attachments using configured repositories.
	//
	// "id" parameter is used to identify the lesson.
	// models.ErrLessonNotFound is returned (possibly wrapped) when no lesson has the given ID.
	GetLesson(ctx context.Context, id int) (*models.LessonGraph, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service      LessonService
	mediaBaseURL string
}

// NewLessonHandler creates a new lesson handler.
//
// "mediaBaseURL" is prepended to relative file references of attachments; empty keeps them as stored.
func NewLessonHandler(svc LessonService, logger *zap.Logger, mediaBaseURL string) *LessonHandler {
	return &LessonHandler{
		BaseHandler:  BaseHandler{logger: logger},
		service:      svc,
		mediaBaseURL: mediaBaseURL,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/lessons", func(r chi.Router) {
		r.Get("/", h.ListLessons)
		r.Get("/{id}", h.GetLesson)
		r.Get("/{id}/", h.GetLesson)
	})
}

// ListLessons handles GET /api/lessons/
// @Summary List lessons
// @Description Get every lesson, newest first, with its scenes and media attachments
// @Tags lessons
// @Produce json
// @Success 200 {array} models.LessonResponse
// @Failure 500 {object} map[string]string
// @Router /api/lessons/ [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	graphs, err := h.service.ListLessons(r.Context())
	if err != nil {
		h.logger.Error("failed to list lessons", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get lessons")
		return
	}

	h.respondJSON(w, http.StatusOK, projection.Lessons(graphs, h.mediaBaseURL))
}

// GetLesson handles GET /api/lessons/{id}/
// @Summary Get lesson by ID
// @Description Get a lesson with its scenes and media attachments
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.LessonResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/lessons/{id}/ [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	// Identifiers that are not positive integers can never match a lesson
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusNotFound, "lesson not found")
		return
	}

	graph, err := h.service.GetLesson(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrLessonNotFound) {
			h.respondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		h.logger.Error("failed to get lesson by id", zap.Error(err), zap.Int("id", id))
		h.respondError(w, http.StatusInternalServerError, "failed to get lesson")
		return
	}

	h.respondJSON(w, http.StatusOK, projection.Lesson(*graph, h.mediaBaseURL))
}
