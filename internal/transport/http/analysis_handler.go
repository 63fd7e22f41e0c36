package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "retailcli/internal/errors"
	"retailcli/internal/services"
)

// AnalysisHandler exposes analysis runs and their results.
type AnalysisHandler struct {
	service      *services.AnalysisService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.RunAnalysis)
	r.Get("/latest", h.GetLatest)
	r.Get("/itemsets", h.GetItemsets)
	r.Get("/rules", h.GetRules)
	r.Get("/performance", h.GetPerformance)
	r.Get("/summary", h.GetSummary)
	r.Post("/export", h.ExportReports)

	return r
}

// runRequest is the JSON body of POST /api/analysis.
type runRequest struct {
	services.AnalysisRequest
}

// Bind implements render.Binder
func (req *runRequest) Bind(r *http.Request) error {
	return nil
}

// RunAnalysis handles POST /api/analysis
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	req := &runRequest{}
	if r.ContentLength > 0 {
		if err := render.Bind(r, req); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}

	if err := h.validate.Struct(req.AnalysisRequest); err != nil {
		h.errorHandler.HandleError(w, r, validationError(err))
		return
	}

	result, err := h.service.Run(r.Context(), req.AnalysisRequest)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// GetLatest handles GET /api/analysis/latest
func (h *AnalysisHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	render.JSON(w, r, result)
}

// GetItemsets handles GET /api/analysis/itemsets
func (h *AnalysisHandler) GetItemsets(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"run_id":      result.RunID,
		"min_support": result.MinSupport,
		"itemsets":    result.Itemsets,
	})
}

// GetRules handles GET /api/analysis/rules
func (h *AnalysisHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"run_id":         result.RunID,
		"min_confidence": result.MinConfidence,
		"rules":          result.Rules,
		"top_by_support": result.TopBySupport,
		"top_by_lift":    result.TopByLift,
	})
}

// GetPerformance handles GET /api/analysis/performance
func (h *AnalysisHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"run_id":           result.RunID,
		"performance":      result.Performance,
		"category_rollups": result.CategoryRollups,
		"overall":          result.Overall,
	})
}

// GetSummary handles GET /api/analysis/summary
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"run_id":             result.RunID,
		"overview":           result.Overview,
		"categories":         result.Categories,
		"top_sub_categories": result.TopSubCategories,
		"top_states":         result.TopStates,
		"top_cities":         result.TopCities,
	})
}

// ExportReports handles POST /api/analysis/export
func (h *AnalysisHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.service.Latest(); !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoAnalysisYet)
		return
	}
	if err := h.service.ExportReports(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "exported"})
}

// validationError converts validator errors to the API error shape.
func validationError(err error) *apierrors.APIError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}
	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: "failed validation rule: " + fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
