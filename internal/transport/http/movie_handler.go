package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"filminsight/internal/dataprocessing"
	apierrors "filminsight/internal/errors"
	appmiddleware "filminsight/internal/middleware"
	"filminsight/internal/services"
)

// MovieHandler serves the cleaned movie table
type MovieHandler struct {
	service      MovieServiceInterface
	validator    *appmiddleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewMovieHandler creates a new movie handler with RFC 7807 error handling
func NewMovieHandler(service MovieServiceInterface, validator *appmiddleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *MovieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = appmiddleware.NewValidator(logger)
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &MovieHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "movie_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the movie routes
func (h *MovieHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/movies", h.ListMovies)
	r.Get("/movies/top", h.TopMovies)
	r.Get("/movies/long", h.LongMovies)
	r.Get("/genres", h.Genres)
	r.Get("/decades", h.Decades)
	r.Get("/stats", h.Stats)

	r.Route("/dataset", func(r chi.Router) {
		r.Get("/", h.DatasetStatus)
		r.Post("/reload", h.ReloadDataset)
	})

	return r
}

// ListMovies handles GET /api/movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	req, err := parseMovieList(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.Movies(r.Context(), services.MovieQuery{
		Criteria: req.criteria(),
		Title:    req.Title,
		Director: req.Director,
		SortBy:   dataprocessing.SortKey(req.Sort),
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		h.handleServiceError(w, r, "failed to list movies", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   page.Movies,
		"count":  len(page.Movies),
		"total":  page.Total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// TopMovies handles GET /api/movies/top
func (h *MovieHandler) TopMovies(w http.ResponseWriter, r *http.Request) {
	req, err := parseTop(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	movies, err := h.service.TopMovies(r.Context(), dataprocessing.SortKey(req.By), req.N, req.MinVotes)
	if err != nil {
		h.handleServiceError(w, r, "failed to rank movies", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   movies,
		"count":  len(movies),
		"by":     req.By,
	})
}

// LongMovies handles GET /api/movies/long
func (h *MovieHandler) LongMovies(w http.ResponseWriter, r *http.Request) {
	req, err := parseLong(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	movies, err := h.service.LongMovies(r.Context(), req.MinRuntime, req.N)
	if err != nil {
		h.handleServiceError(w, r, "failed to list long movies", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":      "success",
		"data":        movies,
		"count":       len(movies),
		"min_runtime": req.MinRuntime,
	})
}

// Genres handles GET /api/genres
func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.Genres(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "failed to count genres", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   genres,
		"count":  len(genres),
	})
}

// Decades handles GET /api/decades
func (h *MovieHandler) Decades(w http.ResponseWriter, r *http.Request) {
	decades, err := h.service.Decades(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "failed to aggregate decades", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   decades,
		"count":  len(decades),
	})
}

// Stats handles GET /api/stats
func (h *MovieHandler) Stats(w http.ResponseWriter, r *http.Request) {
	req, err := parseStats(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	criteria := req.criteria()
	summary, err := h.service.Summary(r.Context(), &criteria)
	if err != nil {
		h.handleServiceError(w, r, "failed to summarize movies", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// DatasetStatus handles GET /api/dataset
func (h *MovieHandler) DatasetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status())
}

// ReloadDataset handles POST /api/dataset/reload
func (h *MovieHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("request_id", middleware.GetReqID(r.Context())))

	if _, err := h.service.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, "dataset reload failed", err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, h.service.Status())
}

// handleServiceError maps service errors that carry no HTTP meaning of
// their own before handing them to the error handler
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())))

	var appErr *apierrors.AppError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidParameter.WithDetails(err.Error()))
	case errors.Is(err, services.ErrDatasetNotLoaded) && !errors.As(err, &appErr):
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetUnavailable)
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
