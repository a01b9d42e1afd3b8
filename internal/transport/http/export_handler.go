package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"filminsight/internal/dataprocessing"
	apierrors "filminsight/internal/errors"
	"filminsight/internal/services"
	"filminsight/pkg/contracts/domain"
)

// SnapshotProvider hands out the current dataset snapshot
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*services.Snapshot, error)
}

// ExportServiceInterface writes the cleaned table to disk
type ExportServiceInterface interface {
	Export(ctx context.Context, table []domain.Movie, report dataprocessing.ProcessReport, opts services.ExportOptions) (services.ExportResult, error)
}

// exportRequest is the body of POST /api/exports. Both fields fall back to
// the configured defaults when omitted.
type exportRequest struct {
	Workbook *bool `json:"workbook"`
	WithBOM  *bool `json:"with_bom"`
}

// ExportHandler writes exports of the cached table into the configured
// output directory
type ExportHandler struct {
	dataset      SnapshotProvider
	exports      ExportServiceInterface
	defaults     services.ExportOptions
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler. defaults.OutputDir is the only
// directory the API writes to.
func NewExportHandler(dataset SnapshotProvider, exports ExportServiceInterface, defaults services.ExportOptions, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &ExportHandler{
		dataset:      dataset,
		exports:      exports,
		defaults:     defaults,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// CreateExport handles POST /api/exports
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "request body must be a JSON object"))
		return
	}

	opts := h.defaults
	if req.Workbook != nil {
		opts.Workbook = *req.Workbook
	}
	if req.WithBOM != nil {
		opts.WithBOM = *req.WithBOM
	}

	snap, err := h.dataset.Snapshot(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.exports.Export(r.Context(), snap.Movies, snap.Report, opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
		h.errorHandler.HandleError(w, r, apierrors.ErrExportFailed)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
