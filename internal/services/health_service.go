package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Health states reported by HealthService
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// DatasetStatusProvider reports the state of the cached dataset
type DatasetStatusProvider interface {
	Status() DatasetStatus
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	dataset   DatasetStatusProvider
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Dataset *DatasetStatus `json:"dataset,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, dataset DatasetStatusProvider, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck reports ok while the dataset is loaded and degraded otherwise
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	datasetHealth := hs.checkDataset()

	status := HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  map[string]ServiceHealth{"dataset": datasetHealth},
		Runtime:   hs.runtimeInfo(),
	}
	if datasetHealth.Status != StatusReady {
		status.Status = StatusDegraded
	}

	hs.logger.DebugContext(ctx, "health check completed", slog.String("status", status.Status))
	return status
}

// ReadinessCheck is ready once a dataset snapshot is published
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	datasetHealth := hs.checkDataset()

	status := StatusReady
	if datasetHealth.Status != StatusReady {
		status = StatusNotReady
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  map[string]ServiceHealth{"dataset": datasetHealth},
	}
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime:   hs.runtimeInfo(),
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    hs.version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"start_time": hs.startTime.Format(time.RFC3339),
		"uptime":     time.Since(hs.startTime).Seconds(),
	}
}

func (hs *HealthService) runtimeInfo() map[string]interface{} {
	return map[string]interface{}{
		"uptime":     time.Since(hs.startTime).Seconds(),
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	}
}

func (hs *HealthService) checkDataset() ServiceHealth {
	if hs.dataset == nil {
		return ServiceHealth{Status: StatusNotReady, Message: "dataset service not initialized"}
	}

	ds := hs.dataset.Status()
	if !ds.Loaded {
		msg := "dataset not loaded yet"
		if ds.LastError != "" {
			msg = fmt.Sprintf("dataset load failed: %s", ds.LastError)
		}
		return ServiceHealth{Status: StatusNotReady, Message: msg, Dataset: &ds}
	}

	msg := fmt.Sprintf("%d movies loaded", ds.Movies)
	if ds.LastError != "" {
		msg += "; last reload failed"
	}
	return ServiceHealth{Status: StatusReady, Message: msg, Dataset: &ds}
}
