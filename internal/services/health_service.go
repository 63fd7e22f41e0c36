package services

import (
	"time"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
	HasResult bool      `json:"has_result"`
}

// HealthService reports process liveness and whether results exist.
type HealthService struct {
	version  string
	started  time.Time
	analysis *AnalysisService
}

// NewHealthService creates a health service bound to the analysis service
func NewHealthService(version string, analysis *AnalysisService) *HealthService {
	return &HealthService{
		version:  version,
		started:  time.Now(),
		analysis: analysis,
	}
}

// Check returns the current health status
func (s *HealthService) Check() HealthStatus {
	_, hasResult := s.analysis.Latest()
	return HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now(),
		HasResult: hasResult,
	}
}
