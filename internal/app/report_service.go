package app

import (
	"fitplanner/internal/domain"
	"fitplanner/internal/metrics"
)

// Report is a rendered, downloadable plan document.
type Report struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportService formats plans and hands them to a document renderer.
type ReportService struct {
	renderer domain.ReportRenderer
	metrics  *metrics.Manager
}

// NewReportService creates a ReportService using renderer.
func NewReportService(renderer domain.ReportRenderer) *ReportService {
	return &ReportService{renderer: renderer}
}

// WithMetrics makes the service count rendered reports.
func (s *ReportService) WithMetrics(m *metrics.Manager) *ReportService {
	s.metrics = m
	return s
}

// Lines returns the ordered report lines for p.
func (s *ReportService) Lines(p domain.Plan) []string {
	return domain.ReportLines(p)
}

// Render formats p and renders it into a document.
func (s *ReportService) Render(p domain.Plan) (*Report, error) {
	data, err := s.renderer.Render(domain.ReportLines(p))
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CounterReportsRendered.Inc()
	}
	return &Report{
		FileName:    domain.ReportFileName + s.renderer.Extension(),
		ContentType: s.renderer.ContentType(),
		Data:        data,
	}, nil
}
