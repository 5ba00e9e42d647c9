package share

import (
	"errors"
	"fmt"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/pkg/logger"
)

// ErrSharingDisabled is returned by Share when no notifier is configured.
var ErrSharingDisabled = errors.New("sharing is not configured")

// Service runs the dashboard's share and export actions.
type Service struct {
	notifier Notifier
	exporter *Exporter
	logger   *logger.Logger
}

// NewService creates a share service. notifier may be nil.
func NewService(notifier Notifier, exporter *Exporter, log *logger.Logger) *Service {
	return &Service{notifier: notifier, exporter: exporter, logger: log.Named("share")}
}

// Share sends a digest of r through the notifier.
func (s *Service) Share(r *analysis.AnalysisResult) error {
	if s.notifier == nil {
		return ErrSharingDisabled
	}
	if err := s.notifier.SendMessage(FormatMarkdown(r)); err != nil {
		s.logger.Error("Failed to share analysis", logger.ErrorField(err), logger.StringField("ticker", r.Ticker))
		return fmt.Errorf("failed to share analysis: %w", err)
	}
	s.logger.Info("Shared analysis", logger.StringField("ticker", r.Ticker))
	return nil
}

// Export writes r to the export directory and returns the file path.
func (s *Service) Export(r *analysis.AnalysisResult) (string, error) {
	path, err := s.exporter.Export(r)
	if err != nil {
		s.logger.Error("Failed to export analysis", logger.ErrorField(err), logger.StringField("ticker", r.Ticker))
		return "", err
	}
	s.logger.Info("Exported analysis", logger.StringField("ticker", r.Ticker), logger.StringField("path", path))
	return path, nil
}
