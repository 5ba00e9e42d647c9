package share

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zappabad/cryptoscope/internal/analysis"
)

// Exporter writes analyses as JSON files.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Export writes r to <dir>/<ticker>-<timestamp>.json and returns the path.
func (e *Exporter) Export(r *analysis.AnalysisResult) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", strings.ToLower(r.Ticker), e.now().UTC().Format("20060102T150405"))
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
