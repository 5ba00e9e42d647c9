package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/lookup"
	"github.com/zappabad/cryptoscope/pkg/logger"
)

// AnalysisHandler serves analyses over HTTP.
type AnalysisHandler struct {
	lookup      lookup.Lookup
	suggestions []string
	logger      *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(l lookup.Lookup, suggestions []string, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{lookup: l, suggestions: suggestions, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/analysis", h.GetAnalysis)
	g.GET("/suggestions", h.GetSuggestions)
}

// GetAnalysis looks up ?query=.
// 200 with the analysis, 400 without a query, 404 when nothing matches,
// 502 when an upstream failed and 500 when the result was malformed.
func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
	}

	result, err := h.lookup.Lookup(c.Request().Context(), query)
	if err != nil {
		status := StatusFor(err)
		h.logger.Warn("Lookup failed",
			logger.StringField("query", query),
			logger.StringField("kind", analysis.KindOf(err).String()),
			logger.IntField("status", status),
			logger.ErrorField(err),
		)
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// GetSuggestions returns the preset search suggestions.
func (h *AnalysisHandler) GetSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"suggestions": h.suggestions})
}

// StatusFor maps a lookup error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrMalformed):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
