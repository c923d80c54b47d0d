// Package api exposes a finished run read-only over HTTP.
package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/field-logger/driftnorm/internal/emit"
	"github.com/field-logger/driftnorm/internal/models"
	"github.com/field-logger/driftnorm/internal/pipeline"
)

const (
	defaultPageSize = 1000
	maxPageSize     = 10000
)

// Handler serves the normalized timeline produced by one pipeline run.
// The result is immutable once the server starts, so handlers need no
// locking.
type Handler struct {
	result  *pipeline.Result
	version string
}

// NewHandler creates a handler over a finished run.
func NewHandler(result *pipeline.Result, version string) *Handler {
	return &Handler{result: result, version: version}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  h.version,
		"readings": h.result.Timeline.Len(),
	})
}

// HandleSources lists the logger files that contributed to the run.
func (h *Handler) HandleSources(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sources": h.result.Sources,
	})
}

// readingRow is one timeline entry keyed by its adjusted-UTC time.
type readingRow struct {
	AdjustedUTC string `json:"adjustedUtc"`
	*models.Reading
}

// HandleReadings returns a page of readings in ascending time order.
// Query params: limit (default 1000, max 10000) and offset.
func (h *Handler) HandleReadings(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil || limit < 1 {
		return NewBadRequestError("invalid limit parameter", err)
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return NewBadRequestError("invalid offset parameter", err)
	}

	tl := h.result.Timeline
	keys := tl.SortedKeys(false)
	total := len(keys)

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	rows := make([]readingRow, 0, end-offset)
	for _, key := range keys[offset:end] {
		rows = append(rows, readingRow{AdjustedUTC: key, Reading: tl.Get(key)})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":    total,
		"offset":   offset,
		"readings": rows,
	})
}

// HandleReading returns the single reading at one adjusted-UTC key.
// Keys contain a space, so callers URL-encode them.
func (h *Handler) HandleReading(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return NewBadRequestError("invalid reading key", err)
	}

	r := h.result.Timeline.Get(key)
	if r == nil {
		return NewNotFoundError("reading", key)
	}
	return c.JSON(http.StatusOK, readingRow{AdjustedUTC: key, Reading: r})
}

// HandleReadingsCSV streams the full normalized table in the same
// 12-column format the CLI writes to stdout.
func (h *Handler) HandleReadingsCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="readings.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return emit.WriteCSV(c.Response(), h.result.Timeline)
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
