package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/boxpool/boxpool/internal/usecase"
)

func (h *Handler) ApplyScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyScore")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))

	var req applyScoreRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.scoreService.ApplyScore(ctx, gridID, scoreFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "apply score failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) RefreshScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshScore")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	g, err := h.scoreService.RefreshScore(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh score failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) ApplyScan(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyScan")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))

	var req applyScanRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, report, err := h.scanService.ApplyScan(ctx, usecase.ApplyScanInput{
		GridID:    gridID,
		Cells:     scanCellsFromRequest(req.Cells),
		Overwrite: req.Overwrite,
		HomeText:  req.HomeText,
		AwayText:  req.AwayText,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply scan failed", "grid_id", gridID, "cells", len(req.Cells), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scanResultDTO{
		Grid:     gridToDTO(g),
		Applied:  report.Applied,
		Skipped:  report.Skipped,
		Rejected: report.Rejected,
	})
}
