package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWinners")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	view, err := h.insightService.Winners(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "list winners failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayouts")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	view, err := h.insightService.Payouts(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "list payouts failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListHuntSquares(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHuntSquares")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	view, err := h.insightService.Hunt(ctx, gridID, owner)
	if err != nil {
		h.logger.WarnContext(ctx, "list hunt squares failed", "grid_id", gridID, "owner", owner, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetWinnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWinnings")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	summary, err := h.insightService.Winnings(ctx, gridID, owner)
	if err != nil {
		h.logger.WarnContext(ctx, "get winnings failed", "grid_id", gridID, "owner", owner, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
