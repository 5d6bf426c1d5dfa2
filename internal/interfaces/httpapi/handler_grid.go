package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/boxpool/boxpool/internal/usecase"
)

func (h *Handler) CreateGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGrid")
	defer span.End()

	var req createGridRequest
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

	created, err := h.gridService.CreateGrid(ctx, usecase.CreateGridInput{
		Name:       req.Name,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Pool:       poolStructureFromRequest(req.Pool),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create grid failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gridToDTO(created))
}

func (h *Handler) ListGrids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGrids")
	defer span.End()

	grids, err := h.gridService.ListGrids(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list grids failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gridSummaryDTO, 0, len(grids))
	for _, g := range grids {
		items = append(items, gridToSummaryDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGrid")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	g, err := h.gridService.GetGrid(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "get grid failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) GetSharedGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSharedGrid")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	g, err := h.gridService.GetSharedGrid(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "get shared grid failed", "code", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) ClaimSquare(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimSquare")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	row, col, err := squarePosition(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req claimSquareRequest
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

	g, err := h.gridService.ClaimSquare(ctx, usecase.ClaimSquareInput{
		GridID:     gridID,
		Row:        row,
		Col:        col,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "claim square failed", "grid_id", gridID, "row", row, "col", col, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) RandomizeNumbers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RandomizeNumbers")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	g, err := h.gridService.RandomizeNumbers(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "randomize numbers failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) SetOwnerLabels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetOwnerLabels")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))

	var req ownerLabelsRequest
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

	g, err := h.gridService.SetOwnerLabels(ctx, gridID, req.Labels)
	if err != nil {
		h.logger.WarnContext(ctx, "set owner labels failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) ShareGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ShareGrid")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	g, err := h.gridService.ShareGrid(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "share grid failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"grid_id":     g.ID,
		"shared_code": g.SharedCode,
	})
}

func squarePosition(r *http.Request) (int, int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(r.PathValue("row")))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row must be an integer", usecase.ErrInvalidInput)
	}
	col, err := strconv.Atoi(strings.TrimSpace(r.PathValue("col")))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: col must be an integer", usecase.ErrInvalidInput)
	}
	return row, col, nil
}
