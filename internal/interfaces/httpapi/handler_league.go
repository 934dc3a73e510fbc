package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLeagueRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueRows")
	defer span.End()

	rows, err := h.leagueService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list league rows failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leagueRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateLeagueRow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeagueRow")
	defer span.End()

	var req leagueRowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.leagueService.Create(ctx, req.input())
	if err != nil {
		h.logger.WarnContext(ctx, "create league row failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueRowToDTO(ctx, row))
}

func (h *Handler) UpdateLeagueRow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeagueRow")
	defer span.End()

	rowID := strings.TrimSpace(r.PathValue("id"))
	var req leagueRowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	row, err := h.leagueService.Update(ctx, rowID, req.input())
	if err != nil {
		h.logger.WarnContext(ctx, "update league row failed", "league_row_id", rowID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueRowToDTO(ctx, row))
}

func (h *Handler) DeleteLeagueRow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeagueRow")
	defer span.End()

	rowID := strings.TrimSpace(r.PathValue("id"))
	if err := h.leagueService.Delete(ctx, rowID); err != nil {
		h.logger.WarnContext(ctx, "delete league row failed", "league_row_id", rowID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deletedDTO{Deleted: true, ID: rowID})
}
