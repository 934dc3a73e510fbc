package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/volley-club/internal/domain/account"
)

func (h *Handler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminStats")
	defer span.End()

	stats, err := h.adminService.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get admin stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminStatsToDTO(ctx, stats))
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAccounts")
	defer span.End()

	accounts, err := h.authService.ListAccounts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list accounts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]accountDTO, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, accountToDTO(ctx, a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ChangeAccountRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeAccountRole")
	defer span.End()

	actorID, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	targetID := strings.TrimSpace(r.PathValue("id"))
	var req changeRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		writeError(ctx, w, invalidField("role"))
		return
	}

	item, err := h.authService.ChangeRole(ctx, actorID, targetID, role)
	if err != nil {
		h.logger.WarnContext(ctx, "change account role failed", "actor_id", actorID, "target_id", targetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "account role changed", "actor_id", actorID, "target_id", targetID, "role", string(item.Role))
	writeSuccess(ctx, w, http.StatusOK, accountToDTO(ctx, item))
}
