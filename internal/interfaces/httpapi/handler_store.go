package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListStoreItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStoreItems")
	defer span.End()

	items, err := h.storeService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list store items failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]storeItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, storeItemToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateStoreItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStoreItem")
	defer span.End()

	var req storeItemRequest
	up, err := h.decodeEntity(w, r, storeItemForm, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer up.Close()
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.storeService.Create(ctx, req.input(up.image))
	if err != nil {
		h.logger.WarnContext(ctx, "create store item failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, storeItemToDTO(ctx, item))
}

func (h *Handler) UpdateStoreItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStoreItem")
	defer span.End()

	itemID := strings.TrimSpace(r.PathValue("id"))
	var req storeItemRequest
	up, err := h.decodeEntity(w, r, storeItemForm, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer up.Close()
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.storeService.Update(ctx, itemID, req.input(up.image))
	if err != nil {
		h.logger.WarnContext(ctx, "update store item failed", "store_item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, storeItemToDTO(ctx, item))
}

func (h *Handler) DeleteStoreItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStoreItem")
	defer span.End()

	itemID := strings.TrimSpace(r.PathValue("id"))
	if err := h.storeService.Delete(ctx, itemID); err != nil {
		h.logger.WarnContext(ctx, "delete store item failed", "store_item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deletedDTO{Deleted: true, ID: itemID})
}
