package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	items, err := h.newsService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]newsDTO, 0, len(items))
	for _, n := range items {
		out = append(out, newsToDTO(ctx, n))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("id"))
	item, err := h.newsService.Get(ctx, newsID)
	if err != nil {
		h.logger.WarnContext(ctx, "get news failed", "news_id", newsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsToDTO(ctx, item))
}

func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateNews")
	defer span.End()

	var req newsRequest
	up, err := h.decodeEntity(w, r, newsForm, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer up.Close()
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.newsService.Create(ctx, req.input(up.image))
	if err != nil {
		h.logger.WarnContext(ctx, "create news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, newsToDTO(ctx, item))
}

func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("id"))
	var req newsRequest
	up, err := h.decodeEntity(w, r, newsForm, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer up.Close()
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.newsService.Update(ctx, newsID, req.input(up.image))
	if err != nil {
		h.logger.WarnContext(ctx, "update news failed", "news_id", newsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsToDTO(ctx, item))
}

func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteNews")
	defer span.End()

	newsID := strings.TrimSpace(r.PathValue("id"))
	if err := h.newsService.Delete(ctx, newsID); err != nil {
		h.logger.WarnContext(ctx, "delete news failed", "news_id", newsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deletedDTO{Deleted: true, ID: newsID})
}
