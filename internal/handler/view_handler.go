package handler

import (
	"encoding/json"
	"net/http"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/service"
)

type ViewHandler struct {
	viewService *service.ViewService
}

func NewViewHandler(viewService *service.ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

type updateViewRequest struct {
	Page int             `json:"page,omitempty"`
	Mode domain.ViewMode `json:"mode,omitempty"`
}

// UpdateView меняет страницу и режим отображения текущей папки
// и возвращает пересобранное содержимое
func (h *ViewHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Page > 0 {
		h.viewService.SetPage(r.Context(), user.ID, req.Page)
	}
	if req.Mode != "" {
		if err := h.viewService.SetMode(r.Context(), user.ID, req.Mode); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	content, err := h.viewService.Content(r.Context(), user.ID, user.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}
