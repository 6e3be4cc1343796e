package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/service"
)

// SelectionHandler — пакетные действия над текущим выделением.
// Все они работают через ResolveBatch: выделение, пережившее удаление,
// просто даёт меньший пакет.
type SelectionHandler struct {
	selectionService *service.SelectionService
	entityService    *service.EntityService
	shareService     *service.ShareService
}

func NewSelectionHandler(
	selectionService *service.SelectionService,
	entityService *service.EntityService,
	shareService *service.ShareService,
) *SelectionHandler {
	return &SelectionHandler{
		selectionService: selectionService,
		entityService:    entityService,
		shareService:     shareService,
	}
}

type toggleSelectionRequest struct {
	EntityUUID uuid.UUID `json:"entity_uuid"`
}

func (h *SelectionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req toggleSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	selected := h.selectionService.Toggle(r.Context(), user.ID, req.EntityUUID)
	writeJSON(w, http.StatusOK, map[string]bool{"selected": selected})
}

func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.selectionService.Clear(r.Context(), user.ID)
	w.WriteHeader(http.StatusOK)
}

func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.selectionService.ResolveBatch(r.Context(), user.ID))
}

func (h *SelectionHandler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	batch := h.selectionService.ResolveBatch(r.Context(), user.ID)
	ids := make([]uuid.UUID, 0, len(batch))
	for _, e := range batch {
		ids = append(ids, e.UUID)
	}

	removed, err := h.entityService.Delete(r.Context(), ids, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.selectionService.Clear(r.Context(), user.ID)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": removed})
}

type shareSelectedRequest struct {
	Recipient string `json:"recipient"`
}

func (h *SelectionHandler) ShareSelected(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req shareSelectedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	batch := h.selectionService.ResolveBatch(r.Context(), user.ID)
	ids := make([]uuid.UUID, 0, len(batch))
	for _, e := range batch {
		ids = append(ids, e.UUID)
	}

	shared, err := h.shareService.Share(r.Context(), ids, req.Recipient, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"shared": shared})
}

// DownloadSelected возвращает дескрипторы содержимого выделенных файлов.
// Папки в пакетном скачивании пропускаются.
func (h *SelectionHandler) DownloadSelected(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	batch := h.selectionService.ResolveBatch(r.Context(), user.ID)

	downloads := make([]domain.EntityDownload, 0, len(batch))
	for _, e := range batch {
		if e.IsFolder {
			continue
		}
		download, err := h.entityService.Download(r.Context(), e.UUID, user.ID, user.Email)
		if err != nil {
			continue
		}
		downloads = append(downloads, *download)
	}

	writeJSON(w, http.StatusOK, downloads)
}
