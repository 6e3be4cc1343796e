package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/service"
)

type FolderHandler struct {
	entityService *service.EntityService
	viewService   *service.ViewService
}

type createFolderRequest struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

func NewFolderHandler(entityService *service.EntityService, viewService *service.ViewService) *FolderHandler {
	return &FolderHandler{
		entityService: entityService,
		viewService:   viewService,
	}
}

func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	folder, err := h.entityService.CreateFolder(r.Context(), req.Name, req.ParentID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, folder)
}

// GetFolderContent переводит пользователя в папку и возвращает её содержимое.
// Без {uuid} в пути открывается корень. Переход сбрасывает страницу
// пагинации и очищает выделение.
func (h *FolderHandler) GetFolderContent(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		log.Printf("Authorization failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var folderID *uuid.UUID
	if raw := chi.URLParam(r, "uuid"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid folder UUID", http.StatusBadRequest)
			return
		}
		folderID = &id
	}

	if err := h.viewService.Navigate(r.Context(), user.ID, user.Email, folderID); err != nil {
		writeError(w, err)
		return
	}

	content, err := h.viewService.Content(r.Context(), user.ID, user.Email)
	if err != nil {
		log.Printf("Error getting folder content: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (h *FolderHandler) GetFolderStructure(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.viewService.Structure(r.Context(), user.ID))
}

func (h *FolderHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.viewService.Favorites(r.Context(), user.ID))
}
