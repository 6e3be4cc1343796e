package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/service"
)

type FileHandler struct {
	entityService *service.EntityService
}

func NewFileHandler(entityService *service.EntityService) *FileHandler {
	return &FileHandler{entityService: entityService}
}

// uploadItem — дескриптор одного загружаемого элемента от коллаборатора
// загрузки. Байты ядром не читаются: content_ref — непрозрачная ссылка.
type uploadItem struct {
	Name         string `json:"name"`
	MIMEType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	ContentRef   string `json:"content_ref,omitempty"`
	LastModified int64  `json:"last_modified,omitempty"` // unix millis
}

type uploadRequest struct {
	ParentID *uuid.UUID   `json:"parent_id,omitempty"`
	Files    []uploadItem `json:"files"`
}

func (h *FileHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Files) == 0 {
		http.Error(w, "No files in request", http.StatusBadRequest)
		return
	}

	uploads := make([]domain.EntityUpload, 0, len(req.Files))
	for _, f := range req.Files {
		var modified time.Time
		if f.LastModified > 0 {
			modified = time.UnixMilli(f.LastModified)
		}
		uploads = append(uploads, domain.EntityUpload{
			Name:         f.Name,
			MIMEType:     f.MIMEType,
			SizeBytes:    f.SizeBytes,
			ContentRef:   f.ContentRef,
			LastModified: modified,
		})
	}

	entities, err := h.entityService.Ingest(r.Context(), uploads, req.ParentID, user.ID, user.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entities)
}

func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	download, err := h.entityService.Download(r.Context(), id, user.ID, user.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, download)
}

type renameRequest struct {
	NewName string `json:"new_name"`
}

func (h *FileHandler) RenameEntity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entity, err := h.entityService.Rename(r.Context(), id, req.NewName, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

type moveRequest struct {
	NewParentID *uuid.UUID `json:"new_parent_id,omitempty"` // null — в корень
}

func (h *FileHandler) MoveEntity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entity, err := h.entityService.Move(r.Context(), id, req.NewParentID, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

func (h *FileHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	entity, err := h.entityService.ToggleFavorite(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

func (h *FileHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	removed, err := h.entityService.Delete(r.Context(), []uuid.UUID{id}, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"deleted": removed})
}

func (h *FileHandler) GetFileVersions(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	versions, err := h.entityService.Versions(r.Context(), id, user.ID, user.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, versions)
}

func (h *FileHandler) RevertFileVersion(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, "Invalid file UUID", http.StatusBadRequest)
		return
	}

	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		http.Error(w, "Invalid version number", http.StatusBadRequest)
		return
	}

	entity, err := h.entityService.RevertVersion(r.Context(), id, version, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}
