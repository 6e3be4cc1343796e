package domain

import (
	"time"

	"github.com/google/uuid"
)

// MIMETypeFolder — сентинельный MIME-тип для папок
const MIMETypeFolder = "folder"

// Entity представляет файл или папку в хранилище.
// Файлы и папки различаются флагом IsFolder, а не отдельными типами.
type Entity struct {
	UUID           uuid.UUID  `json:"uuid"`
	Name           string     `json:"name"`
	MIMEType       string     `json:"mime_type"`
	SizeBytes      int64      `json:"size_bytes"`
	OwnerID        string     `json:"owner_id"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"` // nil — корень
	IsFolder       bool       `json:"is_folder"`
	IsShared       bool       `json:"is_shared"`
	SharedWith     []string   `json:"shared_with"`
	IsFavorite     bool       `json:"is_favorite"`
	ContentRef     string     `json:"content_ref,omitempty"` // пусто для папок
	CurrentVersion int        `json:"current_version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// EntityUpload описывает один загружаемый элемент: байты не читаются,
// ContentRef — непрозрачный дескриптор, который предоставляет вызывающая сторона.
type EntityUpload struct {
	Name         string
	MIMEType     string
	SizeBytes    int64
	ContentRef   string
	LastModified time.Time
}

type EntityDownload struct {
	Entity     *Entity `json:"entity"`
	ContentRef string  `json:"content_ref"`
}

// FolderContent — содержимое текущей папки вместе с производными представлениями
type FolderContent struct {
	Folder      *Entity      `json:"folder,omitempty"` // nil для корня
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Entities    []Entity     `json:"entities"`
	Page        int          `json:"page"`
	TotalPages  int          `json:"total_pages"`
	TotalItems  int          `json:"total_items"`
	ViewMode    ViewMode     `json:"view_mode"`
}

type Breadcrumb struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

type ViewMode string

const (
	ViewModeList ViewMode = "list"
	ViewModeGrid ViewMode = "grid"
)
