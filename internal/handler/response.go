package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError отображает ошибки модели на HTTP-статусы.
// Все ошибки ядра восстановимы: процесс никогда не завершается.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrCycleDetected):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrAccessDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrQuotaExceeded):
		http.Error(w, err.Error(), http.StatusInsufficientStorage)
	case errors.Is(err, domain.ErrCorruptHierarchy):
		log.Printf("Corrupt hierarchy detected: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
