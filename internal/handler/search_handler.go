package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anirban1809/simplifile/internal/auth"
	"github.com/anirban1809/simplifile/internal/service"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search ищет по имени и фильтрам: ?q=...&types=images,documents&
// modified_after=RFC3339&modified_before=RFC3339&min_size=&max_size=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	var filters service.SearchFilters
	if raw := query.Get("types"); raw != "" {
		filters.Types = strings.Split(raw, ",")
	}
	if raw := query.Get("modified_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid modified_after", http.StatusBadRequest)
			return
		}
		filters.ModifiedAfter = &t
	}
	if raw := query.Get("modified_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid modified_before", http.StatusBadRequest)
			return
		}
		filters.ModifiedBefore = &t
	}
	if raw := query.Get("min_size"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid min_size", http.StatusBadRequest)
			return
		}
		filters.MinSize = n
	}
	if raw := query.Get("max_size"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid max_size", http.StatusBadRequest)
			return
		}
		filters.MaxSize = n
	}

	result := h.searchService.Search(r.Context(), user.ID, query.Get("q"), filters)
	writeJSON(w, http.StatusOK, result)
}
