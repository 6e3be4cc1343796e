package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/auth"
)

// AuthHandler — заглушка внешнего провайдера идентичности: выпускает
// токен по email. Паролей и учётных записей ядро не ведёт.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  auth.UserInfo `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		http.Error(w, "Invalid email", http.StatusBadRequest)
		return
	}

	// детерминированный идентификатор по email, чтобы повторный логин
	// возвращал того же пользователя
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String()

	token, err := auth.IssueToken(userID, email, req.Name)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  auth.UserInfo{ID: userID, Email: email, Name: req.Name},
	})
}
