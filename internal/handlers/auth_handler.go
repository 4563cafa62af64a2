package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
	log     logger.Logger
}

func NewAuthHandler(s *services.UserService, log logger.Logger) *AuthHandler {
	return &AuthHandler{Service: s, log: log}
}

// Register creates a client account and signs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the caller's account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	user, err := h.Service.Get(r.Context(), s, s.UserID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
