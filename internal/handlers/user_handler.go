package handlers

import (
	"net/http"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Service *services.UserService
	log     logger.Logger
}

func NewUserHandler(s *services.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{Service: s, log: log}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.Create(r.Context(), session(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ListUsers returns all users, optionally filtered by ?role=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context(), session(r), models.Role(r.URL.Query().Get("role")))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// UpdateUser updates an existing user profile
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.Update(r.Context(), session(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.UpdateRole(r.Context(), session(r), mux.Vars(r)["id"], req.Role)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ToggleActiveStatus suspends or reactivates an account
func (h *UserHandler) ToggleActiveStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SetActiveRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.SetActive(r.Context(), session(r), mux.Vars(r)["id"], req.IsActive)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// DeleteUser deletes a user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), session(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
