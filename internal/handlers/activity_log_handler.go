package handlers

import (
	"net/http"
	"strconv"

	"staffing-backend/internal/models"
	"staffing-backend/internal/services"
	"staffing-backend/pkg/logger"
	"staffing-backend/pkg/utils"
)

type ActivityLogHandler struct {
	Service *services.ActivityService
	log     logger.Logger
}

func NewActivityLogHandler(s *services.ActivityService, log logger.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{Service: s, log: log}
}

// List supports ?target_type=, ?target_id=, ?actor_id= and ?limit=
func (h *ActivityLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	logs, err := h.Service.List(r.Context(), session(r), models.ActivityLogFilter{
		TargetType: q.Get("target_type"),
		TargetID:   q.Get("target_id"),
		ActorID:    q.Get("actor_id"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if logs == nil {
		logs = []*models.ActivityLog{}
	}
	utils.JSON(w, http.StatusOK, logs)
}
