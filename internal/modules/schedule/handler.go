package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"venueops/internal/domain"
	"venueops/internal/pkg/response"
	"venueops/internal/timegrid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts day views on the public group and every mutating
// route on the protected one.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/schedule/tables", h.dayView(domain.KindTable))
	public.GET("/schedule/quests", h.dayView(domain.KindQuest))

	protected.POST("/schedule/tables/quick-book", h.quickBook(domain.KindTable))
	protected.POST("/schedule/quests/quick-book", h.quickBook(domain.KindQuest))

	for kind, prefix := range map[domain.ResourceKind]string{
		domain.KindTable: "/schedule/table-reservations",
		domain.KindQuest: "/schedule/quest-reservations",
	} {
		protected.POST(prefix, h.createReservation(kind))
		protected.GET(prefix+"/:id", h.getReservation(kind))
		protected.PATCH(prefix+"/:id", h.updateDetails(kind))
		protected.PATCH(prefix+"/:id/move", h.move(kind))
		protected.PATCH(prefix+"/:id/status", h.updateStatus(kind))
		protected.DELETE(prefix+"/:id", h.cancel(kind))
	}
}

func (h *Handler) dayView(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		branchID, err := strconv.ParseInt(c.Query("branch_id"), 10, 64)
		if err != nil || branchID <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "branch_id is required")
			return
		}
		date := c.Query("date")

		var view any
		if kind == domain.KindTable {
			view, err = h.service.DayTables(c.Request.Context(), branchID, date)
		} else {
			view, err = h.service.DayQuests(c.Request.Context(), branchID, date)
		}
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, view)
	}
}

func (h *Handler) quickBook(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuickBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		res, err := h.service.QuickBook(c.Request.Context(), kind, req)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, res)
	}
}

func (h *Handler) createReservation(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		r, err := h.service.CreateReservation(c.Request.Context(), kind, req)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, gin.H{"reservation": toView(r)})
	}
}

func (h *Handler) getReservation(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reservationID(c)
		if !ok {
			return
		}
		r, err := h.service.GetReservation(c.Request.Context(), kind, id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"reservation": toView(r)})
	}
}

func (h *Handler) move(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reservationID(c)
		if !ok {
			return
		}
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		r, err := h.service.Move(c.Request.Context(), kind, id, req)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"reservation": toView(r)})
	}
}

func (h *Handler) updateStatus(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reservationID(c)
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		next := domain.ReservationStatus(req.Status)
		switch next {
		case domain.ReservationConfirmed, domain.ReservationCanceled, domain.ReservationDone:
		default:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status")
			return
		}
		if err := h.service.UpdateStatus(c.Request.Context(), kind, id, next); err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"id": id, "status": string(next)})
	}
}

func (h *Handler) updateDetails(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reservationID(c)
		if !ok {
			return
		}
		var req UpdateDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
		r, err := h.service.UpdateDetails(c.Request.Context(), kind, id, req)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"reservation": toView(r)})
	}
}

func (h *Handler) cancel(kind domain.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reservationID(c)
		if !ok {
			return
		}
		if err := h.service.Cancel(c.Request.Context(), kind, id); err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"id": id, "status": string(domain.ReservationCanceled)})
	}
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var taken *SlotTakenError
	switch {
	case errors.As(err, &taken):
		if taken.Conflict.ReservationID != 0 {
			response.ErrorWithDetails(c, http.StatusConflict, "SLOT_TAKEN", taken.Error(), gin.H{
				"reservation_id": taken.Conflict.ReservationID,
				"start_time":     timegrid.MinutesToTime(taken.Conflict.StartMin),
				"end_time":       timegrid.MinutesToTime(taken.Conflict.EndMin),
				"blocked_until":  timegrid.MinutesToTime(taken.Conflict.EffectiveEndMin),
			})
			return
		}
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot is already taken")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid time range or date")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation or resource not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Status transition not allowed")
	default:
		logrus.WithError(err).Error("schedule request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
