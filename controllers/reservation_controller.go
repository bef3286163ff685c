package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/middleware"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type ReservationController struct {
	reservations services.ReservationService
}

func NewReservationController(reservations services.ReservationService) *ReservationController {
	return &ReservationController{reservations: reservations}
}

type createReservationPayload struct {
	RoomTypeID   uint   `json:"roomTypeId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload createReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	reservation, err := rc.reservations.Create(c.Request.Context(), p, services.CreateReservationInput{
		RoomTypeID:   payload.RoomTypeID,
		CheckInDate:  payload.CheckInDate,
		CheckOutDate: payload.CheckOutDate,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// CancelReservation is the only client-initiated transition: PENDING or
// CONFIRMED stays may be cancelled by their owner.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := rc.reservations.Cancel(c.Request.Context(), p, id); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservation cancelled")
}

func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	rows, err := rc.reservations.ListForUser(c.Request.Context(), p)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (rc *ReservationController) GetMyReservation(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	row, err := rc.reservations.GetForUser(c.Request.Context(), p, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, row)
}

// ---- admin ----

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	rows, err := rc.reservations.ListAll(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (rc *ReservationController) ConfirmReservation(c *gin.Context) {
	rc.adminTransition(c, rc.reservations.Confirm, "Reservation confirmed")
}

func (rc *ReservationController) CheckInReservation(c *gin.Context) {
	rc.adminTransition(c, rc.reservations.CheckIn, "Guest checked in")
}

func (rc *ReservationController) CheckOutReservation(c *gin.Context) {
	rc.adminTransition(c, rc.reservations.CheckOut, "Guest checked out")
}

func (rc *ReservationController) adminTransition(c *gin.Context, op func(ctx context.Context, id uint) error, okMessage string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, okMessage)
}
