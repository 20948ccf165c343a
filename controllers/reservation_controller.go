package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type RoomBookingRequest struct {
	RoomID        *uint    `json:"roomId"`
	RoomTypeID    *uint    `json:"roomTypeId"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	PricePerNight *float64 `json:"pricePerNight" binding:"omitempty,gte=0"`
}

type ReservationRequest struct {
	GuestID         *uint                `json:"guestId"`
	CreatedByUserID *uint                `json:"createdByUserId"`
	Status          string               `json:"status" binding:"max=32"`
	ArrivalDate     *Date                `json:"arrivalDate"`
	DepartureDate   *Date                `json:"departureDate"`
	NumGuests       int                  `json:"numGuests" binding:"gte=0"`
	TotalEstimated  *float64             `json:"totalEstimated" binding:"omitempty,gte=0"`
	CreatedAt       *Date                `json:"createdAt"`
	Rooms           []RoomBookingRequest `json:"rooms" binding:"dive"`
}

func (r ReservationRequest) toInput() services.ReservationInput {
	in := services.ReservationInput{
		GuestID:         r.GuestID,
		CreatedByUserID: r.CreatedByUserID,
		Status:          strings.TrimSpace(r.Status),
		ArrivalDate:     r.ArrivalDate.Ptr(),
		DepartureDate:   r.DepartureDate.Ptr(),
		NumGuests:       r.NumGuests,
		TotalEstimated:  r.TotalEstimated,
		CreatedAt:       r.CreatedAt.Ptr(),
		Rooms:           make([]services.RoomBookingInput, 0, len(r.Rooms)),
	}
	for _, b := range r.Rooms {
		in.Rooms = append(in.Rooms, services.RoomBookingInput{
			RoomID:        b.RoomID,
			RoomTypeID:    b.RoomTypeID,
			Price:         b.Price,
			PricePerNight: b.PricePerNight,
		})
	}
	return in
}

type ReservationController struct {
	Reservations *services.ReservationService
	Stays        *services.StayService
	Log          *logrus.Logger
}

func NewReservationController(reservations *services.ReservationService, stays *services.StayService, log *logrus.Logger) *ReservationController {
	return &ReservationController{Reservations: reservations, Stays: stays, Log: log}
}

// GET /api/reservations?guestName=&status=
func (ctrl *ReservationController) List(c *gin.Context) {
	out, err := ctrl.Reservations.List(c.Request.Context(), c.Query("guestName"), c.Query("status"))
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *ReservationController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	res, err := ctrl.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *ReservationController) Create(c *gin.Context) {
	var req ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctrl.Reservations.Create(c.Request.Context(), req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created successfully", "data": res})
}

func (ctrl *ReservationController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctrl.Reservations.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated successfully", "data": res})
}

func (ctrl *ReservationController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Reservations.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

// POST /api/reservations/:id/check-in
func (ctrl *ReservationController) CheckIn(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	stays, err := ctrl.Stays.CheckIn(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-in completed", "data": stays})
}

// POST /api/reservations/:id/check-out
func (ctrl *ReservationController) CheckOut(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	stays, err := ctrl.Stays.CheckOut(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-out completed", "data": stays})
}

func (ctrl *ReservationController) ListStays(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	stays, err := ctrl.Stays.ListByReservation(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, stays)
}

// GET /api/stays/:id
func (ctrl *ReservationController) GetStay(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	stay, err := ctrl.Stays.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, stay)
}

// GET /api/reservations/by-ref/:code
func (ctrl *ReservationController) GetByReference(c *gin.Context) {
	res, err := ctrl.Reservations.GetByReference(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
