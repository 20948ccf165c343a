package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/models"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type GuestRequest struct {
	FullName    string `json:"fullName" binding:"required,max=255"`
	Email       string `json:"email" binding:"omitempty,email,max=150"`
	Phone       string `json:"phone" binding:"max=50"`
	DateOfBirth *Date  `json:"dateOfBirth"`
	IDType      string `json:"idType" binding:"max=50"`
	IDNumber    string `json:"idNumber" binding:"max=100"`
}

func (r GuestRequest) toModel() models.Guest {
	return models.Guest{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth.Ptr(),
		IDType:      r.IDType,
		IDNumber:    r.IDNumber,
	}
}

type GuestController struct {
	Guests       *services.GuestService
	Reservations *services.ReservationService
	Stays        *services.StayService
	Invoices     *services.InvoiceService
	Log          *logrus.Logger
}

func NewGuestController(guests *services.GuestService, reservations *services.ReservationService, stays *services.StayService, invoices *services.InvoiceService, log *logrus.Logger) *GuestController {
	return &GuestController{Guests: guests, Reservations: reservations, Stays: stays, Invoices: invoices, Log: log}
}

// GET /api/guests?q=&idType=
func (ctrl *GuestController) List(c *gin.Context) {
	var (
		guests []models.Guest
		err    error
	)
	if c.Query("q") != "" || c.Query("idType") != "" {
		guests, err = ctrl.Guests.Search(c.Request.Context(), c.Query("q"), c.Query("idType"))
	} else {
		guests, err = ctrl.Guests.List(c.Request.Context())
	}
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (ctrl *GuestController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	guest, err := ctrl.Guests.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (ctrl *GuestController) Create(c *gin.Context) {
	var req GuestRequest
	if !bindJSON(c, &req) {
		return
	}
	guest := req.toModel()
	if err := ctrl.Guests.Create(c.Request.Context(), &guest); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

func (ctrl *GuestController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req GuestRequest
	if !bindJSON(c, &req) {
		return
	}
	guest, err := ctrl.Guests.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (ctrl *GuestController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Guests.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted successfully"})
}

func (ctrl *GuestController) ListReservations(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	out, err := ctrl.Reservations.ListByGuest(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *GuestController) ListStays(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	out, err := ctrl.Stays.ListByGuest(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *GuestController) ListInvoices(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	out, err := ctrl.Invoices.ListByGuest(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
