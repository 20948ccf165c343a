package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type CreateInvoiceRequest struct {
	StayID          uint  `json:"stayId" binding:"required"`
	CreatedByUserID *uint `json:"createdByUserId"`
}

type AddServiceItemRequest struct {
	ItemID         uint     `json:"itemId" binding:"required"`
	Amount         *float64 `json:"amount" binding:"omitempty,gte=0"`
	PostedByUserID *uint    `json:"postedByUserId"`
}

type UpdateInvoiceRequest struct {
	Balance       *float64 `json:"balance"`
	Currency      *string  `json:"currency" binding:"omitempty,len=3"`
	Status        *string  `json:"status" binding:"omitempty,oneof=unpaid paid cancelled UNPAID PAID CANCELLED"`
	PaymentMethod *string  `json:"paymentMethod" binding:"omitempty,max=32"`
}

type InvoiceController struct {
	Invoices *services.InvoiceService
	Log      *logrus.Logger
}

func NewInvoiceController(invoices *services.InvoiceService, log *logrus.Logger) *InvoiceController {
	return &InvoiceController{Invoices: invoices, Log: log}
}

func (ctrl *InvoiceController) List(c *gin.Context) {
	out, err := ctrl.Invoices.List(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *InvoiceController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	inv, err := ctrl.Invoices.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/invoices/by-stay/:stayId
func (ctrl *InvoiceController) GetByStay(c *gin.Context) {
	stayID, ok := parseUintParam(c, "stayId")
	if !ok {
		return
	}
	inv, err := ctrl.Invoices.GetByStay(c.Request.Context(), stayID)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// POST /api/invoices opens the invoice of a stay.
func (ctrl *InvoiceController) CreateFromStay(c *gin.Context) {
	var req CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	createdBy := req.CreatedByUserID
	if createdBy == nil {
		if id, ok := services.ActorFromContext(c.Request.Context()); ok {
			createdBy = &id
		}
	}
	inv, err := ctrl.Invoices.CreateFromStay(c.Request.Context(), req.StayID, createdBy)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (ctrl *InvoiceController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := ctrl.Invoices.Update(c.Request.Context(), id, services.InvoicePatch{
		Balance:       req.Balance,
		Currency:      req.Currency,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (ctrl *InvoiceController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Invoices.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

func (ctrl *InvoiceController) ListItems(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	items, err := ctrl.Invoices.ListItems(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/invoices/:id/items
func (ctrl *InvoiceController) AddItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AddServiceItemRequest
	if !bindJSON(c, &req) {
		return
	}
	line, err := ctrl.Invoices.AddServiceItem(c.Request.Context(), id, req.ItemID, req.Amount, req.PostedByUserID)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}
