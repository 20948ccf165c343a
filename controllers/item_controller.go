package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/models"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type ItemRequest struct {
	Name       *string  `json:"name" binding:"omitempty,max=255"`
	Price      *float64 `json:"price" binding:"omitempty,gte=0"`
	Status     *string  `json:"status" binding:"omitempty,max=32"`
	Image      *string  `json:"image" binding:"omitempty,max=255"`
	ItemTypeID *uint    `json:"itemTypeId"`
}

type ItemTypeRequest struct {
	TypeName string `json:"typeName" binding:"required,max=100"`
}

type ItemController struct {
	Items *services.ItemService
	Log   *logrus.Logger
}

func NewItemController(items *services.ItemService, log *logrus.Logger) *ItemController {
	return &ItemController{Items: items, Log: log}
}

// GET /api/items?status=
func (ctrl *ItemController) List(c *gin.Context) {
	items, err := ctrl.Items.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ctrl *ItemController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	item, err := ctrl.Items.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ctrl *ItemController) Create(c *gin.Context) {
	var req ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item := models.Item{ItemTypeID: req.ItemTypeID}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if err := ctrl.Items.Create(c.Request.Context(), &item); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// PATCH /api/items/:id applies only the fields present in the body.
func (ctrl *ItemController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := ctrl.Items.Update(c.Request.Context(), id, services.ItemPatch{
		Name:       req.Name,
		Price:      req.Price,
		Status:     req.Status,
		Image:      req.Image,
		ItemTypeID: req.ItemTypeID,
	})
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ctrl *ItemController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Items.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (ctrl *ItemController) ListTypes(c *gin.Context) {
	types, err := ctrl.Items.ListTypes(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *ItemController) CreateType(c *gin.Context) {
	var req ItemTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	t := models.ItemType{TypeName: req.TypeName}
	if err := ctrl.Items.CreateType(c.Request.Context(), &t); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
