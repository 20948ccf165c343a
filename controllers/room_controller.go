package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/models"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type RoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"max=50"`
	Floor      string `json:"floor" binding:"max=10"`
	Image      string `json:"image" binding:"max=255"`
	RoomTypeID uint   `json:"roomTypeId"`
	StatusID   uint   `json:"statusId"`
	Status     string `json:"status" binding:"roomstatus"`
}

func (r RoomRequest) toInput() services.RoomInput {
	return services.RoomInput{
		RoomNumber: r.RoomNumber,
		Floor:      r.Floor,
		Image:      r.Image,
		RoomTypeID: r.RoomTypeID,
		StatusID:   r.StatusID,
		StatusName: r.Status,
	}
}

// RoomController also serves room types and room statuses.
type RoomController struct {
	Rooms    *services.RoomService
	Types    *services.RoomTypeService
	Statuses *services.RoomStatusService
	Log      *logrus.Logger
}

func NewRoomController(rooms *services.RoomService, types *services.RoomTypeService, statuses *services.RoomStatusService, log *logrus.Logger) *RoomController {
	return &RoomController{Rooms: rooms, Types: types, Statuses: statuses, Log: log}
}

// GET /api/rooms?search=&statusId=&roomTypeId=
func (ctrl *RoomController) List(c *gin.Context) {
	statusID, ok := parseUintQuery(c, "statusId")
	if !ok {
		return
	}
	roomTypeID, ok := parseUintQuery(c, "roomTypeId")
	if !ok {
		return
	}
	rooms, err := ctrl.Rooms.List(c.Request.Context(), services.RoomFilter{
		Search:     c.Query("search"),
		StatusID:   statusID,
		RoomTypeID: roomTypeID,
	})
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) Create(c *gin.Context) {
	var req RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := ctrl.Rooms.Create(c.Request.Context(), req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := ctrl.Rooms.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Rooms.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// ---------------------------
// Room types
// ---------------------------

type RoomTypeRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	BedCount     int     `json:"bedCount" binding:"gte=0"`
	MaxOccupancy int     `json:"maxOccupancy" binding:"gte=0"`
	BasePrice    float64 `json:"basePrice" binding:"gte=0"`
}

func (r RoomTypeRequest) toModel() models.RoomType {
	return models.RoomType{Name: r.Name, BedCount: r.BedCount, MaxOccupancy: r.MaxOccupancy, BasePrice: r.BasePrice}
}

func (ctrl *RoomController) ListTypes(c *gin.Context) {
	types, err := ctrl.Types.List(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *RoomController) GetType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	rt, err := ctrl.Types.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (ctrl *RoomController) CreateType(c *gin.Context) {
	var req RoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	rt := req.toModel()
	if err := ctrl.Types.Create(c.Request.Context(), &rt); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func (ctrl *RoomController) UpdateType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req RoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	rt, err := ctrl.Types.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (ctrl *RoomController) DeleteType(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Types.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room type deleted successfully"})
}

// ---------------------------
// Room statuses
// ---------------------------

func (ctrl *RoomController) ListStatuses(c *gin.Context) {
	statuses, err := ctrl.Statuses.List(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (ctrl *RoomController) GetStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	st, err := ctrl.Statuses.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
