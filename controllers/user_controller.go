package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type UserRequest struct {
	Username string `json:"username" binding:"max=150"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
	FullName string `json:"fullName" binding:"max=255"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	RoleID   *uint  `json:"roleId"`
}

func (r UserRequest) toInput() services.UserInput {
	return services.UserInput{
		Username: r.Username,
		Password: r.Password,
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		RoleID:   r.RoleID,
	}
}

type UserController struct {
	Users *services.UserService
	Log   *logrus.Logger
}

func NewUserController(users *services.UserService, log *logrus.Logger) *UserController {
	return &UserController{Users: users, Log: log}
}

func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.Users.List(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.Users.Get(c.Request.Context(), id)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Users.Create(c.Request.Context(), req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.Users.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Users.Delete(c.Request.Context(), id); err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (ctrl *UserController) ListRoles(c *gin.Context) {
	roles, err := ctrl.Users.ListRoles(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}
