package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Activity  *services.ActivityService
	Log       *logrus.Logger
}

func NewDashboardController(dashboard *services.DashboardService, activity *services.ActivityService, log *logrus.Logger) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Activity: activity, Log: log}
}

// GET /api/dashboard
func (ctrl *DashboardController) Overview(c *gin.Context) {
	out, err := ctrl.Dashboard.Overview(c.Request.Context())
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/activity?entity=&limit=
func (ctrl *DashboardController) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	rows, err := ctrl.Activity.List(c.Request.Context(), c.Query("entity"), limit)
	if err != nil {
		utils.JSONServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
