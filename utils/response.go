package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/services"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes {"error": {"code", "message", "details"}}.
func JSONError(c *gin.Context, status int, code, message string, details interface{}) {
	body := gin.H{"code": code, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}

// JSONServiceError maps a service or database error onto the HTTP envelope.
func JSONServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	var nf *services.NotFoundError
	var ve *services.ValidationError

	switch {
	case errors.As(err, &nf):
		JSONError(c, http.StatusNotFound, "error.notFound", nf.Error(), gin.H{"entity": nf.Entity, "id": nf.ID})
	case errors.As(err, &ve):
		JSONError(c, http.StatusBadRequest, "error.validation", ve.Message, gin.H{"field": ve.Field})
	case IsDuplicateKeyError(err):
		JSONError(c, http.StatusConflict, "error.duplicate", "record already exists", err.Error())
	case IsForeignKeyError(err):
		JSONError(c, http.StatusBadRequest, "error.foreignKey", "referenced record does not exist", err.Error())
	default:
		if log != nil {
			log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error", nil)
	}
}
