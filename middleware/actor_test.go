package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hotel-backoffice/services"
)

func actorRouter(system uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Actor(system))
	r.GET("/who", func(c *gin.Context) {
		id, ok := services.ActorFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	return r
}

func TestActorFallsBackToSystemUser(t *testing.T) {
	w := httptest.NewRecorder()
	actorRouter(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"ok":true}`, w.Body.String())
}

func TestActorFromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(ActorHeader, "42")
	w := httptest.NewRecorder()
	actorRouter(1).ServeHTTP(w, req)

	assert.JSONEq(t, `{"id":42,"ok":true}`, w.Body.String())
}

func TestActorRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(ActorHeader, "abc")
	w := httptest.NewRecorder()
	actorRouter(1).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error.invalidActor")
}
