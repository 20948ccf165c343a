package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/controllers"
	"hotel-backoffice/middleware"
)

// Controllers groups every handler set the router mounts.
type Controllers struct {
	Guests       *controllers.GuestController
	Rooms        *controllers.RoomController
	Reservations *controllers.ReservationController
	Invoices     *controllers.InvoiceController
	Items        *controllers.ItemController
	Users        *controllers.UserController
	Dashboard    *controllers.DashboardController
}

type Options struct {
	CorsOrigins  []string
	SystemUserID uint
	Log          *logrus.Logger
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	if err := controllers.RegisterValidators(); err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Log != nil {
		r.Use(middleware.Logger(opts.Log))
	}

	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.ActorHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Actor(opts.SystemUserID))
	{
		guests := api.Group("/guests")
		{
			guests.GET("", ctl.Guests.List)
			guests.GET("/:id", ctl.Guests.Get)
			guests.POST("", ctl.Guests.Create)
			guests.PUT("/:id", ctl.Guests.Update)
			guests.DELETE("/:id", ctl.Guests.Delete)
			guests.GET("/:id/reservations", ctl.Guests.ListReservations)
			guests.GET("/:id/stays", ctl.Guests.ListStays)
			guests.GET("/:id/invoices", ctl.Guests.ListInvoices)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.List)
			rooms.GET("/:id", ctl.Rooms.Get)
			rooms.POST("", ctl.Rooms.Create)
			rooms.PUT("/:id", ctl.Rooms.Update)
			rooms.DELETE("/:id", ctl.Rooms.Delete)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", ctl.Rooms.ListTypes)
			roomTypes.GET("/:id", ctl.Rooms.GetType)
			roomTypes.POST("", ctl.Rooms.CreateType)
			roomTypes.PUT("/:id", ctl.Rooms.UpdateType)
			roomTypes.DELETE("/:id", ctl.Rooms.DeleteType)
		}

		api.GET("/room-statuses", ctl.Rooms.ListStatuses)
		api.GET("/room-statuses/:id", ctl.Rooms.GetStatus)

		reservations := api.Group("/reservations")
		{
			reservations.GET("", ctl.Reservations.List)
			reservations.GET("/by-ref/:code", ctl.Reservations.GetByReference)
			reservations.GET("/:id", ctl.Reservations.Get)
			reservations.POST("", ctl.Reservations.Create)
			reservations.PUT("/:id", ctl.Reservations.Update)
			reservations.DELETE("/:id", ctl.Reservations.Delete)
			reservations.POST("/:id/check-in", ctl.Reservations.CheckIn)
			reservations.POST("/:id/check-out", ctl.Reservations.CheckOut)
			reservations.GET("/:id/stays", ctl.Reservations.ListStays)
		}

		api.GET("/stays/:id", ctl.Reservations.GetStay)

		invoices := api.Group("/invoices")
		{
			invoices.GET("", ctl.Invoices.List)
			invoices.POST("", ctl.Invoices.CreateFromStay)
			invoices.GET("/by-stay/:stayId", ctl.Invoices.GetByStay)
			invoices.GET("/:id", ctl.Invoices.Get)
			invoices.PATCH("/:id", ctl.Invoices.Update)
			invoices.DELETE("/:id", ctl.Invoices.Delete)
			invoices.GET("/:id/items", ctl.Invoices.ListItems)
			invoices.POST("/:id/items", ctl.Invoices.AddItem)
		}

		items := api.Group("/items")
		{
			items.GET("", ctl.Items.List)
			items.GET("/:id", ctl.Items.Get)
			items.POST("", ctl.Items.Create)
			items.PATCH("/:id", ctl.Items.Update)
			items.DELETE("/:id", ctl.Items.Delete)
		}
		api.GET("/item-types", ctl.Items.ListTypes)
		api.POST("/item-types", ctl.Items.CreateType)

		users := api.Group("/users")
		{
			users.GET("", ctl.Users.List)
			users.GET("/:id", ctl.Users.Get)
			users.POST("", ctl.Users.Create)
			users.PUT("/:id", ctl.Users.Update)
			users.DELETE("/:id", ctl.Users.Delete)
		}
		api.GET("/roles", ctl.Users.ListRoles)

		api.GET("/dashboard", ctl.Dashboard.Overview)
		api.GET("/activity", ctl.Dashboard.ListActivity)
	}

	return r
}
