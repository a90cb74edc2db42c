package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hotel-manager/docs"

	"hotel-manager/controllers"
	middlewares "hotel-manager/middleware"
	"hotel-manager/models"
	"hotel-manager/services"
	"hotel-manager/services/logger"
)

func SetupRoutes(router *gin.Engine, svc *services.Container, log logger.Logger) {
	router.Use(middlewares.RequestID(), middlewares.RequestLogger(log))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authController := controllers.NewAuthController(svc.Auth)
	clientController := controllers.NewClientController(svc.Clients)
	roomController := controllers.NewRoomController(svc.Rooms)
	reservationController := controllers.NewReservationController(svc.Reservations)
	dashboardController := controllers.NewDashboardController(svc.Dashboard)

	auth := middlewares.AuthMiddleware(svc.Auth)
	admin := middlewares.RoleMiddleware(models.UserRoleAdmin)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/register", authController.RegisterUser)

	secured := v1.Group("", auth)
	secured.GET("/auth/me", authController.Me)

	secured.GET("/clients", clientController.GetClients)
	secured.POST("/clients", clientController.CreateClient)
	secured.GET("/clients/:id", clientController.GetClient)
	secured.PUT("/clients/:id", clientController.UpdateClient)
	secured.DELETE("/clients/:id", clientController.DeleteClient)

	secured.GET("/rooms", roomController.GetAllRooms)
	secured.GET("/rooms/available", roomController.GetAvailableRooms)
	secured.GET("/rooms/number/:number", roomController.GetRoomByNumber)
	secured.GET("/rooms/:id", roomController.GetRoomDetail)
	secured.GET("/rooms/:id/availability", roomController.GetRoomAvailability)
	secured.POST("/rooms", admin, roomController.CreateRoom)
	secured.PUT("/rooms/:id", admin, roomController.UpdateRoom)
	secured.DELETE("/rooms/:id", admin, roomController.DeleteRoom)
	secured.POST("/rooms/:id/photo", admin, roomController.UploadRoomPhoto)

	secured.GET("/reservations", reservationController.GetReservations)
	secured.GET("/reservations/quote", reservationController.QuoteReservation)
	secured.POST("/reservations", reservationController.CreateReservation)
	secured.GET("/reservations/:id", reservationController.GetReservation)
	secured.PUT("/reservations/:id", reservationController.UpdateReservation)
	secured.DELETE("/reservations/:id", reservationController.DeleteReservation)
	secured.POST("/reservations/:id/confirm", reservationController.ConfirmReservation)
	secured.POST("/reservations/:id/cancel", reservationController.CancelReservation)
	secured.POST("/reservations/:id/checkin", reservationController.CheckInReservation)
	secured.POST("/reservations/:id/checkout", reservationController.CheckOutReservation)

	secured.GET("/dashboard", dashboardController.GetDashboard)
}
