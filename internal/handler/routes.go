package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resifee-be-svc/internal/middleware"
	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
)

// Routes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	userService service.UserService,
	householdService service.HouseholdService,
	residentService service.ResidentService,
	feeTypeService service.FeeTypeService,
	billService service.BillService,
	statsService service.StatisticsService,
	notificationService service.NotificationService,
	auditService service.AuditService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, auditService, logger)
	householdHandler := NewHouseholdHandler(householdService, auditService, logger)
	residentHandler := NewResidentHandler(residentService, auditService, logger)
	feeTypeHandler := NewFeeTypeHandler(feeTypeService, auditService, logger)
	billHandler := NewBillHandler(billService, householdService, auditService, logger)
	statsHandler := NewStatisticsHandler(statsService, logger)
	notificationHandler := NewNotificationHandler(notificationService, auditService, logger)
	logHandler := NewLogHandler(auditService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Admin routes
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRole(models.RoleAdmin))
		{
			households := admin.Group("/households")
			{
				households.GET("", householdHandler.ListHouseholds)
				households.GET("/:id", householdHandler.GetHousehold)
				households.POST("", householdHandler.CreateHousehold)
				households.PUT("/:id", householdHandler.UpdateHousehold)
				households.DELETE("/:id", householdHandler.DeleteHousehold)
			}

			residents := admin.Group("/residents")
			{
				residents.GET("", residentHandler.ListResidents)
				residents.GET("/:id", residentHandler.GetResident)
				residents.POST("", residentHandler.CreateResident)
				residents.PUT("/:id", residentHandler.UpdateResident)
				residents.DELETE("/:id", residentHandler.DeleteResident)
			}

			feeTypes := admin.Group("/fee-types")
			{
				feeTypes.GET("", feeTypeHandler.ListFeeTypes)
				feeTypes.GET("/:id", feeTypeHandler.GetFeeType)
				feeTypes.POST("", feeTypeHandler.CreateFeeType)
				feeTypes.PUT("/:id", feeTypeHandler.UpdateFeeType)
				feeTypes.DELETE("/:id", feeTypeHandler.DeleteFeeType)
			}

			bills := admin.Group("/bills")
			{
				bills.GET("", billHandler.ListBills)
				bills.GET("/export", billHandler.ExportBills)
				bills.GET("/:id", billHandler.GetBill)
				bills.POST("", billHandler.CreateBill)
				bills.PUT("/:id", billHandler.UpdateBill)
				bills.DELETE("/:id", billHandler.DeleteBill)
			}

			statistics := admin.Group("/statistics")
			{
				statistics.GET("/overall", statsHandler.GetOverall)
				statistics.GET("/by-fee-type", statsHandler.GetByFeeType)
				statistics.GET("/by-household", statsHandler.GetByHousehold)
				statistics.GET("/by-collector", statsHandler.GetByCollector)
				statistics.GET("/by-payment-status", statsHandler.GetByPaymentStatus)
				statistics.GET("/by-period", statsHandler.GetByPeriod)
			}

			users := admin.Group("/users")
			{
				users.GET("", userHandler.ListUsers)
				users.GET("/:id", userHandler.GetUser)
				users.POST("", userHandler.CreateUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}

			notifications := admin.Group("/notifications")
			{
				notifications.GET("", notificationHandler.ListNotifications)
				notifications.GET("/:id", notificationHandler.GetNotification)
				notifications.POST("", notificationHandler.CreateNotification)
				notifications.PUT("/:id", notificationHandler.UpdateNotification)
				notifications.DELETE("/:id", notificationHandler.DeleteNotification)
			}

			admin.GET("/logs", logHandler.ListLogs)
		}

		// Resident self-service routes
		my := v1.Group("/my")
		my.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRole(models.RoleResident))
		{
			my.GET("/household", householdHandler.GetMyHousehold)
			my.GET("/bills", billHandler.ListMyBills)
			my.GET("/notifications", notificationHandler.ListMyNotifications)
			my.PUT("/notifications/:id/read", notificationHandler.MarkMyNotificationRead)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Residential Fee Backend Service",
	})
}
