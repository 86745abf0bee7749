package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinician-scheduler-server/internal/config"
	"clinician-scheduler-server/internal/handlers"
	"clinician-scheduler-server/internal/middleware"
	"clinician-scheduler-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	scheduleItemHandler := handlers.NewScheduleItemHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Clinician roster, accessible by all authenticated users for booking
			userRoutes.GET("/clinicians", userHandler.GetClinicians)

			// Admin-only roster management
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Schedule item routes
		scheduleItemRoutes := private.Group("/schedule-items")
		{
			// Clinicians self-schedule, admins assign work (gate decided in handler)
			scheduleItemRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleClinician, models.RoleAdmin), scheduleItemHandler.CreateScheduleItem)

			// Calendar views and dashboard counts
			scheduleItemRoutes.GET("", scheduleItemHandler.GetScheduleItems)
			scheduleItemRoutes.GET("/summary", scheduleItemHandler.GetScheduleSummary)
			scheduleItemRoutes.GET("/:id", scheduleItemHandler.GetScheduleItemByID) // Authorization inside handler

			// Status transitions and field edits (role gate in handler, status gate in the engine)
			scheduleItemRoutes.PATCH("/:id/status", scheduleItemHandler.UpdateScheduleItemStatus)
			scheduleItemRoutes.PATCH("/:id", scheduleItemHandler.EditScheduleItem)

			// Bulk transitions, admin only
			scheduleItemRoutes.POST("/bulk-status", middleware.RoleAuthMiddleware(models.RoleAdmin), scheduleItemHandler.BulkUpdateStatus)
		}

		// Appointment booking routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("/slots", appointmentHandler.GetSlots)
			appointmentRoutes.POST("", appointmentHandler.BookAppointment)                     // Authorization inside handler
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)               // Logic inside handler differentiates by role
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus) // Authorization inside handler
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
