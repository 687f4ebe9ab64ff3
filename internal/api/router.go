package api

import (
	"arogya/queue-service/internal/api/handler/admin"
	"arogya/queue-service/internal/api/handler/insights"
	"arogya/queue-service/internal/api/handler/queue"
	"arogya/queue-service/internal/api/handler/staff"
	"arogya/queue-service/internal/api/handler/token"
	"arogya/queue-service/internal/api/middleware"
	"arogya/queue-service/internal/domain"
)

// SetupAPIRoutes
// @title						Walk-In Queue Service
// @version         			1.0.0
// @description     			Token queue APIs for patients, staff, and admins
// @Host 						localhost:8080
// @BasePath  					/
// @Schemes 					https
func (s *Server) SetupAPIRoutes(
	tokenHandler *token.TokenHandler,
	queueHandler *queue.QueueHandler,
	staffHandler *staff.StaffHandler,
	adminHandler *admin.AdminHandler,
	insightsHandler *insights.InsightsHandler,
) {
	r := s.engine

	v1 := r.Group("v1")

	// the display board is public; everything else needs gateway identity
	v1.GET("/queue/status", queueHandler.Status)

	authed := v1.Group("")
	authed.Use(middleware.HandleAuth())
	{
		authed.POST("/tokens", tokenHandler.Issue)
		authed.GET("/me/tokens", tokenHandler.MyTokens)
		authed.GET("/me/suggestions", tokenHandler.MySuggestions)
		authed.GET("/me/notifications", tokenHandler.Notifications)
		authed.PUT("/me/notifications/:id/read", tokenHandler.MarkNotificationRead)

		authed.POST("/insights/priority", insightsHandler.Priority)
		authed.POST("/insights/predict-wait", insightsHandler.PredictWait)
		authed.POST("/insights/predict-completion", insightsHandler.PredictCompletion)
	}

	staffGroup := v1.Group("/staff")
	staffGroup.Use(middleware.HandleAuth(), middleware.RequireRoles(domain.RoleDoctor, domain.RoleAdmin))
	{
		staffGroup.GET("/patients", staffHandler.Patients)
		staffGroup.PUT("/patients/:id/call", staffHandler.CallPatient)
		staffGroup.POST("/suggestions", staffHandler.AddSuggestion)
		staffGroup.PUT("/patients/:id/complete", staffHandler.CompletePatient)
	}

	insightsStaff := v1.Group("/insights")
	insightsStaff.Use(middleware.HandleAuth(), middleware.RequireRoles(domain.RoleDoctor, domain.RoleAdmin))
	{
		insightsStaff.POST("/optimize", insightsHandler.Optimize)
	}

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.HandleAuth(), middleware.RequireRoles(domain.RoleAdmin))
	{
		adminGroup.PUT("/queue/next", adminHandler.CallNext)
		adminGroup.POST("/queue/reset", adminHandler.ResetQueue)
		adminGroup.GET("/queue/history", queueHandler.History)
	}
}
