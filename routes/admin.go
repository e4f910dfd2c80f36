package routes

import (
	"civiclens/controllers"
	"civiclens/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers user management, analytics and audit routes on an
// authenticated group
func SetupAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/users", middlewares.RBACMiddleware("user", "read"), controllers.GetUsersHandler)
	rg.PUT("/admin/users/:id/role", middlewares.RBACMiddleware("user", "update"), controllers.UpdateUserRoleHandler)
	rg.GET("/admin/logs", middlewares.RBACMiddleware("user", "read"), controllers.GetAdminActionLogs)

	rg.GET("/analytics", middlewares.RBACMiddleware("analytics", "read"), controllers.GetAnalytics)
	rg.GET("/analytics/history", middlewares.RBACMiddleware("analytics", "read"), controllers.GetAnalyticsHistory)
}
