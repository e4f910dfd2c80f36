package routes

import (
	"civiclens/controllers"
	"civiclens/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupBillRoutes registers bill, comment and analysis routes on an
// authenticated group
func SetupBillRoutes(rg *gin.RouterGroup) {
	rg.GET("/bills", controllers.GetBillsHandler)
	rg.GET("/bills/:id", controllers.GetBillHandler)
	rg.POST("/bills", middlewares.RBACMiddleware("bill", "create"), controllers.CreateBillHandler)

	rg.GET("/bills/:id/comments", controllers.GetCommentsHandler)
	rg.POST("/comments", controllers.CreateCommentHandler)
	rg.DELETE("/comments/:id", controllers.DeleteCommentHandler)
	rg.DELETE("/moderation/comments/:id", middlewares.RBACMiddleware("comment", "delete"), controllers.ModerateCommentHandler)

	rg.GET("/bills/:id/analysis/frequencies", controllers.GetBillFrequenciesHandler)
	rg.GET("/bills/:id/analysis/sentiment", controllers.GetBillSentimentHandler)
	rg.GET("/bills/:id/analysis/summary", controllers.GetBillSummaryHandler)
	rg.GET("/bills/:id/analysis/wordcloud", controllers.GetBillWordCloudHandler)

	rg.POST("/bills/:id/feed/start", middlewares.RBACMiddleware("feed", "manage"), controllers.StartBillFeedHandler)
	rg.POST("/bills/:id/feed/stop", middlewares.RBACMiddleware("feed", "manage"), controllers.StopBillFeedHandler)
}
