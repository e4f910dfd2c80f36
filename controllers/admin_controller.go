package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"civiclens/db"
	"civiclens/middlewares"
	"civiclens/models"
	"civiclens/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUsersHandler lists registered users (admin/moderator)
func GetUsersHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.MongoDatabase.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserRoleHandler changes a user's role (admin only)
func UpdateUserRoleHandler(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req structs.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	switch req.Role {
	case models.RoleAdmin, models.RoleModerator, models.RoleAnalyst, models.RoleRepresentative, models.RoleCitizen:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role": req.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	middlewares.LogAdminAction(c, "update_role", "user", userID, map[string]interface{}{"role": req.Role})
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// GetAdminActionLogs returns recent admin audit entries
func GetAdminActionLogs(ctx *gin.Context) {
	page := 1
	limit := 50
	if pageStr := ctx.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skip := (page - 1) * limit

	logsCollection := db.MongoDatabase.Collection("admin_action_logs")
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit)).SetSort(bson.M{"timestamp": -1})
	cursor, err := logsCollection.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var logs []models.AdminActionLog
	if err := cursor.All(dbCtx, &logs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode logs", "message": err.Error()})
		return
	}

	total, _ := logsCollection.CountDocuments(dbCtx, bson.M{})

	ctx.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
