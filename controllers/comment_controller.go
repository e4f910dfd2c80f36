package controllers

import (
	"context"
	"net/http"
	"time"

	"civiclens/db"
	"civiclens/middlewares"
	"civiclens/models"
	"civiclens/services"
	"civiclens/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCommentHandler records a new comment on a bill, scoring its sentiment
// at ingest
func CreateCommentHandler(c *gin.Context) {
	var req struct {
		BillID  string `json:"billId" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	billObjectID, err := primitive.ObjectIDFromHex(req.BillID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	email := c.GetString("userEmail")
	user, err := utils.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to fetch user"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := db.MongoDatabase.Collection("bills").FindOne(ctx, bson.M{"_id": billObjectID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	scored := services.GetSentimentService().ScoreLocal(req.Content)
	now := time.Now()
	comment := models.Comment{
		ID:          primitive.NewObjectID(),
		BillID:      billObjectID,
		UserID:      &user.ID,
		Email:       email,
		DisplayName: user.DisplayName,
		Content:     req.Content,
		Source:      models.CommentSourceWeb,
		Sentiment:   string(scored.Sentiment),
		Score:       scored.Score,
		Confidence:  scored.Confidence,
		CreatedAt:   now,
	}

	if _, err := db.MongoDatabase.Collection("comments").InsertOne(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	db.MongoDatabase.Collection("bills").UpdateOne(ctx,
		bson.M{"_id": billObjectID},
		bson.M{"$inc": bson.M{"commentCount": 1}},
	)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetCommentsHandler returns all live comments for a bill, newest first
func GetCommentsHandler(c *gin.Context) {
	billObjectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.MongoDatabase.Collection("comments").Find(ctx, bson.M{
		"billId":    billObjectID,
		"isDeleted": bson.M{"$ne": true},
	}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteCommentHandler soft-deletes the caller's own comment
func DeleteCommentHandler(c *gin.Context) {
	commentObjectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	email := c.GetString("userEmail")
	userID, err := utils.GetUserIDFromEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to get user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := db.MongoDatabase.Collection("comments").UpdateOne(ctx,
		bson.M{"_id": commentObjectID, "userId": userID, "isDeleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now, "deletedBy": userID}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.ModifiedCount == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Comment not found or you don't have permission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ModerateCommentHandler soft-deletes any comment (moderator/admin, enforced
// by RBAC route) and records the action
func ModerateCommentHandler(c *gin.Context) {
	commentObjectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	email := c.GetString("userEmail")
	moderatorID, err := utils.GetUserIDFromEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to get user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := db.MongoDatabase.Collection("comments").UpdateOne(ctx,
		bson.M{"_id": commentObjectID, "isDeleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now, "deletedBy": moderatorID}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.ModifiedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	middlewares.LogAdminAction(c, "delete_comment", "comment", commentObjectID, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Comment removed"})
}
