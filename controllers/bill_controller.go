package controllers

import (
	"context"
	"net/http"
	"time"

	"civiclens/db"
	"civiclens/middlewares"
	"civiclens/models"
	"civiclens/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateBillHandler creates a new bill (admin only, enforced by RBAC route)
func CreateBillHandler(c *gin.Context) {
	var req struct {
		Title        string    `json:"title" binding:"required"`
		Number       string    `json:"number" binding:"required"`
		Sponsor      string    `json:"sponsor"`
		Summary      string    `json:"summary"`
		Body         string    `json:"body" binding:"required"`
		Status       string    `json:"status"`
		IntroducedAt time.Time `json:"introducedAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}
	introducedAt := req.IntroducedAt
	if introducedAt.IsZero() {
		introducedAt = time.Now()
	}

	now := time.Now()
	bill := models.Bill{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		Number:       req.Number,
		Sponsor:      req.Sponsor,
		Summary:      req.Summary,
		Body:         req.Body,
		Status:       status,
		IntroducedAt: introducedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("bills").InsertOne(ctx, bill); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		return
	}

	middlewares.LogAdminAction(c, "create_bill", "bill", bill.ID, map[string]interface{}{"number": bill.Number})
	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBillsHandler lists bills, newest first
func GetBillsHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"introducedAt": -1})
	cursor, err := db.MongoDatabase.Collection("bills").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bills"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetBillHandler fetches a single bill
func GetBillHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var bill models.Bill
	if err := db.MongoDatabase.Collection("bills").FindOne(ctx, bson.M{"_id": billID}).Decode(&bill); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// StartBillFeedHandler starts the simulated live comment feed for a bill
func StartBillFeedHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	if !services.GetFeedService().Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Simulated feeds are disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	if err := db.MongoDatabase.Collection("bills").FindOne(ctx, bson.M{"_id": billID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	services.GetFeedService().StartSimulatedFeed(billID)
	c.JSON(http.StatusOK, gin.H{"message": "Live feed started"})
}

// StopBillFeedHandler stops the simulated live comment feed for a bill
func StopBillFeedHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	services.GetFeedService().StopSimulatedFeed(billID)
	c.JSON(http.StatusOK, gin.H{"message": "Live feed stopped"})
}
