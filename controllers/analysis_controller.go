package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civiclens/analysis"
	"civiclens/db"
	"civiclens/models"
	"civiclens/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// loadBillComments fetches a bill's live comments in submission order
func loadBillComments(ctx context.Context, billID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := db.MongoDatabase.Collection("comments").Find(ctx, bson.M{
		"billId":    billID,
		"isDeleted": bson.M{"$ne": true},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetBillFrequenciesHandler returns the ranked word frequencies of a bill's
// comments
func GetBillFrequenciesHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	opts := analysis.DefaultFrequencyOptions()
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			opts.MaxWords = limit
		}
	}
	if c.Query("stopwords") == "keep" {
		opts.RemoveStopwords = false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comments, err := loadBillComments(ctx, billID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Content
	}
	freqs := analysis.WordFrequencies(strings.Join(texts, " "), opts)

	c.JSON(http.StatusOK, gin.H{"frequencies": freqs, "commentCount": len(comments)})
}

// GetBillSentimentHandler classifies every comment on a bill and returns the
// rows plus an aggregate breakdown. The remote classifier is preferred; local
// scoring covers any failure.
func GetBillSentimentHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	comments, err := loadBillComments(ctx, billID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Content
	}

	results := services.GetSentimentService().AnalyzeComments(ctx, texts)

	var positive, negative, neutral int
	var scoreSum float64
	for _, r := range results {
		switch r.Sentiment {
		case analysis.SentimentPositive:
			positive++
		case analysis.SentimentNegative:
			negative++
		default:
			neutral++
		}
		scoreSum += r.Score
	}
	avgScore := 0.0
	if len(results) > 0 {
		avgScore = scoreSum / float64(len(results))
	}

	c.JSON(http.StatusOK, gin.H{
		"results":      results,
		"positive":     positive,
		"negative":     negative,
		"neutral":      neutral,
		"averageScore": avgScore,
	})
}

// GetBillSummaryHandler returns a summary of a bill's comments, remote engines
// first, local extractive summarizer as the floor
func GetBillSummaryHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	var bill models.Bill
	if err := db.MongoDatabase.Collection("bills").FindOne(ctx, bson.M{"_id": billID}).Decode(&bill); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	comments, err := loadBillComments(ctx, billID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if len(comments) == 0 {
		c.JSON(http.StatusOK, gin.H{"summary": "", "engine": "local", "commentCount": 0})
		return
	}

	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Content
	}

	summary, engine := services.GetSummaryService().Summarize(ctx, bill.Title, texts)

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"engine":       engine,
		"commentCount": len(comments),
	})
}

// GetBillWordCloudHandler returns laid-out word cloud nodes for a bill's
// comments. The seed parameter makes the layout reproducible.
func GetBillWordCloudHandler(c *gin.Context) {
	billID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	cfg := analysis.DefaultLayoutConfig()
	if w, err := strconv.ParseFloat(c.Query("width"), 64); err == nil && w > 0 {
		cfg.Width = w
	}
	if h, err := strconv.ParseFloat(c.Query("height"), 64); err == nil && h > 0 {
		cfg.Height = h
	}
	if seed, err := strconv.ParseInt(c.Query("seed"), 10, 64); err == nil {
		cfg.Seed = seed
	} else {
		cfg.Seed = time.Now().UnixNano()
	}

	freqOpts := analysis.DefaultFrequencyOptions()
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			freqOpts.MaxWords = limit
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	comments, err := loadBillComments(ctx, billID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Content
	}
	freqs := analysis.WordFrequencies(strings.Join(texts, " "), freqOpts)
	nodes := analysis.Layout(freqs, cfg)

	c.JSON(http.StatusOK, gin.H{
		"nodes":  nodes,
		"width":  cfg.Width,
		"height": cfg.Height,
		"seed":   cfg.Seed,
	})
}
