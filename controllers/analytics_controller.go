package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"civiclens/db"
	"civiclens/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAnalytics returns the current dashboard snapshot
func GetAnalytics(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	billsCollection := db.MongoDatabase.Collection("bills")
	totalBills, _ := billsCollection.CountDocuments(dbCtx, bson.M{})

	commentsCollection := db.MongoDatabase.Collection("comments")
	liveFilter := bson.M{"isDeleted": bson.M{"$ne": true}}
	totalComments, _ := commentsCollection.CountDocuments(dbCtx, liveFilter)

	commentsToday, _ := commentsCollection.CountDocuments(dbCtx, bson.M{
		"isDeleted": bson.M{"$ne": true},
		"createdAt": bson.M{"$gte": todayStart},
	})

	positiveComments, _ := commentsCollection.CountDocuments(dbCtx, bson.M{
		"isDeleted": bson.M{"$ne": true}, "sentiment": "positive",
	})
	negativeComments, _ := commentsCollection.CountDocuments(dbCtx, bson.M{
		"isDeleted": bson.M{"$ne": true}, "sentiment": "negative",
	})
	neutralComments, _ := commentsCollection.CountDocuments(dbCtx, bson.M{
		"isDeleted": bson.M{"$ne": true}, "sentiment": "neutral",
	})

	usersCollection := db.MongoDatabase.Collection("users")
	totalUsers, _ := usersCollection.CountDocuments(dbCtx, bson.M{})
	activeUsers, _ := usersCollection.CountDocuments(dbCtx, bson.M{
		"updatedAt": bson.M{"$gte": thirtyDaysAgo},
	})
	newUsersToday, _ := usersCollection.CountDocuments(dbCtx, bson.M{
		"createdAt": bson.M{"$gte": todayStart},
	})

	snapshot := models.AnalyticsSnapshot{
		ID:               primitive.NewObjectID(),
		Timestamp:        now,
		TotalBills:       totalBills,
		TotalComments:    totalComments,
		TotalUsers:       totalUsers,
		ActiveUsers:      activeUsers,
		CommentsToday:    commentsToday,
		NewUsersToday:    newUsersToday,
		PositiveComments: positiveComments,
		NegativeComments: negativeComments,
		NeutralComments:  neutralComments,
	}

	// Keep the snapshot for historical charting; failure is harmless.
	snapshotsCollection := db.MongoDatabase.Collection("analytics_snapshots")
	snapshotsCollection.InsertOne(dbCtx, snapshot)

	ctx.JSON(http.StatusOK, gin.H{
		"totalBills":       snapshot.TotalBills,
		"totalComments":    snapshot.TotalComments,
		"totalUsers":       snapshot.TotalUsers,
		"activeUsers":      snapshot.ActiveUsers,
		"commentsToday":    snapshot.CommentsToday,
		"newUsersToday":    snapshot.NewUsersToday,
		"positiveComments": snapshot.PositiveComments,
		"negativeComments": snapshot.NegativeComments,
		"neutralComments":  snapshot.NeutralComments,
		"timestamp":        snapshot.Timestamp.Format(time.RFC3339),
	})
}

// GetAnalyticsHistory returns per-day analytics over the requested window,
// preferring stored snapshots and backfilling missing days from raw data
func GetAnalyticsHistory(ctx *gin.Context) {
	days := 7
	if daysStr := ctx.Query("days"); daysStr != "" {
		if parsedDays, err := strconv.Atoi(daysStr); err == nil && parsedDays > 0 {
			days = parsedDays
		}
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	startDate := now.AddDate(0, 0, -days)

	snapshotsCollection := db.MongoDatabase.Collection("analytics_snapshots")
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := snapshotsCollection.Find(dbCtx, bson.M{
		"timestamp": bson.M{"$gte": startDate},
	}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics history", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var existingSnapshots []models.AnalyticsSnapshot
	if err := cursor.All(dbCtx, &existingSnapshots); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode snapshots", "message": err.Error()})
		return
	}

	snapshotMap := make(map[string]models.AnalyticsSnapshot)
	for _, snapshot := range existingSnapshots {
		dayKey := snapshot.Timestamp.Format("2006-01-02")
		snapshotMap[dayKey] = snapshot
	}

	commentsCollection := db.MongoDatabase.Collection("comments")
	usersCollection := db.MongoDatabase.Collection("users")

	var snapshots []models.AnalyticsSnapshot
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i)
		dateStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dateEnd := dateStart.AddDate(0, 0, 1)
		dayKey := dateStart.Format("2006-01-02")

		var snapshot models.AnalyticsSnapshot
		if existingSnapshot, exists := snapshotMap[dayKey]; exists {
			snapshot = existingSnapshot
		} else {
			dayRange := bson.M{"$gte": dateStart, "$lt": dateEnd}
			commentsCount, _ := commentsCollection.CountDocuments(dbCtx, bson.M{
				"isDeleted": bson.M{"$ne": true},
				"createdAt": dayRange,
			})
			newUsersCount, _ := usersCollection.CountDocuments(dbCtx, bson.M{
				"createdAt": dayRange,
			})

			snapshot = models.AnalyticsSnapshot{
				ID:            primitive.NewObjectID(),
				Timestamp:     dateStart,
				CommentsToday: commentsCount,
				NewUsersToday: newUsersCount,
			}
		}
		snapshots = append(snapshots, snapshot)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"days":      days,
	})
}
