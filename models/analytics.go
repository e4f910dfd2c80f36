package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsSnapshot represents dashboard metrics at a point in time
type AnalyticsSnapshot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
	TotalBills       int64              `bson:"totalBills" json:"totalBills"`
	TotalComments    int64              `bson:"totalComments" json:"totalComments"`
	TotalUsers       int64              `bson:"totalUsers" json:"totalUsers"`
	ActiveUsers      int64              `bson:"activeUsers" json:"activeUsers"` // active in last 30 days
	CommentsToday    int64              `bson:"commentsToday" json:"commentsToday"`
	NewUsersToday    int64              `bson:"newUsersToday" json:"newUsersToday"`
	PositiveComments int64              `bson:"positiveComments" json:"positiveComments"`
	NegativeComments int64              `bson:"negativeComments" json:"negativeComments"`
	NeutralComments  int64              `bson:"neutralComments" json:"neutralComments"`
}
