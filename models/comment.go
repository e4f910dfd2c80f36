package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment sources.
const (
	CommentSourceWeb    = "web"    // submitted through the dashboard
	CommentSourceStream = "stream" // arrived over the live feed
)

// Comment represents a public comment on a bill. Sentiment fields are filled
// at ingest and never recomputed for a stored comment.
type Comment struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	BillID      primitive.ObjectID  `bson:"billId" json:"billId"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Email       string              `bson:"email,omitempty" json:"email,omitempty"`
	DisplayName string              `bson:"displayName" json:"displayName"`
	Content     string              `bson:"content" json:"content"`
	Source      string              `bson:"source" json:"source"`
	Sentiment   string              `bson:"sentiment" json:"sentiment"`
	Score       float64             `bson:"score" json:"score"`
	Confidence  float64             `bson:"confidence" json:"confidence"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	IsDeleted   bool                `bson:"isDeleted" json:"isDeleted"`
	DeletedAt   *time.Time          `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	DeletedBy   *primitive.ObjectID `bson:"deletedBy,omitempty" json:"deletedBy,omitempty"`
}
