package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bill represents a piece of draft legislation open for public comment
type Bill struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Number       string             `bson:"number" json:"number"` // e.g. "HB-1042"
	Sponsor      string             `bson:"sponsor" json:"sponsor"`
	Summary      string             `bson:"summary" json:"summary"`
	Body         string             `bson:"body" json:"body"`
	Status       string             `bson:"status" json:"status"` // "draft", "in_committee", "floor_vote", "enacted"
	IntroducedAt time.Time          `bson:"introducedAt" json:"introducedAt"`
	CommentCount int64              `bson:"commentCount" json:"commentCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
