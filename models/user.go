package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles recognized by the RBAC layer.
const (
	RoleAdmin          = "admin"
	RoleModerator      = "moderator"
	RoleAnalyst        = "analyst"
	RoleRepresentative = "representative"
	RoleCitizen        = "citizen"
)

// User defines a registered dashboard user
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Role         string             `bson:"role" json:"role"`
	Bio          string             `bson:"bio" json:"bio"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
