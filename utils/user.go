package utils

import (
	"context"
	"time"

	"civiclens/db"
	"civiclens/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUserByEmail fetches a user record by email
func GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.MongoDatabase.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserIDFromEmail resolves a user's ObjectID from their email
func GetUserIDFromEmail(email string) (primitive.ObjectID, error) {
	user, err := GetUserByEmail(email)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}
