package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"civiclens/config"
	"civiclens/db"
	"civiclens/models"
	"civiclens/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "", "Admin display name (required)")
	role := flag.String("role", models.RoleAdmin, "Role: 'admin' or 'moderator' (default: admin)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Println("Error: email, password, and name are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *role != models.RoleAdmin && *role != models.RoleModerator {
		fmt.Println("Error: role must be 'admin' or 'moderator'")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.MongoDatabase.Collection("users")
	err = users.FindOne(ctx, bson.M{"email": *email}).Err()
	if err == nil {
		log.Fatalf("User with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Failed to check existing user: %v", err)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        *email,
		PasswordHash: hash,
		DisplayName:  *name,
		Role:         *role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created %s account for %s\n", *role, *email)
}
