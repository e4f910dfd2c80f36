package controllers

import (
	"context"
	"net/http"
	"time"

	"civiclens/db"
	"civiclens/models"
	"civiclens/structs"
	"civiclens/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SignUp registers a new user with the citizen role
func SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
	defer cancel()

	users := db.MongoDatabase.Collection("users")
	err := users.FindOne(dbCtx, bson.M{"email": request.Email}).Err()
	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != mongo.ErrNoDocuments {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	displayName := request.DisplayName
	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(request.Email)
	}

	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        request.Email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         models.RoleCitizen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := users.InsertOne(dbCtx, user); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-up successful"})
}

// Login verifies credentials and issues a JWT
func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.MongoDatabase.Collection("users").FindOne(dbCtx, bson.M{"email": request.Email}).Decode(&user)
	if err != nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token, "role": user.Role})
}

// VerifyToken validates the bearer token and echoes the identity it carries
func VerifyToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	token := authHeader
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}

	claims, err := utils.ParseJWTToken(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"valid": true, "email": claims.Email, "role": claims.Role})
}

// GetProfile returns the authenticated user's profile
func GetProfile(ctx *gin.Context) {
	email := ctx.GetString("userEmail")

	user, err := utils.GetUserByEmail(email)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the authenticated user's display name, bio and avatar
func UpdateProfile(ctx *gin.Context) {
	email := ctx.GetString("userEmail")

	var request structs.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if request.DisplayName != "" {
		update["displayName"] = request.DisplayName
	}
	if request.Bio != "" {
		update["bio"] = request.Bio
	}
	if request.AvatarURL != "" {
		update["avatarUrl"] = request.AvatarURL
	}

	dbCtx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("users").UpdateOne(dbCtx,
		bson.M{"email": email},
		bson.M{"$set": update},
	)
	if err != nil || result.MatchedCount == 0 {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
