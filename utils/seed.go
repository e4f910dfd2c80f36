package utils

import (
	"context"
	"log"
	"time"

	"civiclens/analysis"
	"civiclens/db"
	"civiclens/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PopulateDemoData seeds demo users, a sample bill and a batch of public
// comments on first boot. Runs are idempotent: nothing is inserted when the
// collections already hold data.
func PopulateDemoData() {
	seedUsers()
	seedBills()
}

func seedUsers() {
	collection := db.MongoDatabase.Collection("users")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	adminHash, err := HashPassword("admin12345")
	if err != nil {
		log.Printf("Failed to hash seed password: %v", err)
		return
	}
	userHash, err := HashPassword("citizen12345")
	if err != nil {
		log.Printf("Failed to hash seed password: %v", err)
		return
	}

	now := time.Now()
	demoUsers := []models.User{
		{
			Email:        "admin@civiclens.dev",
			PasswordHash: adminHash,
			DisplayName:  "Site Admin",
			Role:         models.RoleAdmin,
			Bio:          "Administers the comment dashboard",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Email:        "analyst@civiclens.dev",
			PasswordHash: userHash,
			DisplayName:  "Policy Analyst",
			Role:         models.RoleAnalyst,
			Bio:          "Reviews comment sentiment for committee staff",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Email:        "rep@civiclens.dev",
			PasswordHash: userHash,
			DisplayName:  "District Rep",
			Role:         models.RoleRepresentative,
			Bio:          "Elected representative, 4th district",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Email:        "citizen@civiclens.dev",
			PasswordHash: userHash,
			DisplayName:  "Concerned Citizen",
			Role:         models.RoleCitizen,
			Bio:          "",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	var documents []interface{}
	for _, user := range demoUsers {
		documents = append(documents, user)
	}

	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Printf("Failed to seed users: %v", err)
	}
}

func seedBills() {
	bills := db.MongoDatabase.Collection("bills")
	count, _ := bills.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	now := time.Now()
	bill := models.Bill{
		ID:      primitive.NewObjectID(),
		Title:   "Urban Transit Modernization Act",
		Number:  "HB-1042",
		Sponsor: "Rep. Morales",
		Summary: "Expands funding for public transit and requires transparent reporting of project budgets.",
		Body: "Section 1. The transit authority shall receive additional funding for modernization projects. " +
			"Section 2. All project budgets must be published quarterly for public review. " +
			"Section 3. A citizen oversight committee shall audit spending and report to the legislature.",
		Status:       "in_committee",
		IntroducedAt: now.AddDate(0, -1, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := bills.InsertOne(context.Background(), bill); err != nil {
		log.Printf("Failed to seed bill: %v", err)
		return
	}

	sampleComments := []string{
		"I strongly support this bill, better transit will improve daily life for thousands of commuters.",
		"This is a wasteful spending plan that will burden taxpayers for years.",
		"The oversight committee in section 3 is a good idea, transparent budgets protect the public.",
		"When does the committee vote on this bill?",
		"Great step forward, our community needs reliable public transit.",
		"I oppose the funding mechanism, the tax section is vague and unfair to small towns.",
	}

	scorer := analysis.NewSentimentScorer()
	comments := db.MongoDatabase.Collection("comments")
	var docs []interface{}
	for i, text := range sampleComments {
		scored := scorer.Score(text)
		docs = append(docs, models.Comment{
			ID:          primitive.NewObjectID(),
			BillID:      bill.ID,
			DisplayName: "Public Commenter",
			Content:     text,
			Source:      models.CommentSourceWeb,
			Sentiment:   string(scored.Sentiment),
			Score:       scored.Score,
			Confidence:  scored.Confidence,
			CreatedAt:   now.Add(time.Duration(i) * time.Minute),
		})
	}
	if _, err := comments.InsertMany(context.Background(), docs); err != nil {
		log.Printf("Failed to seed comments: %v", err)
		return
	}
	bills.UpdateOne(context.Background(),
		bson.M{"_id": bill.ID},
		bson.M{"$set": bson.M{"commentCount": int64(len(docs))}},
	)
}
