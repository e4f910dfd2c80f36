package services

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"civiclens/config"
	"civiclens/db"
	"civiclens/internal/feed"
	"civiclens/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedService simulates a live stream of incoming public comments for a bill.
// Each bill has at most one generator; starting a new one for the same bill
// cancels the previous generator (last writer wins).
type FeedService struct {
	enabled  bool
	interval time.Duration

	mu      sync.Mutex
	cancels map[string]context.CancelFunc // billID hex -> stop
}

var feedService *FeedService

// InitFeedService configures the shared feed service
func InitFeedService(cfg *config.Config) {
	interval := time.Duration(cfg.Feed.Interval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	feedService = &FeedService{
		enabled:  cfg.Feed.Enabled,
		interval: interval,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// GetFeedService returns the shared feed service
func GetFeedService() *FeedService {
	return feedService
}

// Templates for synthetic comments; {positive, negative, neutral} mix so the
// dashboard's live sentiment ticker has something to show.
var syntheticComments = []string{
	"I support this bill, it will benefit our community.",
	"This provision is a burden on small businesses, I oppose it.",
	"Has the committee published the budget impact yet?",
	"Great to see transparent reporting requirements in section 2.",
	"The enforcement section seems vague and the costs look wasteful.",
	"Please hold a public hearing in our district.",
	"This is important progress for working families.",
	"The funding formula is unfair to rural counties.",
	"What is the timeline for the floor vote?",
	"Strong oversight provisions, exactly what the public asked for.",
}

var syntheticNames = []string{
	"J. Alvarez", "M. Chen", "T. Okafor", "R. Novak", "S. Dubois",
	"K. Yamamoto", "L. Petrov", "A. Haddad",
}

// Enabled reports whether simulated feeds may be started
func (fs *FeedService) Enabled() bool {
	return fs.enabled
}

// StartSimulatedFeed begins emitting synthetic comments for a bill. Any
// generator already running for the bill is cancelled first.
func (fs *FeedService) StartSimulatedFeed(billID primitive.ObjectID) {
	key := billID.Hex()

	feedCtx, cancel := context.WithCancel(context.Background())
	fs.mu.Lock()
	if prev, ok := fs.cancels[key]; ok {
		prev()
	}
	fs.cancels[key] = cancel
	fs.mu.Unlock()

	go fs.generate(feedCtx, billID)
	log.Printf("Started simulated feed for bill %s", key)
}

// StopSimulatedFeed stops the generator for a bill, if any
func (fs *FeedService) StopSimulatedFeed(billID primitive.ObjectID) {
	key := billID.Hex()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if cancel, ok := fs.cancels[key]; ok {
		cancel()
		delete(fs.cancels, key)
	}
}

func (fs *FeedService) generate(feedCtx context.Context, billID primitive.ObjectID) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(fs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-feedCtx.Done():
			return
		case <-ticker.C:
			text := syntheticComments[rng.Intn(len(syntheticComments))]
			name := syntheticNames[rng.Intn(len(syntheticNames))]
			if err := IngestStreamComment(billID, name, text); err != nil {
				log.Printf("Failed to ingest simulated comment: %v", err)
			}
		}
	}
}

// IngestStreamComment scores, persists and publishes a live comment
func IngestStreamComment(billID primitive.ObjectID, displayName, content string) error {
	scored := GetSentimentService().ScoreLocal(content)
	now := time.Now()

	comment := models.Comment{
		ID:          primitive.NewObjectID(),
		BillID:      billID,
		DisplayName: displayName,
		Content:     content,
		Source:      models.CommentSourceStream,
		Sentiment:   string(scored.Sentiment),
		Score:       scored.Score,
		Confidence:  scored.Confidence,
		CreatedAt:   now,
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("comments").InsertOne(dbCtx, comment); err != nil {
		return err
	}
	db.MongoDatabase.Collection("bills").UpdateOne(dbCtx,
		bson.M{"_id": billID},
		bson.M{"$inc": bson.M{"commentCount": 1}},
	)

	event, err := feed.NewEvent(feed.EventTypeComment, feed.CommentPayload{
		CommentID:   comment.ID.Hex(),
		BillID:      billID.Hex(),
		DisplayName: displayName,
		Content:     content,
		Source:      models.CommentSourceStream,
		Sentiment:   comment.Sentiment,
		Score:       comment.Score,
		Confidence:  comment.Confidence,
		Timestamp:   now.UnixMilli(),
	})
	if err != nil {
		return err
	}
	if err := feed.PublishEvent(billID.Hex(), event); err != nil {
		log.Printf("Failed to publish feed event: %v", err)
	}
	return nil
}
