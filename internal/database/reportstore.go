package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"astro-report-service/internal/config"
	"astro-report-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrClaimLost is returned when a report could not be claimed because
// another worker moved it out of a claimable state first.
var ErrClaimLost = errors.New("report already claimed")

// ErrNotFound is returned when no report exists for the given id
var ErrNotFound = errors.New("report not found")

// ReportStore wraps the MongoDB reports collection
type ReportStore struct {
	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
	users      *mongo.Collection
}

// NewReportStore connects to MongoDB and prepares the reports collection
func NewReportStore(cfg config.MongoDBConfig) (*ReportStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := cfg.URI
	if uri == "" {
		// Build URI from components if URI not provided
		if cfg.Username != "" && cfg.Password != "" {
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(cfg.AuthSource))
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
		}
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)
	collection := database.Collection(cfg.Collection)

	// Index backing the sweep query predicate
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduledFor", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Index might already exist, that's okay
		fmt.Printf("Note: MongoDB index creation: %v\n", err)
	}

	return &ReportStore{
		client:     client,
		database:   database,
		collection: collection,
		users:      database.Collection("users"),
	}, nil
}

// Close closes the MongoDB client connection
func (s *ReportStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Create inserts a new report document
func (s *ReportStore) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its id
func (s *ReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var report models.Report
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	return &report, nil
}

// FindDueScheduled returns up to limit scheduled reports whose due time has
// passed, most overdue first.
func (s *ReportStore) FindDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":       models.StatusScheduled,
		"scheduledFor": bson.M{"$lte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledFor", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode due reports: %w", err)
	}
	return reports, nil
}

// Claim atomically moves a report into processing. The conditional update
// only matches pending/scheduled reports, so two concurrent claimants cannot
// both win; the loser gets ErrClaimLost.
func (s *ReportStore) Claim(ctx context.Context, id string, now time.Time) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": []models.ReportStatus{models.StatusPending, models.StatusScheduled}},
	}
	update := bson.M{"$set": bson.M{
		"status":              models.StatusProcessing,
		"processingStartedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report models.Report
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrClaimLost
		}
		return nil, fmt.Errorf("failed to claim report: %w", err)
	}
	return &report, nil
}

// MarkCompleted records a successful terminal update
func (s *ReportStore) MarkCompleted(ctx context.Context, id string, result *models.ReportResult, files *models.ReportFiles, processingTime time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":         models.StatusCompleted,
		"completedAt":    now,
		"calculatedData": result,
		"files":          files,
		"processingTime": processingTime.Milliseconds(),
	}}

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id, "status": models.StatusProcessing}, update)
	if err != nil {
		return fmt.Errorf("failed to mark report completed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("report %s not in processing state", id)
	}
	return nil
}

// MarkFailed records a failed terminal update
func (s *ReportStore) MarkFailed(ctx context.Context, id string, reportErr models.ReportError) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":   models.StatusFailed,
		"failedAt": now,
		"error":    reportErr,
	}}

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id, "status": models.StatusProcessing}, update)
	if err != nil {
		return fmt.Errorf("failed to mark report failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("report %s not in processing state", id)
	}
	return nil
}

// UserEmail resolves a user's notification email from the users collection
func (s *ReportStore) UserEmail(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Email string `bson:"email"`
	}
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to query user: %w", err)
	}
	return doc.Email, nil
}
