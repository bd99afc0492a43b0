package databases

// go generate: mockery --name ModerationEventDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

const moderationEventName = "moderation_events"

// ModerationEventDatabase contains the methods to use with the moderation
// audit database
type ModerationEventDatabase interface {
	InsertOne(ctx context.Context, event models.ModerationEvent) (InsertOneResultHelper, error)
	FindBySessionUUID(ctx context.Context, sessionUUID string, limit, page int) ([]models.ModerationEvent, error)
	CountBySessionUUID(ctx context.Context, sessionUUID string) (int64, error)
}

type moderationEventDatabase struct {
	db DatabaseHelper
}

// NewModerationEventDatabase initializes a new instance of the moderation
// audit database with the provided db connection
func NewModerationEventDatabase(db DatabaseHelper) ModerationEventDatabase {
	return &moderationEventDatabase{
		db: db,
	}
}

func (m *moderationEventDatabase) InsertOne(ctx context.Context, event models.ModerationEvent) (InsertOneResultHelper, error) {
	res, err := m.db.Collection(moderationEventName).InsertOne(ctx, event)
	return res, err
}

func (m *moderationEventDatabase) FindBySessionUUID(ctx context.Context, sessionUUID string, limit, page int) ([]models.ModerationEvent, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"createdAt": -1})

	cursor, err := m.db.Collection(moderationEventName).Find(ctx, bson.M{"sessionUuid": sessionUUID}, opts)
	if err != nil {
		return nil, err
	}

	var events []models.ModerationEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (m *moderationEventDatabase) CountBySessionUUID(ctx context.Context, sessionUUID string) (int64, error) {
	return m.db.Collection(moderationEventName).CountDocuments(ctx, bson.M{"sessionUuid": sessionUUID}, &options.CountOptions{})
}

// AuditRecorder adapts the moderation event database to the session's
// fire-and-forget audit hook. Failures are logged, never propagated into the
// session loop.
type AuditRecorder struct {
	DB ModerationEventDatabase
}

// Record persists one moderation event
func (a AuditRecorder) Record(ctx context.Context, event models.ModerationEvent) {
	if _, err := a.DB.InsertOne(ctx, event); err != nil {
		zap.S().Errorw("failed to record moderation event",
			"sessionUuid", event.SessionUUID,
			"action", event.Action,
			"error", err,
		)
	}
}
