package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

// MongoDB is a mongo adapter for the user-event history.
type MongoDB struct {
	eventCollection *mongo.Collection
	nowFunc         func() time.Time
}

// MongoDBArgs are the mandatory arguments for the creation of a MongoDB
type MongoDBArgs struct {
	// EventCollection is a mongo collection holding archived user events.
	EventCollection *mongo.Collection
}

// MongoDBOptArgs are the optional arguments for building a MongoDB
type MongoDBOptArgs = func(*MongoDB)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) MongoDBOptArgs {
	return func(m *MongoDB) {
		m.nowFunc = nowFunc
	}
}

// NewMongoDB creates a new MongoDB.
func NewMongoDB(args MongoDBArgs, optArgs ...MongoDBOptArgs) (*MongoDB, error) {
	if args.EventCollection == nil {
		return nil, errors.New("nil event collection")
	}
	m := &MongoDB{eventCollection: args.EventCollection, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(m)
	}
	return m, nil
}

// Archive appends the event to the history collection.
func (m *MongoDB) Archive(ctx context.Context, event model.UserEvent) error {
	doc := eventDB{
		ID:         primitive.NewObjectID(),
		EventID:    event.ID,
		OccurredAt: m.nowFunc(),
		Before:     toDBUser(event.Before),
		After:      toDBUser(event.After),
	}
	if _, err := m.eventCollection.InsertOne(ctx, doc); err != nil {
		return err
	}
	return nil
}

// RecentEvents returns up to limit archived events, most recent first.
func (m *MongoDB) RecentEvents(ctx context.Context, limit int) ([]model.UserEvent, error) {
	opts := new(options.FindOptions)
	if limit > 0 {
		l := int64(limit)
		opts.Limit = &l
	}
	opts = opts.SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := m.eventCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []eventDB
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]model.UserEvent, len(docs))
	for i, doc := range docs {
		events[i] = model.UserEvent{
			ID:     doc.EventID,
			Before: translateDBToModel(doc.Before),
			After:  translateDBToModel(doc.After),
		}
	}
	return events, nil
}

func toDBUser(u *model.User) *userDB {
	if u == nil {
		return nil
	}
	return &userDB{
		UUID:        u.ID,
		FullName:    u.FullName,
		Gender:      u.Gender,
		Email:       u.Email,
		Phone:       u.Phone,
		Cell:        u.Cell,
		Age:         u.Age,
		DateOfBirth: u.DateOfBirth,
		Country:     u.Country,
		City:        u.City,
		Street:      u.Street,
		PictureURL:  u.PictureURL,
		Nat:         u.Nat,
	}
}

func translateDBToModel(dbUser *userDB) *model.User {
	if dbUser == nil {
		return nil
	}
	return &model.User{
		ID:          dbUser.UUID,
		FullName:    dbUser.FullName,
		Gender:      dbUser.Gender,
		Email:       dbUser.Email,
		Phone:       dbUser.Phone,
		Cell:        dbUser.Cell,
		Age:         dbUser.Age,
		DateOfBirth: dbUser.DateOfBirth,
		Country:     dbUser.Country,
		City:        dbUser.City,
		Street:      dbUser.Street,
		PictureURL:  dbUser.PictureURL,
		Nat:         dbUser.Nat,
	}
}

type eventDB struct {
	// ID unique identifier of the archive document.
	ID primitive.ObjectID `bson:"_id"`

	// EventID is the id carried by the event itself.
	EventID string `bson:"event_id"`

	// OccurredAt is the archiving time.
	OccurredAt time.Time `bson:"occurred_at"`

	// Before is the user state before the change. Nil for first-time saves.
	Before *userDB `bson:"before,omitempty"`

	// After is the user state after the change. Nil for deletions.
	After *userDB `bson:"after,omitempty"`
}

type userDB struct {
	UUID        string `bson:"uuid"`
	FullName    string `bson:"full_name"`
	Gender      string `bson:"gender,omitempty"`
	Email       string `bson:"email,omitempty"`
	Phone       string `bson:"phone,omitempty"`
	Cell        string `bson:"cell,omitempty"`
	Age         int    `bson:"age,omitempty"`
	DateOfBirth string `bson:"date_of_birth,omitempty"`
	Country     string `bson:"country,omitempty"`
	City        string `bson:"city,omitempty"`
	Street      string `bson:"street,omitempty"`
	PictureURL  string `bson:"picture_url,omitempty"`
	Nat         string `bson:"nat,omitempty"`
}
