package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rbroggi/randomusersvc/internal/core/model"
)

type MongoDBTestSuite struct {
	suite.Suite
	db              *mongo.Client
	eventCollection *mongo.Collection
	mongoAdapter    *MongoDB
	now             time.Time
}

func (suite *MongoDBTestSuite) SetupSuite() {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		suite.T().Skip("MONGODB_URL not set, skipping mongo suite")
	}

	clientOptions := options.Client().ApplyURI(url)
	db, err := mongo.Connect(context.Background(), clientOptions)
	suite.Require().NoError(err)
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	suite.Require().NoError(db.Ping(timeoutCtx, nil))

	collection := db.Database("randomuser").Collection("user_events")
	suite.now = time.Now().Truncate(time.Second).UTC()
	nowFunc := func() time.Time { return suite.now }
	mongoAdapter, err := NewMongoDB(MongoDBArgs{EventCollection: collection}, WithNowFunc(nowFunc))
	suite.Require().NoError(err)
	suite.mongoAdapter = mongoAdapter
	suite.db = db
	suite.eventCollection = collection
}

func (suite *MongoDBTestSuite) SetupTest() {
	_, err := suite.eventCollection.DeleteMany(context.Background(), bson.D{})
	suite.Require().NoError(err)
}

func (suite *MongoDBTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Disconnect(context.Background()))
	}
}

func (suite *MongoDBTestSuite) TestArchive() {
	before := &model.User{ID: "uuid-1", FullName: "Ms Jane Doe", Nat: "US"}
	after := &model.User{ID: "uuid-1", FullName: "Ms Jane Smith", Nat: "GB"}

	err := suite.mongoAdapter.Archive(context.Background(), model.UserEvent{
		ID:     "event-1",
		Before: before,
		After:  after,
	})
	suite.Require().NoError(err)

	got := new(eventDB)
	suite.Require().NoError(suite.eventCollection.FindOne(context.Background(), bson.M{"event_id": "event-1"}).Decode(got))
	suite.Equal("event-1", got.EventID)
	suite.Equal(suite.now, got.OccurredAt.UTC())
	suite.Require().NotNil(got.Before)
	suite.Equal("Ms Jane Doe", got.Before.FullName)
	suite.Require().NotNil(got.After)
	suite.Equal("Ms Jane Smith", got.After.FullName)
}

func (suite *MongoDBTestSuite) TestArchiveDeletion() {
	before := &model.User{ID: "uuid-1", FullName: "Ms Jane Doe"}

	err := suite.mongoAdapter.Archive(context.Background(), model.UserEvent{ID: "event-1", Before: before})
	suite.Require().NoError(err)

	got := new(eventDB)
	suite.Require().NoError(suite.eventCollection.FindOne(context.Background(), bson.M{"event_id": "event-1"}).Decode(got))
	suite.Require().NotNil(got.Before)
	suite.Nil(got.After, "deletions carry no after state")
}

func (suite *MongoDBTestSuite) TestRecentEvents() {
	user := &model.User{ID: "uuid-1", FullName: "Ms Jane Doe"}

	for i, id := range []string{"event-1", "event-2", "event-3"} {
		suite.now = time.Now().Truncate(time.Second).UTC().Add(time.Duration(i) * time.Second)
		suite.Require().NoError(suite.mongoAdapter.Archive(context.Background(), model.UserEvent{ID: id, After: user}))
	}

	events, err := suite.mongoAdapter.RecentEvents(context.Background(), 2)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.Equal("event-3", events[0].ID, "most recent first")
	suite.Equal("event-2", events[1].ID)

	events, err = suite.mongoAdapter.RecentEvents(context.Background(), 10)
	suite.Require().NoError(err)
	suite.Len(events, 3, "limit above the archive size returns everything")
}

func TestMongoDBSuite(t *testing.T) {
	suite.Run(t, new(MongoDBTestSuite))
}
