package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultMongoTimeout bounds each MongoDB call.
const DefaultMongoTimeout = 10 * time.Second

// document is the BSON shape of a comment.
type document struct {
	ID        primitive.ObjectID `bson:"_id"`
	Text      string             `bson:"text"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d document) comment() *Comment {
	return &Comment{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Author:    d.Author,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// MongoRepository is a Store backed by a MongoDB collection.
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepository creates a repository over coll. A non-positive timeout
// selects DefaultMongoTimeout.
func NewMongoRepository(coll *mongo.Collection, timeout time.Duration) *MongoRepository {
	if timeout <= 0 {
		timeout = DefaultMongoTimeout
	}
	return &MongoRepository{coll: coll, timeout: timeout}
}

// List returns all comments ordered by ObjectID, which is insertion order.
func (r *MongoRepository) List(ctx context.Context) ([]*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding comments: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}

	comments := make([]*Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.comment())
	}
	return comments, nil
}

// Create inserts a new comment document.
func (r *MongoRepository) Create(ctx context.Context, d Draft) (*Comment, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// BSON dates carry millisecond precision.
	doc := document{
		ID:        primitive.NewObjectID(),
		Text:      d.Text,
		Author:    d.Author,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	return doc.comment(), nil
}

// Delete finds and removes a comment in one operation. An id that is not
// an ObjectID hex string fails as a storage error, not ErrNotFound.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("parsing comment id %q: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	return nil
}

// Ping checks that the primary is reachable.
func (r *MongoRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
