package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MusicHub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the Mongo repositories and the index migration.
const (
	UsersCollection   = "users"
	StreamsCollection = "streams"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type streamDocument struct {
	SongID  string `bson:"song_id"`
	Streams int64  `bson:"streams"`
}

// mongoUserRepository implements UserRepository for MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a user repository over db's users collection.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toModel(), nil
}

type mongoStreamRepository struct {
	collection *mongo.Collection
}

// NewMongoStreamRepository creates a counter repository over db's streams collection.
func NewMongoStreamRepository(db *mongo.Database) StreamRepository {
	return &mongoStreamRepository{collection: db.Collection(StreamsCollection)}
}

func (r *mongoStreamRepository) Increment(ctx context.Context, songID string) (*model.StreamCount, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc streamDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"song_id": songID},
		bson.M{"$inc": bson.M{"streams": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to increment stream %s: %w", songID, err)
	}
	return &model.StreamCount{SongID: doc.SongID, Streams: doc.Streams}, nil
}

func (r *mongoStreamRepository) ListAll(ctx context.Context) ([]model.StreamCount, error) {
	// 按插入顺序返回
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []streamDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode streams: %w", err)
	}

	out := make([]model.StreamCount, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.StreamCount{SongID: d.SongID, Streams: d.Streams})
	}
	return out, nil
}

// EnsureMongoIndexes creates the unique indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	if _, err := db.Collection(StreamsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "song_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("failed to create streams.song_id index: %w", err)
	}
	return nil
}
