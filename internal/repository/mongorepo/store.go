// Package mongorepo implements the repositories on MongoDB through
// pkg/databases/mongo.
package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/query"
	"github.com/haguru/blogd/internal/repository/constants"
)

const idField = "_id"

// DBClient is the part of mongo.MongoDBClient the repositories use.
type DBClient interface {
	interfaces.DBClient
	InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error)
	FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error
	Aggregate(ctx context.Context, collectionName string, pipeline mongosdk.Pipeline, results interface{}) error
	CountDocuments(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error)
	DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error)
	EnsureSchema(ctx context.Context, collectionName string, indexes ...mongosdk.IndexModel) error
}

// Store implements interfaces.Store and its three repositories on one client.
type Store struct {
	dbClient DBClient
}

// NewStore creates a new MongoDB store.
func NewStore(dbClient DBClient) (*Store, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &Store{dbClient: dbClient}, nil
}

func (s *Store) Users() interfaces.UserRepository       { return (*userRepository)(s) }
func (s *Store) Posts() interfaces.BlogRepository       { return (*blogRepository)(s) }
func (s *Store) Sessions() interfaces.SessionRepository { return (*sessionRepository)(s) }

// EnsureSchema creates the unique user indexes, the listing index on blogs
// and a TTL index that lets MongoDB drop expired sessions.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.dbClient.EnsureSchema(ctx, constants.UsersCollection,
		mongosdk.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		mongosdk.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	); err != nil {
		return fmt.Errorf("failed to ensure %s indexes: %w", constants.UsersCollection, err)
	}
	if err := s.dbClient.EnsureSchema(ctx, constants.BlogsCollection,
		mongosdk.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		mongosdk.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}},
	); err != nil {
		return fmt.Errorf("failed to ensure %s indexes: %w", constants.BlogsCollection, err)
	}
	if err := s.dbClient.EnsureSchema(ctx, constants.SessionsCollection,
		mongosdk.IndexModel{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	); err != nil {
		return fmt.Errorf("failed to ensure %s indexes: %w", constants.SessionsCollection, err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (s *Store) Close(ctx context.Context) error {
	return s.dbClient.Disconnect(ctx)
}

type userRepository Store

// AddUser saves a new user with a UUID string _id.
func (r *userRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := constants.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if _, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, user); err != nil {
		if mongosdk.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return "", apperrors.ErrDuplicateEmail
			}
			return "", apperrors.ErrDuplicateUsername
		}
		return "", fmt.Errorf("failed to add user to MongoDB: %w", err)
	}
	return user.ID, nil
}

// GetUserByUsername returns (nil, nil) when no user has username.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, nil
	}
	return r.findUser(ctx, bson.M{"username": username})
}

// GetUserByID returns (nil, nil) when id is unknown.
func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, bson.M{idField: id})
}

func (r *userRepository) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.dbClient.FindOne(ctx, constants.UsersCollection, filter, &user); err != nil {
		if errors.Is(err, mongosdk.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	return &user, nil
}

type blogRepository Store

// AddPost stores post and returns it with id and timestamps filled in.
func (r *blogRepository) AddPost(ctx context.Context, post models.Post) (*models.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.BeforeCreate(constants.Now())
	post.Author = nil

	if _, err := r.dbClient.InsertOne(ctx, constants.BlogsCollection, post); err != nil {
		return nil, fmt.Errorf("failed to add post to MongoDB: %w", err)
	}
	return &post, nil
}

func (r *blogRepository) ListPosts(ctx context.Context, opts query.ListOptions) ([]models.Post, error) {
	return r.aggregate(ctx, BuildListPipeline(opts))
}

func (r *blogRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.dbClient.CountDocuments(ctx, constants.BlogsCollection, bson.M{})
}

func (r *blogRepository) CountPostsByUser(ctx context.Context, userID string) (int64, error) {
	return r.dbClient.CountDocuments(ctx, constants.BlogsCollection, bson.M{"user_id": userID})
}

func (r *blogRepository) RecentPostsByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	return r.aggregate(ctx, BuildRecentPipeline(userID, limit))
}

func (r *blogRepository) aggregate(ctx context.Context, pipeline mongosdk.Pipeline) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.dbClient.Aggregate(ctx, constants.BlogsCollection, pipeline, &posts); err != nil {
		return nil, fmt.Errorf("failed to query posts from MongoDB: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

type sessionRepository Store

func (r *sessionRepository) AddSession(ctx context.Context, session models.Session) error {
	if _, err := r.dbClient.InsertOne(ctx, constants.SessionsCollection, session); err != nil {
		return fmt.Errorf("failed to add session to MongoDB: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.dbClient.FindOne(ctx, constants.SessionsCollection, bson.M{idField: id}, &session); err != nil {
		if errors.Is(err, mongosdk.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session from MongoDB: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.dbClient.DeleteOne(ctx, constants.SessionsCollection, bson.M{idField: id}); err != nil {
		return fmt.Errorf("failed to delete session from MongoDB: %w", err)
	}
	return nil
}
