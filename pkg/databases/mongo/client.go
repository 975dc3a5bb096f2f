package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/blogd/config"
	"github.com/haguru/blogd/internal/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const MAXPOOLSIZE = 20

// MongoDBClient wraps a mongo.Client bound to the database named in the DSN.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	logger           interfaces.Logger
}

// NewMongoDB returns an unconnected client configured from dbConfig.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (*MongoDBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("MongoDBClient: logger cannot be nil")
	}

	db := &MongoDBClient{
		timeout:          dbConfig.Timeout,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		logger:           logger,
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>"; the path
// names the database used for every collection.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	// Validate the DSN format
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	// Extract the database name from the DSN
	databaseName, err := GetDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %v", err)
	}

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	// Set the server API options if provided
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.logger.Info("Connecting to MongoDB", "database", databaseName)
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %v", err)
	}
	m.logger.Info("Connected to MongoDB server", "database", databaseName)

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	m.logger.Info("Disconnecting from MongoDB")
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}
	return m.client.Ping(ctx, nil)
}

// InsertOne inserts a document and returns its ID. Driver errors are wrapped
// so mongo.IsDuplicateKeyError still sees them.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("MongoDB insert", "collection", collectionName)

	res, err := coll.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne decodes the first document matching filter into result. A miss
// returns an error wrapping mongo.ErrNoDocuments.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	m.logger.Debug("MongoDB find one", "collection", collectionName)

	if err := coll.FindOne(ctx, filter).Decode(result); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}
	return nil
}

// Aggregate runs pipeline against collectionName and decodes every result
// document into results, a pointer to a slice.
func (m *MongoDBClient) Aggregate(ctx context.Context, collectionName string, pipeline mongo.Pipeline, results interface{}) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	m.logger.Debug("MongoDB aggregate", "collection", collectionName, "stages", len(pipeline))

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to aggregate %s: %w", collectionName, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
	}
	return nil
}

// CountDocuments counts the documents matching filter.
func (m *MongoDBClient) CountDocuments(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed to count %s: %w", collectionName, err)
	}
	return n, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// EnsureSchema creates the given indexes on collectionName. The collection is
// created implicitly when missing.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, indexes ...mongo.IndexModel) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}
	if len(indexes) == 0 {
		return nil
	}

	_, err = coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (m *MongoDBClient) collection(name string) (*mongo.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[name] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", name)
	}
	if m.db == nil {
		return nil, fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.db.Collection(name), nil
}

// GetDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func GetDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", dsn)
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}
