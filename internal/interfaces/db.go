package interfaces

import "context"

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// DBClient defines the connection lifecycle shared by every database client.
// Query methods are backend specific and live on the concrete clients.
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error
}
