package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/repository/constants"
	"github.com/haguru/blogd/pkg/databases/sqldb"
)

const userColumns = "id, username, email, password, created_at, updated_at"

// UserRepository implements interfaces.UserRepository on a SQL database.
type UserRepository struct {
	dbClient *sqldb.Client
}

// NewUserRepository creates a new SQL user repository.
func NewUserRepository(dbClient *sqldb.Client) *UserRepository {
	return &UserRepository{dbClient: dbClient}
}

// AddUser inserts user and returns its id. A missing id is generated.
func (r *UserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := constants.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.dbClient.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if detail, ok := sqldb.UniqueViolation(err); ok {
			if strings.Contains(detail, "email") {
				return "", apperrors.ErrDuplicateEmail
			}
			return "", apperrors.ErrDuplicateUsername
		}
		return "", fmt.Errorf("failed to add user: %w", err)
	}
	return user.ID, nil
}

// GetUserByUsername returns (nil, nil) when no user has username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.dbClient.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetUserByID returns (nil, nil) when id is unknown.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.dbClient.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
