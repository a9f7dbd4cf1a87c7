package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yourhostel/stat-syncer/internal/domain"
)

// MySQLUserRepository implements UserRepository using MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL user repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// CreateUser inserts a new credential record.
// Returns domain.ErrUserExists when the username is already taken.
func (r *MySQLUserRepository) CreateUser(ctx context.Context, username, passwordHash string, roles []string) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash, roles, created_at) VALUES (?, ?, ?, ?)`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, username, passwordHash, strings.Join(roles, ","), now)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new user id: %w", err)
	}

	return &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    now,
	}, nil
}

// GetByUsername finds a user by username.
// Returns domain.ErrUserNotFound when no such user exists.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, roles, created_at FROM users WHERE username = ? LIMIT 1`

	var (
		user  domain.User
		roles string
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &roles, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if roles != "" {
		user.Roles = strings.Split(roles, ",")
	}

	return &user, nil
}
