package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Postify/internal/core/users"
)

// Postgres SQLSTATE codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, username, display_name, password_hash, image, created_at, updated_at`

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (username, display_name, password_hash, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		user.Username, user.DisplayName, user.PasswordHash, nullStringPtr(user.Image),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, users.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// List returns users ordered by id, skipping excludeID when it is non-zero
func (r *postgresUserRepo) List(ctx context.Context, excludeID int64, limit, offset int) ([]*users.User, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE ($1 = 0 OR id <> $1)`, excludeID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = 0 OR id <> $1)
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := db.QueryContext(ctx, query, excludeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*users.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return result, total, nil
}

// Update persists display name and image
func (r *postgresUserRepo) Update(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		UPDATE users
		SET display_name = $2, image = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query,
		user.ID, user.DisplayName, nullStringPtr(user.Image),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*users.User, error) {
	user := &users.User{}
	var image sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.PasswordHash,
		&image, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if image.Valid {
		user.Image = &image.String
	}
	return user, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
