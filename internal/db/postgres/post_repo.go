package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"Postify/internal/core/attachments"
	"Postify/internal/core/posts"
	"Postify/internal/core/users"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postSelect joins the author and the (optional) attachment bound to each post
const postSelect = `
	SELECT
		p.id, p.content, p.created_at, p.user_id,
		u.username, u.display_name, u.image,
		a.id, a.name, a.file_type, a.created_at
	FROM posts p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN attachments a ON a.post_id = p.id`

// Create inserts a new post. Attachments are bound separately.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (content, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := conn(ctx, r.db).QueryRowContext(ctx, query,
		post.Content, post.UserID, post.CreatedAt,
	).Scan(&post.ID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("author %d: %w", post.UserID, users.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a post with its author and attachment
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := postSelect + ` WHERE p.id = $1`

	post, err := scanPost(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Find returns posts matching filter in the requested order
func (r *postgresPostRepo) Find(ctx context.Context, filter posts.Filter, sort posts.Sort, limit, offset int) ([]*posts.Post, error) {
	where, args, paramIndex, err := buildFilterClause(filter, 1)
	if err != nil {
		return nil, err
	}

	order := "DESC"
	if sort.Ascending {
		order = "ASC"
	}

	query := fmt.Sprintf(`%s %s ORDER BY p.id %s LIMIT $%d OFFSET $%d`,
		postSelect, where, order, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*posts.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Count returns the number of posts matching filter
func (r *postgresPostRepo) Count(ctx context.Context, filter posts.Filter) (int64, error) {
	where, args, _, err := buildFilterClause(filter, 1)
	if err != nil {
		return 0, err
	}

	var count int64
	query := `SELECT COUNT(*) FROM posts p ` + where
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// Delete removes a post; attachments bound to it cascade
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// buildFilterClause turns the predicate list into a WHERE clause with
// placeholders numbered from paramIndex. Returns the next free index.
func buildFilterClause(filter posts.Filter, paramIndex int) (string, []interface{}, int, error) {
	if len(filter) == 0 {
		return "", nil, paramIndex, nil
	}

	whereConditions := make([]string, 0, len(filter))
	args := make([]interface{}, 0, len(filter))

	for _, pred := range filter {
		switch p := pred.(type) {
		case posts.IDBefore:
			whereConditions = append(whereConditions, fmt.Sprintf("p.id < $%d", paramIndex))
			args = append(args, p.ID)
		case posts.IDAfter:
			whereConditions = append(whereConditions, fmt.Sprintf("p.id > $%d", paramIndex))
			args = append(args, p.ID)
		case posts.AuthoredBy:
			whereConditions = append(whereConditions, fmt.Sprintf("p.user_id = $%d", paramIndex))
			args = append(args, p.UserID)
		default:
			return "", nil, 0, fmt.Errorf("unsupported post predicate %T", pred)
		}
		paramIndex++
	}

	return "WHERE " + strings.Join(whereConditions, " AND "), args, paramIndex, nil
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	author := &users.User{}
	var (
		authorImage       sql.NullString
		attachmentID      sql.NullInt64
		attachmentName    sql.NullString
		attachmentType    sql.NullString
		attachmentCreated sql.NullTime
	)

	err := row.Scan(
		&post.ID, &post.Content, &post.CreatedAt, &post.UserID,
		&author.Username, &author.DisplayName, &authorImage,
		&attachmentID, &attachmentName, &attachmentType, &attachmentCreated,
	)
	if err != nil {
		return nil, err
	}

	author.ID = post.UserID
	if authorImage.Valid {
		author.Image = &authorImage.String
	}
	post.Author = author

	if attachmentID.Valid {
		postID := post.ID
		post.Attachment = &attachments.Attachment{
			ID:        attachmentID.Int64,
			Name:      attachmentName.String,
			FileType:  attachmentType.String,
			CreatedAt: timeOrZero(attachmentCreated),
			PostID:    &postID,
		}
	}

	return post, nil
}

func timeOrZero(t sql.NullTime) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}
