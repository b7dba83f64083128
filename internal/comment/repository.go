package comment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is a Store backed by the SQLite comments table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new comment with a random UUID.
func (r *Repository) Create(ctx context.Context, d Draft) (*Comment, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:        uuid.NewString(),
		Text:      d.Text,
		Author:    d.Author,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (id, text, author, created_at) VALUES (?, ?, ?, ?)",
		c.ID, c.Text, c.Author, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	return c, nil
}

// List returns all comments, oldest first.
func (r *Repository) List(ctx context.Context) (comments []*Comment, err error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, author, created_at FROM comments ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments = make([]*Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
