package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/model"
	"github.com/sakif/portfolio-backend/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the first call site that passes *DB as a PostRepository.
var _ repository.PostRepository = (*DB)(nil)

// Create inserts a new post and fills in the assigned id.
//
// POINTER RECEIVER (*model.Post):
// We take a pointer so the caller's struct gets the generated ID after
// Create() returns. Ids come from AUTOINCREMENT, so LastInsertId is the
// authoritative value — we never guess it Go-side.
func (db *DB) Create(ctx context.Context, post *model.Post) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (title, date, category, excerpt, content, author, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.Title,
		post.Date,
		post.Category,
		post.Excerpt,
		post.Content,
		post.Author,
		post.Image,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading post id: %w", err)
	}
	post.ID = id

	return nil
}

// GetByID retrieves a single post by its id.
// Translates sql.ErrNoRows into apperror.ErrNotFound so the handler knows to
// return 404 — callers should never see database/sql sentinels.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, date, category, excerpt, content, author, image
		 FROM posts
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.Title,
		&p.Date,
		&p.Category,
		&p.Excerpt,
		&p.Content,
		&p.Author,
		&p.Image,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel — database/sql doesn't wrap it, so ==
		// is the idiomatic check here.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}

	return &p, nil
}

// List retrieves every post, newest insertion first.
//
// ORDER BY id DESC (not created_at): ids are monotonically increasing by
// insertion, and the "date" column is a free-form display string the admin
// types by hand — sorting on it would be meaningless.
func (db *DB) List(ctx context.Context) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, date, category, excerpt, content, author, image
		 FROM posts
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	// CRITICAL: rows holds a pool connection until closed.
	defer rows.Close()

	// Start from an empty (non-nil) slice so an empty blog serializes as
	// JSON [] rather than null — the frontend maps over the response.
	posts := []model.Post{}

	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Date, &p.Category,
			&p.Excerpt, &p.Content, &p.Author, &p.Image,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}

	// rows.Err() catches errors that happened DURING iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

// Update replaces every mutable field of the post with the given id.
//
// RowsAffected() tells us whether the WHERE clause matched anything — zero
// rows affected means the post doesn't exist, which we surface as NotFound
// rather than silently succeeding. The id itself is immutable.
func (db *DB) Update(ctx context.Context, post *model.Post) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, date = ?, category = ?, excerpt = ?, content = ?, author = ?, image = ?
		 WHERE id = ?`,
		post.Title,
		post.Date,
		post.Category,
		post.Excerpt,
		post.Content,
		post.Author,
		post.Image,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %d: %w", post.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post", post.ID)
	}

	return nil
}

// Delete removes a post by its id.
//
// Unlike Update, a missing id is NOT an error: HTTP DELETE is idempotent, and
// deleting something that's already gone leaves the system in exactly the
// state the caller asked for. We don't inspect RowsAffected here on purpose.
func (db *DB) Delete(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, err)
	}

	return nil
}
