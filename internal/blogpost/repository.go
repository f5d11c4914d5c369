package blogpost

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store is the post-storage contract the handlers depend on. Missing posts
// are reported as sql.ErrNoRows.
type Store interface {
	Create(ctx context.Context, input PostInput, userUUID, username string) (Post, error)
	GetByID(ctx context.Context, postID int64) (Post, error)
	List(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, postID int64, input PostInput) (Post, error)
	Delete(ctx context.Context, postID int64) (int64, error)
}

// Repository is the Postgres-backed Store.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const postColumns = `post_id, title, content, user_uuid, user_username, created_at, updated_at`

func scanPost(row *sql.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.PostID, &p.Title, &p.Content, &p.UserUUID, &p.Username, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repository) Create(ctx context.Context, input PostInput, userUUID, username string) (Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, `
		INSERT INTO blog_post (title, content, user_uuid, user_username)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns+`
	`, input.Title, input.Content, userUUID, username))
	if err != nil {
		return Post{}, fmt.Errorf("insert blog post: %w", err)
	}

	return post, nil
}

func (r *Repository) GetByID(ctx context.Context, postID int64) (Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_post
		WHERE post_id = $1
	`, postID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, err
		}
		return Post{}, fmt.Errorf("query blog post: %w", err)
	}

	return post, nil
}

func (r *Repository) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_post
		ORDER BY post_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.PostID, &p.Title, &p.Content, &p.UserUUID, &p.Username, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) Update(ctx context.Context, postID int64, input PostInput) (Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, `
		UPDATE blog_post
		SET title = $2, content = $3
		WHERE post_id = $1
		RETURNING `+postColumns+`
	`, postID, input.Title, input.Content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, err
		}
		return Post{}, fmt.Errorf("update blog post: %w", err)
	}

	return post, nil
}

func (r *Repository) Delete(ctx context.Context, postID int64) (int64, error) {
	var deleted int64
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM blog_post
		WHERE post_id = $1
		RETURNING post_id
	`, postID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
		return 0, fmt.Errorf("delete blog post: %w", err)
	}

	return deleted, nil
}
