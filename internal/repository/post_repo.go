package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"devconnector/internal/model"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p model.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, user_id, text, author_name, author_avatar, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Text, p.Name, p.Avatar, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (model.Post, error) {
	var p model.Post
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, text, author_name, author_avatar, created_at
		 FROM posts WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}

	if err := r.loadNested(ctx, &p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, text, author_name, author_avatar, created_at
		 FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if err := r.loadNested(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID string, like model.Like) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_likes (id, post_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		like.ID, postID, like.UserID, like.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID string, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *PostRepository) ListLikes(ctx context.Context, postID string) ([]model.Like, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, created_at
		 FROM post_likes WHERE post_id = $1
		 ORDER BY created_at DESC, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	likes := make([]model.Like, 0)
	for rows.Next() {
		var l model.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, c model.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_comments (id, post_id, user_id, text, author_name, author_avatar, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, postID, c.UserID, c.Text, c.Name, c.Avatar, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}

func (r *PostRepository) FindComment(ctx context.Context, postID string, commentID string) (model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, text, author_name, author_avatar, created_at
		 FROM post_comments WHERE id = $1 AND post_id = $2`, commentID, postID).
		Scan(&c.ID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Comment{}, model.ErrCommentNotFound
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID string, commentID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM post_comments WHERE id = $1 AND post_id = $2`,
		commentID, postID)
	if err != nil {
		return fmt.Errorf("remove comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, text, author_name, author_avatar, created_at
		 FROM post_comments WHERE post_id = $1
		 ORDER BY created_at DESC, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Text, &c.Name, &c.Avatar, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PostRepository) loadNested(ctx context.Context, p *model.Post) error {
	likes, err := r.ListLikes(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes

	comments, err := r.ListComments(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Comments = comments
	return nil
}
