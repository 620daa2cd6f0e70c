package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnector/internal/model"
	"devconnector/pkg/apierror"
)

// PostService owns posts and their nested likes and comments. Mutations on
// owned entries go through checkOwner: the authenticated subject must match
// the entry's recorded owner, and a mismatch maps to 401 (kept for client
// compatibility with the previous deployment).
type PostService struct {
	posts PostRepo
	users UserRepo
}

func NewPostService(posts PostRepo, users UserRepo) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) Create(ctx context.Context, userID string, req model.PostRequest) (model.Post, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return model.Post{}, apierror.Validation(apierror.FieldError{Msg: "Text is required", Param: "text"})
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Post{}, fmt.Errorf("find author: %w", err)
	}

	post := model.Post{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []model.Like{},
		Comments:  []model.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (s *PostService) ByID(ctx context.Context, postID string) (model.Post, error) {
	return s.findPost(ctx, postID)
}

func (s *PostService) Delete(ctx context.Context, userID string, postID string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}

	if err := checkOwner(post.UserID, userID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return apierror.NotFound("Post Not Found")
		}
		return fmt.Errorf("delete post: %w", err)
	}

	return nil
}

func (s *PostService) Like(ctx context.Context, userID string, postID string) ([]model.Like, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := model.Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	// The likes table's (post_id, user_id) uniqueness makes the
	// already-liked guard hold even for two simultaneous likes.
	if err := s.posts.AddLike(ctx, post.ID, like); err != nil {
		if errors.Is(err, model.ErrAlreadyLiked) {
			return nil, apierror.BadRequest("Post Already Liked")
		}
		return nil, fmt.Errorf("add like: %w", err)
	}

	likes, err := s.posts.ListLikes(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}

	return likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID string, postID string) ([]model.Like, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.posts.RemoveLike(ctx, post.ID, userID); err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			return nil, apierror.BadRequest("Post Has Not Yet Been Liked!")
		}
		return nil, fmt.Errorf("remove like: %w", err)
	}

	likes, err := s.posts.ListLikes(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}

	return likes, nil
}

func (s *PostService) AddComment(ctx context.Context, userID string, postID string, req model.CommentRequest) ([]model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apierror.Validation(apierror.FieldError{Msg: "Text is required", Param: "text"})
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find author: %w", err)
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.AddComment(ctx, post.ID, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	comments, err := s.posts.ListComments(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

// RemoveComment deletes a single comment. Ownership is checked against the
// comment's own author, not the post's: users delete their own comments
// anywhere, and nobody else's even on their own post.
func (s *PostService) RemoveComment(ctx context.Context, userID string, postID string, commentID string) ([]model.Comment, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !isUUID(commentID) {
		return nil, apierror.NotFound("Comment does not exist")
	}

	comment, err := s.posts.FindComment(ctx, post.ID, commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return nil, apierror.NotFound("Comment does not exist")
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}

	if err := checkOwner(comment.UserID, userID); err != nil {
		return nil, err
	}

	if err := s.posts.RemoveComment(ctx, post.ID, comment.ID); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			return nil, apierror.NotFound("Comment does not exist")
		}
		return nil, fmt.Errorf("remove comment: %w", err)
	}

	comments, err := s.posts.ListComments(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (s *PostService) findPost(ctx context.Context, postID string) (model.Post, error) {
	// Malformed ids read as missing posts, never as server faults.
	if !isUUID(postID) {
		return model.Post{}, apierror.NotFound("Post Not Found")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return model.Post{}, apierror.NotFound("Post Not Found")
		}
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}

	return post, nil
}

func checkOwner(ownerID string, subjectID string) error {
	if ownerID != subjectID {
		return apierror.Unauthorized("User Not Authorized")
	}

	return nil
}
