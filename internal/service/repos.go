package service

import (
	"context"

	"devconnector/internal/model"
)

// Repository interfaces are declared on the consumer side so services can
// be exercised against in-memory fakes. The pgx-backed implementations
// live in internal/repository.

type UserRepo interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Upsert(ctx context.Context, p model.Profile) (model.Profile, error)
	FindByUserID(ctx context.Context, userID string) (model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, profileID string, e model.Experience) error
	RemoveExperience(ctx context.Context, profileID string, experienceID string) error
	AddEducation(ctx context.Context, profileID string, e model.Education) error
	RemoveEducation(ctx context.Context, profileID string, educationID string) error
}

type PostRepo interface {
	Create(ctx context.Context, p model.Post) error
	FindByID(ctx context.Context, id string) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID string, like model.Like) error
	RemoveLike(ctx context.Context, postID string, userID string) error
	ListLikes(ctx context.Context, postID string) ([]model.Like, error)
	AddComment(ctx context.Context, postID string, c model.Comment) error
	FindComment(ctx context.Context, postID string, commentID string) (model.Comment, error)
	RemoveComment(ctx context.Context, postID string, commentID string) error
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
}
