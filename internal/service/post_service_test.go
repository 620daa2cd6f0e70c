package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"devconnector/internal/model"
	"devconnector/pkg/apierror"
)

func seedUser(t *testing.T, users *fakeUserRepo, name string) model.User {
	t.Helper()

	u := model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     name + "@example.com",
		Avatar:    "https://www.gravatar.com/avatar/x",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func requireAPIError(t *testing.T, err error, status int, msg string) {
	t.Helper()

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.HTTPStatus)
	require.Equal(t, msg, apiErr.Msg)
}

func TestPostService_CreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	posts := NewPostService(newFakePostRepo(), users)
	author := seedUser(t, users, "ada")

	t.Run("create stamps the author's name and avatar", func(t *testing.T) {
		post, err := posts.Create(ctx, author.ID, model.PostRequest{Text: "hello world"})
		require.NoError(t, err)
		require.Equal(t, author.ID, post.UserID)
		require.Equal(t, author.Name, post.Name)
		require.Equal(t, author.Avatar, post.Avatar)
		require.Empty(t, post.Likes)
		require.Empty(t, post.Comments)
	})

	t.Run("empty text is a validation error", func(t *testing.T) {
		_, err := posts.Create(ctx, author.ID, model.PostRequest{Text: "   "})
		var validationErr *apierror.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		_, err := posts.ByID(ctx, "definitely-not-a-uuid")
		requireAPIError(t, err, http.StatusNotFound, "Post Not Found")
	})

	t.Run("unknown id reads as not found", func(t *testing.T) {
		_, err := posts.ByID(ctx, uuid.NewString())
		requireAPIError(t, err, http.StatusNotFound, "Post Not Found")
	})
}

func TestPostService_DeleteOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	posts := NewPostService(newFakePostRepo(), users)
	owner := seedUser(t, users, "owner")
	intruder := seedUser(t, users, "intruder")

	post, err := posts.Create(ctx, owner.ID, model.PostRequest{Text: "mine"})
	require.NoError(t, err)

	t.Run("non-owner is rejected and the post survives", func(t *testing.T) {
		err := posts.Delete(ctx, intruder.ID, post.ID)
		requireAPIError(t, err, http.StatusUnauthorized, "User Not Authorized")

		_, err = posts.ByID(ctx, post.ID)
		require.NoError(t, err)
	})

	t.Run("owner deletes successfully", func(t *testing.T) {
		require.NoError(t, posts.Delete(ctx, owner.ID, post.ID))

		_, err := posts.ByID(ctx, post.ID)
		requireAPIError(t, err, http.StatusNotFound, "Post Not Found")
	})
}

func TestPostService_LikeGuards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	posts := NewPostService(newFakePostRepo(), users)
	author := seedUser(t, users, "author")
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	post, err := posts.Create(ctx, author.ID, model.PostRequest{Text: "likeable"})
	require.NoError(t, err)

	t.Run("double like is rejected", func(t *testing.T) {
		_, err := posts.Like(ctx, alice.ID, post.ID)
		require.NoError(t, err)

		_, err = posts.Like(ctx, alice.ID, post.ID)
		requireAPIError(t, err, http.StatusBadRequest, "Post Already Liked")
	})

	t.Run("unlike without a like is rejected", func(t *testing.T) {
		_, err := posts.Unlike(ctx, bob.ID, post.ID)
		requireAPIError(t, err, http.StatusBadRequest, "Post Has Not Yet Been Liked!")
	})

	t.Run("like then unlike restores the collection", func(t *testing.T) {
		before, err := posts.ByID(ctx, post.ID)
		require.NoError(t, err)

		likes, err := posts.Like(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		require.Len(t, likes, len(before.Likes)+1)
		require.Equal(t, bob.ID, likes[0].UserID)

		likes, err = posts.Unlike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		require.Equal(t, before.Likes, likes)
	})
}

func TestPostService_Comments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	posts := NewPostService(newFakePostRepo(), users)
	author := seedUser(t, users, "author")
	commenter := seedUser(t, users, "commenter")

	post, err := posts.Create(ctx, author.ID, model.PostRequest{Text: "discuss"})
	require.NoError(t, err)

	first, err := posts.AddComment(ctx, author.ID, post.ID, model.CommentRequest{Text: "first"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	comments, err := posts.AddComment(ctx, commenter.ID, post.ID, model.CommentRequest{Text: "second"})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "second", comments[0].Text)

	t.Run("post owner cannot delete someone else's comment", func(t *testing.T) {
		_, err := posts.RemoveComment(ctx, author.ID, post.ID, comments[0].ID)
		requireAPIError(t, err, http.StatusUnauthorized, "User Not Authorized")
	})

	t.Run("author deletes own comment on someone else's post", func(t *testing.T) {
		remaining, err := posts.RemoveComment(ctx, commenter.ID, post.ID, comments[0].ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		require.Equal(t, "first", remaining[0].Text)
	})

	t.Run("missing comment id reads as not found", func(t *testing.T) {
		_, err := posts.RemoveComment(ctx, author.ID, post.ID, uuid.NewString())
		requireAPIError(t, err, http.StatusNotFound, "Comment does not exist")
	})
}

func TestPostService_CommentOrderPreserved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	posts := NewPostService(newFakePostRepo(), users)
	author := seedUser(t, users, "author")

	post, err := posts.Create(ctx, author.ID, model.PostRequest{Text: "ordered"})
	require.NoError(t, err)

	var comments []model.Comment
	for _, text := range []string{"one", "two", "three"} {
		comments, err = posts.AddComment(ctx, author.ID, post.ID, model.CommentRequest{Text: text})
		require.NoError(t, err)
	}
	require.Equal(t, []string{"three", "two", "one"}, commentTexts(comments))

	// Remove the middle entry; the relative order of the rest holds.
	remaining, err := posts.RemoveComment(ctx, author.ID, post.ID, comments[1].ID)
	require.NoError(t, err)
	require.Equal(t, []string{"three", "one"}, commentTexts(remaining))
}

func commentTexts(comments []model.Comment) []string {
	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}
	return texts
}
