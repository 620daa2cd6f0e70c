package service

import (
	"context"
	"strings"
	"sync"

	"devconnector/internal/model"
)

// In-memory repo fakes backing the service tests. Likes and comments are
// prepended on insert so the newest-first ordering of the real queries is
// reproduced without any clock dependence.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile // keyed by user id
	users    *fakeUserRepo
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*model.Profile{}, users: users}
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	f.mu.Lock()
	if existing, ok := f.profiles[p.User.ID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.Experience = existing.Experience
		p.Education = existing.Education
	} else {
		p.Experience = []model.Experience{}
		p.Education = []model.Education{}
	}
	stored := p
	f.profiles[p.User.ID] = &stored
	f.mu.Unlock()

	return f.FindByUserID(ctx, p.User.ID)
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (model.Profile, error) {
	f.mu.Lock()
	p, ok := f.profiles[userID]
	f.mu.Unlock()
	if !ok {
		return model.Profile{}, model.ErrProfileNotFound
	}

	out := *p
	if u, err := f.users.FindByID(ctx, userID); err == nil {
		out.User.Name = u.Name
		out.User.Avatar = u.Avatar
	}
	out.Experience = append([]model.Experience(nil), p.Experience...)
	out.Education = append([]model.Education(nil), p.Education...)
	return out, nil
}

func (f *fakeProfileRepo) List(ctx context.Context) ([]model.Profile, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.profiles))
	for userID := range f.profiles {
		ids = append(ids, userID)
	}
	f.mu.Unlock()

	out := make([]model.Profile, 0, len(ids))
	for _, userID := range ids {
		p, err := f.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[userID]; !ok {
		return model.ErrProfileNotFound
	}
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfileRepo) byProfileID(profileID string) *model.Profile {
	for _, p := range f.profiles {
		if p.ID == profileID {
			return p
		}
	}
	return nil
}

func (f *fakeProfileRepo) AddExperience(_ context.Context, profileID string, e model.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.byProfileID(profileID)
	if p == nil {
		return model.ErrProfileNotFound
	}
	p.Experience = append([]model.Experience{e}, p.Experience...)
	return nil
}

func (f *fakeProfileRepo) RemoveExperience(_ context.Context, profileID string, experienceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.byProfileID(profileID)
	if p == nil {
		return model.ErrProfileNotFound
	}
	for i, e := range p.Experience {
		if e.ID == experienceID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return model.ErrExperienceNotFound
}

func (f *fakeProfileRepo) AddEducation(_ context.Context, profileID string, e model.Education) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.byProfileID(profileID)
	if p == nil {
		return model.ErrProfileNotFound
	}
	p.Education = append([]model.Education{e}, p.Education...)
	return nil
}

func (f *fakeProfileRepo) RemoveEducation(_ context.Context, profileID string, educationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.byProfileID(profileID)
	if p == nil {
		return model.ErrProfileNotFound
	}
	for i, e := range p.Education {
		if e.ID == educationID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return model.ErrEducationNotFound
}

type fakePostRepo struct {
	mu       sync.Mutex
	posts    []model.Post
	likes    map[string][]model.Like
	comments map[string][]model.Comment
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		likes:    map[string][]model.Like{},
		comments: map[string][]model.Comment{},
	}
}

func (f *fakePostRepo) Create(_ context.Context, p model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]model.Post{p}, f.posts...)
	return nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id string) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			p.Likes = append([]model.Like(nil), f.likes[id]...)
			p.Comments = append([]model.Comment(nil), f.comments[id]...)
			return p, nil
		}
	}
	return model.Post{}, model.ErrPostNotFound
}

func (f *fakePostRepo) List(_ context.Context) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Post, len(f.posts))
	for i, p := range f.posts {
		p.Likes = append([]model.Like(nil), f.likes[p.ID]...)
		p.Comments = append([]model.Comment(nil), f.comments[p.ID]...)
		out[i] = p
	}
	return out, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			delete(f.likes, id)
			delete(f.comments, id)
			return nil
		}
	}
	return model.ErrPostNotFound
}

func (f *fakePostRepo) AddLike(_ context.Context, postID string, like model.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes[postID] {
		if l.UserID == like.UserID {
			return model.ErrAlreadyLiked
		}
	}
	f.likes[postID] = append([]model.Like{like}, f.likes[postID]...)
	return nil
}

func (f *fakePostRepo) RemoveLike(_ context.Context, postID string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.likes[postID] {
		if l.UserID == userID {
			f.likes[postID] = append(f.likes[postID][:i], f.likes[postID][i+1:]...)
			return nil
		}
	}
	return model.ErrNotLiked
}

func (f *fakePostRepo) ListLikes(_ context.Context, postID string) ([]model.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Like(nil), f.likes[postID]...), nil
}

func (f *fakePostRepo) AddComment(_ context.Context, postID string, c model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[postID] = append([]model.Comment{c}, f.comments[postID]...)
	return nil
}

func (f *fakePostRepo) FindComment(_ context.Context, postID string, commentID string) (model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comments[postID] {
		if c.ID == commentID {
			return c, nil
		}
	}
	return model.Comment{}, model.ErrCommentNotFound
}

func (f *fakePostRepo) RemoveComment(_ context.Context, postID string, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.comments[postID] {
		if c.ID == commentID {
			f.comments[postID] = append(f.comments[postID][:i], f.comments[postID][i+1:]...)
			return nil
		}
	}
	return model.ErrCommentNotFound
}

func (f *fakePostRepo) ListComments(_ context.Context, postID string) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Comment(nil), f.comments[postID]...), nil
}
