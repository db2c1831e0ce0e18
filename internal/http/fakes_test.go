package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"postboard/internal/domain"
	"postboard/internal/service"
)

type fakeUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	f.usersByID[user.ID] = user
	f.usersByEmail[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := f.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if _, ok := f.usersByEmail[email]; ok {
		return true, nil
	}
	for _, u := range f.usersByID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	user, ok := f.usersByID[id]
	if !ok {
		return nil
	}
	delete(f.usersByEmail, user.Email)
	delete(f.usersByID, id)
	return nil
}

type fakePostRepo struct {
	posts map[string]domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]domain.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post domain.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (domain.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return domain.Post{}, pgx.ErrNoRows
	}
	return post, nil
}

func (f *fakePostRepo) ListPublic(_ context.Context, limit, offset int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		if !p.Private {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) ListByAuthor(_ context.Context, authorID string, includePrivate bool) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		if p.AuthorID != authorID {
			continue
		}
		if p.Private && !includePrivate {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) Update(_ context.Context, post domain.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[string]domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]domain.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment domain.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return domain.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCommentRepo) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	list, _ := f.ListByPost(ctx, postID)
	return len(list), nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

type fakeLikeRepo struct {
	likes map[string]domain.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]domain.Like)}
}

func (f *fakeLikeRepo) Create(_ context.Context, like domain.Like) error {
	f.likes[like.PostID+"|"+like.UserID] = like
	return nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, postID, userID string) (bool, error) {
	_, ok := f.likes[postID+"|"+userID]
	return ok, nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, postID, userID string) error {
	delete(f.likes, postID+"|"+userID)
	return nil
}

func (f *fakeLikeRepo) CountByPost(_ context.Context, postID string) (int, error) {
	count := 0
	for _, l := range f.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

// testEnv arma el router completo sobre repos falsos, como lo hace main.
type testEnv struct {
	router   *gin.Engine
	users    *fakeUserRepo
	posts    *fakePostRepo
	userSvc  *service.UserService
	tokenSvc *service.TokenService
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	users := newFakeUserRepo()
	posts := newFakePostRepo()
	hasher := service.NewPasswordHasher(4)
	tokenSvc := service.NewTokenService("test-secret", time.Hour)
	userSvc := service.NewUserService(logger, users, hasher, tokenSvc, nil)
	postSvc := service.NewPostService(logger, posts, newFakeCommentRepo(), newFakeLikeRepo(), nil)

	guard := AuthMiddleware(tokenSvc, userSvc)
	router := NewRouter(logger,
		guard,
		NewAuthHandler(logger, userSvc),
		NewUserHandler(logger, userSvc),
		NewPostHandler(logger, postSvc, 20),
	)
	return &testEnv{router: router, users: users, posts: posts, userSvc: userSvc, tokenSvc: tokenSvc}
}

// seedUser registra un usuario directamente en el repo y devuelve un token
// vigente para él.
func (e *testEnv) seedUser(id, email string) (domain.User, string) {
	user := domain.User{
		ID:        id,
		Email:     email,
		Username:  id,
		CreatedAt: time.Now().UTC(),
	}
	_ = e.users.Create(context.Background(), user)
	token, err := e.tokenSvc.Issue(user)
	if err != nil {
		panic(err)
	}
	return user, token
}
