package sqlrepo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/query"
	"github.com/haguru/blogd/pkg/databases/sqldb"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	client := sqldb.NewClient(sqldb.SQLite, sqldb.Options{})
	require.NoError(t, client.Connect(ctx, filepath.Join(t.TempDir(), "blog.db")))

	store, err := NewStore(client)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))
	t.Cleanup(func() { store.Close(context.Background()) })

	return store
}

func addUser(t *testing.T, store *Store, username string) string {
	t.Helper()
	id, err := store.Users().AddUser(context.Background(), *models.NewUser(username, username+"@example.com", "$2a$10$hash"))
	require.NoError(t, err)
	return id
}

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestNewStore_NilClient(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := store.Users()

	id := addUser(t, store, "alice")
	assert.NotEmpty(t, id)

	t.Run("get by username", func(t *testing.T) {
		u, err := users.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "$2a$10$hash", u.PasswordHash)
		assert.False(t, u.CreatedAt.IsZero())
		assert.Equal(t, time.UTC, u.CreatedAt.Location())
	})

	t.Run("get by id", func(t *testing.T) {
		u, err := users.GetUserByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		u, err := users.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, u)

		u, err = users.GetUserByID(ctx, "no-such-id")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.AddUser(ctx, *models.NewUser("alice", "other@example.com", "$2a$10$hash"))
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.AddUser(ctx, *models.NewUser("alice2", "alice@example.com", "$2a$10$hash"))
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})
}

func TestBlogRepository_ListSearchSort(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	posts := store.Posts()
	userID := addUser(t, store, "writer")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err := posts.AddPost(ctx, models.Post{Title: "A Test Blog Post", Content: "first body", UserID: userID, CreatedAt: base})
	require.NoError(t, err)
	_, err = posts.AddPost(ctx, models.Post{Title: "B Another Post", Content: "second body", UserID: userID, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		search string
		sort   string
		want   []string
	}{
		{name: "default is newest first", want: []string{"B Another Post", "A Test Blog Post"}},
		{name: "title ascending", sort: "title,ASC", want: []string{"A Test Blog Post", "B Another Post"}},
		{name: "title descending", sort: "title,DESC", want: []string{"B Another Post", "A Test Blog Post"}},
		{name: "createdAt ascending", sort: "createdAt,ASC", want: []string{"A Test Blog Post", "B Another Post"}},
		{name: "unknown field falls back to default", sort: "content,ASC", want: []string{"B Another Post", "A Test Blog Post"}},
		{name: "search in title", search: "Test", want: []string{"A Test Blog Post"}},
		{name: "search in content", search: "second", want: []string{"B Another Post"}},
		{name: "search matches nothing", search: "zzz", want: []string{}},
		{name: "wildcards match literally", search: "%", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := posts.ListPosts(ctx, query.ParseListOptions(tt.search, tt.sort))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
			for _, p := range got {
				require.NotNil(t, p.Author)
				assert.Equal(t, "writer", p.Author.Username)
				assert.Equal(t, userID, p.UserID)
			}
		})
	}
}

func TestBlogRepository_AddPost(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	userID := addUser(t, store, "writer")

	got, err := store.Posts().AddPost(ctx, *models.NewPost("Title", "Body", userID))
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	_, err = store.Posts().AddPost(ctx, *models.NewPost("Orphan", "Body", "missing-user"))
	assert.Error(t, err, "foreign key on user_id")
}

func TestBlogRepository_Stats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	posts := store.Posts()
	alice := addUser(t, store, "alice")
	bob := addUser(t, store, "bob")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_, err := posts.AddPost(ctx, models.Post{
			Title:     string(rune('a' + i)),
			Content:   "body",
			UserID:    alice,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	_, err := posts.AddPost(ctx, *models.NewPost("bob's", "body", bob))
	require.NoError(t, err)

	total, err := posts.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)

	mine, err := posts.CountPostsByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(7), mine)

	recent, err := posts.RecentPostsByUser(ctx, alice, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, titles(recent))

	none, err := posts.RecentPostsByUser(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	sessions := store.Sessions()
	userID := addUser(t, store, "alice")

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := models.Session{ID: "session-1", UserID: userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, sessions.AddSession(ctx, s))

	got, err := sessions.GetSession(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, sessions.DeleteSession(ctx, "session-1"))
	got, err = sessions.GetSession(ctx, "session-1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, sessions.DeleteSession(ctx, "session-1"))
}
