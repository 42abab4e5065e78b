package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/models"
)

func newBlogFixture(t *testing.T) (*sql.DB, *BlogService, models.User) {
	t.Helper()
	db := newTestDB(t)
	owner, err := NewUserService(db).CreateUser("root", "Super User", "secure_password")
	require.NoError(t, err)
	return db, NewBlogService(db), owner
}

func TestCreateBlogDefaultsLikesToZero(t *testing.T) {
	_, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, blog.Likes)
	assert.Equal(t, owner.ID, blog.OwnerID)
	require.NotNil(t, blog.User)
	assert.Equal(t, "root", blog.User.Username)
	assert.Empty(t, blog.LikedBy)
	assert.Empty(t, blog.Comments)
}

func TestCreateBlogRequiresTitleAndURL(t *testing.T) {
	db, s, owner := newBlogFixture(t)

	_, err := s.CreateBlog(owner.ID, "", "A", "u", 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	_, err = s.CreateBlog(owner.ID, "T", "A", "", 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&n))
	assert.Zero(t, n, "no write may happen before validation passes")
}

func TestGetBlogByIDMissing(t *testing.T) {
	_, s, _ := newBlogFixture(t)

	_, err := s.GetBlogByID("0c2d43a1-54c1-4f5e-9a2e-0d3c2b1a9f8e")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
	assert.Equal(t, "blog not found", err.(*apperr.Error).Message)
}

func TestLikeBlogAppendsWithoutDeduplication(t *testing.T) {
	_, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 0)
	require.NoError(t, err)

	liked, err := s.LikeBlog(blog.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	require.Len(t, liked.LikedBy, 1)
	assert.Equal(t, "root", liked.LikedBy[0].Username)

	// The same user liking again counts again.
	liked, err = s.LikeBlog(blog.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)
	assert.Len(t, liked.LikedBy, 2)
}

func TestAddCommentKeepsOrder(t *testing.T) {
	_, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 0)
	require.NoError(t, err)

	_, err = s.AddComment(blog.ID, "first")
	require.NoError(t, err)
	commented, err := s.AddComment(blog.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, commented.Comments)
}

func TestAddCommentRequiresBody(t *testing.T) {
	_, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 0)
	require.NoError(t, err)

	_, err = s.AddComment(blog.ID, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestUpdateBlog(t *testing.T) {
	_, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 3)
	require.NoError(t, err)

	updated, err := s.UpdateBlog(blog.ID, "T2", "A2", "u2")
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "A2", updated.Author)
	assert.Equal(t, "u2", updated.URL)
	// Untouched fields survive the update.
	assert.Equal(t, 3, updated.Likes)
	assert.Equal(t, owner.ID, updated.OwnerID)
}

func TestUpdateBlogMissing(t *testing.T) {
	_, s, _ := newBlogFixture(t)

	_, err := s.UpdateBlog("0c2d43a1-54c1-4f5e-9a2e-0d3c2b1a9f8e", "T", "A", "u")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestDeleteBlogCascades(t *testing.T) {
	db, s, owner := newBlogFixture(t)

	blog, err := s.CreateBlog(owner.ID, "T", "A", "u", 0)
	require.NoError(t, err)
	_, err = s.LikeBlog(blog.ID, owner.ID)
	require.NoError(t, err)
	_, err = s.AddComment(blog.ID, "c")
	require.NoError(t, err)

	require.NoError(t, s.DeleteBlog(blog.ID))

	for _, table := range []string{"blogs", "blog_likes", "blog_comments"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
