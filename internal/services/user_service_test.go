package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/database"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	// A second pool connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected an apperr.Error, got %v", err)
	return ae.Kind
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
	return n
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	user, err := s.CreateUser("johndoe", "John Doe", "secure_password")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "johndoe", user.Username)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestCreateUserShortPassword(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.CreateUser("johndoe", "", "ab")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Equal(t, 0, countUsers(t, db))
}

func TestCreateUserShortUsername(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.CreateUser("jd", "", "secure_password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Equal(t, 0, countUsers(t, db))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.CreateUser("johndoe", "", "secure_password")
	require.NoError(t, err)

	_, err = s.CreateUser("johndoe", "", "another_password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindDuplicate, kindOf(t, err))
	assert.Equal(t, "username must be unique", err.(*apperr.Error).Message)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	created, err := s.CreateUser("root", "Super User", "secure_password")
	require.NoError(t, err)

	user, err := s.AuthenticateUser("root", "secure_password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = s.AuthenticateUser("root", "wrong_password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, kindOf(t, err))
	assert.Equal(t, "invalid password", err.(*apperr.Error).Message)

	_, err = s.AuthenticateUser("nobody", "secure_password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, kindOf(t, err))
	assert.Equal(t, "invalid username", err.(*apperr.Error).Message)
}

func TestGetUserByIDMissing(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db)

	_, err := s.GetUserByID("0c2d43a1-54c1-4f5e-9a2e-0d3c2b1a9f8e")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestGetAllUsersPopulatesBlogs(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	blogs := NewBlogService(db)

	owner, err := users.CreateUser("root", "", "secure_password")
	require.NoError(t, err)
	_, err = blogs.CreateBlog(owner.ID, "T", "A", "https://example.com", 0)
	require.NoError(t, err)

	all, err := users.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Blogs, 1)
	assert.Equal(t, "T", all[0].Blogs[0].Title)
	assert.Equal(t, "https://example.com", all[0].Blogs[0].URL)
}
