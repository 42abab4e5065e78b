package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetAllUsers() ([]models.User, error)
	GetUserByID(id string) (models.User, error)
	CreateUser(username, name, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetAllUsers retrieves every user with their blogs attached.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, name, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var name sql.NullString
		if err := rows.Scan(&user.ID, &user.Username, &name, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.Name = name.String
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		blogs, err := s.blogsOf(users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Blogs = blogs
	}
	return users, nil
}

// blogsOf loads the blog projections owned by a user, in creation order.
func (s *UserService) blogsOf(userID string) ([]models.BlogRef, error) {
	rows, err := s.db.Query(
		"SELECT id, title, author, url FROM blogs WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []models.BlogRef{}
	for rows.Next() {
		var ref models.BlogRef
		var author sql.NullString
		if err := rows.Scan(&ref.ID, &ref.Title, &author, &ref.URL); err != nil {
			return nil, err
		}
		ref.Author = author.String
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var name sql.NullString
	row := s.db.QueryRow("SELECT id, username, name, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &name, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.NotFound(fmt.Sprintf("user %s not found", id))
		}
		return models.User{}, err
	}
	user.Name = name.String
	return user, nil
}

// CreateUser validates and registers a new user, hashing their password.
func (s *UserService) CreateUser(username, name, password string) (models.User, error) {
	if len(username) < 3 {
		return models.User{}, apperr.Validation("username must be at least 3 characters long")
	}
	if len(password) < 3 {
		return models.User{}, apperr.Validation("invalid password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Name:     name,
	}

	_, err = s.db.Exec("INSERT INTO users(id, username, name, password_hash) VALUES(?, ?, ?, ?)",
		user.ID, user.Username, user.Name, string(hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Duplicate("username must be unique")
		}
		return models.User{}, err
	}

	stored, err := s.GetUserByID(user.ID)
	if err != nil {
		return models.User{}, err
	}
	stored.Blogs = []models.BlogRef{}
	return stored, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	var user models.User
	var name sql.NullString
	row := s.db.QueryRow(
		"SELECT id, username, name, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.Authentication("invalid username")
		}
		return models.User{}, err
	}
	user.Name = name.String

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.Authentication("invalid password")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
