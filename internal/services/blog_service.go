package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/models"
)

// BlogServiceProvider defines the interface for blog services.
type BlogServiceProvider interface {
	GetAllBlogs() ([]models.Blog, error)
	GetBlogByID(id string) (models.Blog, error)
	CreateBlog(ownerID, title, author, url string, likes int) (models.Blog, error)
	UpdateBlog(id, title, author, url string) (models.Blog, error)
	LikeBlog(blogID, userID string) (models.Blog, error)
	AddComment(blogID, comment string) (models.Blog, error)
	DeleteBlog(id string) error
}

// BlogService provides business logic for blog management.
type BlogService struct {
	db *sql.DB
}

// NewBlogService creates a new BlogService.
func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{db: db}
}

const blogSelect = `
	SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at,
	       u.username, u.name
	FROM blogs b
	JOIN users u ON u.id = b.user_id`

// scanBlog reads one row of blogSelect.
func scanBlog(row interface{ Scan(...any) error }) (models.Blog, error) {
	var blog models.Blog
	var author, ownerName sql.NullString
	var ownerUsername string
	err := row.Scan(&blog.ID, &blog.Title, &author, &blog.URL, &blog.Likes,
		&blog.OwnerID, &blog.CreatedAt, &ownerUsername, &ownerName)
	if err != nil {
		return models.Blog{}, err
	}
	blog.Author = author.String
	blog.User = &models.UserRef{ID: blog.OwnerID, Username: ownerUsername, Name: ownerName.String}
	return blog, nil
}

// GetAllBlogs retrieves every blog with owner, likers, and comments attached.
func (s *BlogService) GetAllBlogs() ([]models.Blog, error) {
	rows, err := s.db.Query(blogSelect + " ORDER BY b.created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range blogs {
		if err := s.populate(&blogs[i]); err != nil {
			return nil, err
		}
	}
	return blogs, nil
}

// GetBlogByID retrieves a single blog with owner, likers, and comments.
func (s *BlogService) GetBlogByID(id string) (models.Blog, error) {
	row := s.db.QueryRow(blogSelect+" WHERE b.id = ?", id)
	blog, err := scanBlog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Blog{}, apperr.NotFound("blog not found")
		}
		return models.Blog{}, err
	}
	if err := s.populate(&blog); err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

// populate attaches the likers' public fields and the comments.
func (s *BlogService) populate(blog *models.Blog) error {
	rows, err := s.db.Query(`
		SELECT u.id, u.username, u.name
		FROM blog_likes l JOIN users u ON u.id = l.user_id
		WHERE l.blog_id = ? ORDER BY l.rowid`, blog.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	blog.LikedBy = []models.UserRef{}
	for rows.Next() {
		var ref models.UserRef
		var name sql.NullString
		if err := rows.Scan(&ref.ID, &ref.Username, &name); err != nil {
			return err
		}
		ref.Name = name.String
		blog.LikedBy = append(blog.LikedBy, ref)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := s.db.Query(
		"SELECT comment FROM blog_comments WHERE blog_id = ? ORDER BY id", blog.ID)
	if err != nil {
		return err
	}
	defer crows.Close()

	blog.Comments = []string{}
	for crows.Next() {
		var comment string
		if err := crows.Scan(&comment); err != nil {
			return err
		}
		blog.Comments = append(blog.Comments, comment)
	}
	return crows.Err()
}

// CreateBlog validates and stores a new blog owned by ownerID.
func (s *BlogService) CreateBlog(ownerID, title, author, url string, likes int) (models.Blog, error) {
	if title == "" {
		return models.Blog{}, apperr.Validation("title is required")
	}
	if url == "" {
		return models.Blog{}, apperr.Validation("url is required")
	}
	if likes < 0 {
		return models.Blog{}, apperr.Validation("likes must not be negative")
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO blogs(id, title, author, url, likes, user_id) VALUES(?, ?, ?, ?, ?, ?)",
		id, title, author, url, likes, ownerID)
	if err != nil {
		return models.Blog{}, err
	}
	return s.GetBlogByID(id)
}

// UpdateBlog replaces a blog's title, author, and url. The owner never
// changes.
func (s *BlogService) UpdateBlog(id, title, author, url string) (models.Blog, error) {
	if title == "" {
		return models.Blog{}, apperr.Validation("title is required")
	}
	if url == "" {
		return models.Blog{}, apperr.Validation("url is required")
	}

	res, err := s.db.Exec("UPDATE blogs SET title = ?, author = ?, url = ? WHERE id = ?",
		title, author, url, id)
	if err != nil {
		return models.Blog{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Blog{}, apperr.NotFound("blog not found")
	}
	return s.GetBlogByID(id)
}

// LikeBlog appends the user to the blog's likers and increments the counter.
// Appends are not deduplicated; liking twice counts twice.
func (s *BlogService) LikeBlog(blogID, userID string) (models.Blog, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Blog{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO blog_likes(blog_id, user_id) VALUES(?, ?)", blogID, userID); err != nil {
		return models.Blog{}, fmt.Errorf("record like: %w", err)
	}
	if _, err := tx.Exec("UPDATE blogs SET likes = likes + 1 WHERE id = ?", blogID); err != nil {
		return models.Blog{}, fmt.Errorf("count like: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Blog{}, err
	}
	return s.GetBlogByID(blogID)
}

// AddComment appends a comment to the blog.
func (s *BlogService) AddComment(blogID, comment string) (models.Blog, error) {
	if comment == "" {
		return models.Blog{}, apperr.Validation("comment is required")
	}
	if _, err := s.db.Exec("INSERT INTO blog_comments(blog_id, comment) VALUES(?, ?)", blogID, comment); err != nil {
		return models.Blog{}, err
	}
	return s.GetBlogByID(blogID)
}

// DeleteBlog removes a blog; likes and comments cascade.
func (s *BlogService) DeleteBlog(id string) error {
	_, err := s.db.Exec("DELETE FROM blogs WHERE id = ?", id)
	return err
}
