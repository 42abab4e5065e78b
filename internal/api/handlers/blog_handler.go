package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nvalente/bloglist-be/internal/api/pipeline"
	"github.com/nvalente/bloglist-be/internal/api/respond"
	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/models"
	"github.com/nvalente/bloglist-be/internal/services"
	"github.com/nvalente/bloglist-be/internal/stats"
)

// BlogHandler handles HTTP requests for blogs.
type BlogHandler struct {
	service services.BlogServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service services.BlogServiceProvider) *BlogHandler {
	return &BlogHandler{service: service}
}

// BlogPayload defines the structure for blog create and update requests.
type BlogPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// GetAll lists every blog with owner and likers attached.
func (h *BlogHandler) GetAll(w http.ResponseWriter, _ *http.Request, _ *pipeline.RequestContext) error {
	blogs, err := h.service.GetAllBlogs()
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, blogs)
	return nil
}

// Get returns the blog the pipeline located.
func (h *BlogHandler) Get(w http.ResponseWriter, _ *http.Request, rc *pipeline.RequestContext) error {
	respond.JSON(w, http.StatusOK, rc.Blog)
	return nil
}

// Create stores a new blog owned by the authenticated user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request, rc *pipeline.RequestContext) error {
	var payload BlogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperr.Validation("invalid request body")
	}

	blog, err := h.service.CreateBlog(rc.User.ID, payload.Title, payload.Author, payload.URL, payload.Likes)
	if err != nil {
		return err
	}

	log.Info().Str("blog_id", blog.ID).Str("owner", rc.User.Username).Msg("Blog created")
	respond.JSON(w, http.StatusCreated, blog)
	return nil
}

// Update replaces a blog's title, author, and url. Not ownership-gated.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request, rc *pipeline.RequestContext) error {
	var payload BlogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperr.Validation("invalid request body")
	}

	blog, err := h.service.UpdateBlog(rc.Blog.ID, payload.Title, payload.Author, payload.URL)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, blog)
	return nil
}

// Delete removes the located blog. An already-gone blog is success.
func (h *BlogHandler) Delete(w http.ResponseWriter, _ *http.Request, rc *pipeline.RequestContext) error {
	if rc.Blog == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	if err := h.service.DeleteBlog(rc.Blog.ID); err != nil {
		return err
	}
	log.Info().Str("blog_id", rc.Blog.ID).Msg("Blog deleted")
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Like appends the authenticated user to the blog's likers.
func (h *BlogHandler) Like(w http.ResponseWriter, _ *http.Request, rc *pipeline.RequestContext) error {
	blog, err := h.service.LikeBlog(rc.Blog.ID, rc.User.ID)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, blog)
	return nil
}

// CommentPayload defines the structure for comment requests.
type CommentPayload struct {
	Comment string `json:"comment"`
}

// Comment appends a comment to the located blog.
func (h *BlogHandler) Comment(w http.ResponseWriter, r *http.Request, rc *pipeline.RequestContext) error {
	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperr.Validation("invalid request body")
	}

	blog, err := h.service.AddComment(rc.Blog.ID, payload.Comment)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, blog)
	return nil
}

// Summary is the aggregate view served by the stats endpoint.
type Summary struct {
	TotalLikes int                `json:"totalLikes"`
	Favorite   *models.Blog       `json:"favorite,omitempty"`
	MostBlogs  *stats.AuthorBlogs `json:"mostBlogs,omitempty"`
	MostLikes  *stats.AuthorLikes `json:"mostLikes,omitempty"`
}

// Stats returns aggregate statistics over all blogs.
func (h *BlogHandler) Stats(w http.ResponseWriter, _ *http.Request, _ *pipeline.RequestContext) error {
	blogs, err := h.service.GetAllBlogs()
	if err != nil {
		return err
	}

	respond.JSON(w, http.StatusOK, Summary{
		TotalLikes: stats.TotalLikes(blogs),
		Favorite:   stats.FavoriteBlog(blogs),
		MostBlogs:  stats.MostBlogs(blogs),
		MostLikes:  stats.MostLikes(blogs),
	})
	return nil
}
