// Package pipeline runs the ordered chain of checks every request passes
// before its handler body: credential verification, principal lookup,
// resource lookup, ownership authorization. Routes declare which stages they
// need; the order is fixed here, so identifier validity is always checked
// before ownership and the ownership gate never sees a resource that failed
// to load.
package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/api/respond"
	"github.com/nvalente/bloglist-be/internal/auth"
	"github.com/nvalente/bloglist-be/internal/models"
	"github.com/nvalente/bloglist-be/internal/services"
)

// Stage is a bitmask of the checks a route requires.
type Stage uint8

const (
	// StageCredential verifies the bearer token and yields a principal.
	StageCredential Stage = 1 << iota
	// StagePrincipal loads the full user record for the principal.
	StagePrincipal
	// StageResource loads the blog named by the {id} URL parameter.
	StageResource
	// StageOwnership requires the resolved user to own the loaded blog.
	StageOwnership
	// StageResourceAbsentOK relaxes StageResource: a missing blog is not a
	// failure, the handler sees a nil Blog instead. Malformed ids still
	// fail. Used by idempotent deletes, where "already gone" is success.
	StageResourceAbsentOK
)

// RequestContext carries what the stages resolved for the handler body.
type RequestContext struct {
	Principal *auth.Claims
	User      *models.User
	Blog      *models.Blog
}

// Handler is a handler body run after all declared stages passed. A returned
// error goes straight to the taxonomy mapper.
type Handler func(w http.ResponseWriter, r *http.Request, rc *RequestContext) error

// Pipeline composes the stages over the token manager and services.
type Pipeline struct {
	tokens *auth.TokenManager
	users  services.UserServiceProvider
	blogs  services.BlogServiceProvider
}

// New creates a Pipeline.
func New(tokens *auth.TokenManager, users services.UserServiceProvider, blogs services.BlogServiceProvider) *Pipeline {
	return &Pipeline{tokens: tokens, users: users, blogs: blogs}
}

// Handle wraps a handler body with the declared stages. Any stage failure
// short-circuits to the mapper; the handler body never runs.
func (p *Pipeline) Handle(stages Stage, h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := &RequestContext{}
		if err := p.run(stages, r, rc); err != nil {
			respond.Error(w, err)
			return
		}
		if err := h(w, r, rc); err != nil {
			respond.Error(w, err)
		}
	}
}

// run executes the declared stages in the one fixed order.
func (p *Pipeline) run(stages Stage, r *http.Request, rc *RequestContext) error {
	// Later stages imply what they depend on: the ownership gate needs a
	// resolved user and a loaded resource, the principal needs a credential.
	if stages&StageOwnership != 0 {
		stages |= StagePrincipal | StageResource
	}
	if stages&StagePrincipal != 0 {
		stages |= StageCredential
	}

	if stages&StageCredential != 0 {
		raw := bearerToken(r)
		if raw == "" {
			return apperr.Authentication("missing token")
		}
		claims, err := p.tokens.Verify(raw)
		if err != nil {
			return err
		}
		rc.Principal = claims
	}

	if stages&StagePrincipal != 0 {
		user, err := p.users.GetUserByID(rc.Principal.UserID)
		if err != nil {
			// Covers users deleted after the token was issued.
			if isNotFound(err) {
				return apperr.Authentication("invalid user")
			}
			return err
		}
		rc.User = &user
	}

	if stages&StageResource != 0 {
		id := chi.URLParam(r, "id")
		if err := uuid.Validate(id); err != nil {
			return apperr.MalformedID(fmt.Sprintf("malformed blog id %q", id))
		}
		blog, err := p.blogs.GetBlogByID(id)
		if err != nil {
			if isNotFound(err) && stages&StageResourceAbsentOK != 0 {
				rc.Blog = nil
			} else {
				return err
			}
		} else {
			rc.Blog = &blog
		}
	}

	if stages&StageOwnership != 0 && rc.Blog != nil {
		if rc.Blog.OwnerID != rc.User.ID {
			return apperr.Authorization("unauthorized user")
		}
	}

	return nil
}

// bearerToken extracts the token from the Authorization header. Absence of
// the header yields an empty string, not a failure.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func isNotFound(err error) bool {
	var ae *apperr.Error
	return errors.As(err, &ae) && ae.Kind == apperr.KindNotFound
}
