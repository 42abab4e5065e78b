package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nvalente/bloglist-be/internal/api/handlers"
	"github.com/nvalente/bloglist-be/internal/api/pipeline"
	"github.com/nvalente/bloglist-be/internal/api/respond"
	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/auth"
	"github.com/nvalente/bloglist-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Each route declares the
// pipeline stages it requires; the pipeline runs them in its fixed order.
func NewRouter(tokens *auth.TokenManager, userService services.UserServiceProvider, blogService services.BlogServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	p := pipeline.New(tokens, userService, blogService)

	// Initialize handlers
	loginHandler := handlers.NewLoginHandler(userService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", p.Handle(0, loginHandler.Login))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", p.Handle(0, userHandler.GetAll))
			r.Post("/", p.Handle(0, userHandler.Register))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", p.Handle(0, blogHandler.GetAll))
			r.Get("/stats", p.Handle(0, blogHandler.Stats))
			r.Post("/", p.Handle(pipeline.StageCredential|pipeline.StagePrincipal, blogHandler.Create))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", p.Handle(pipeline.StageResource, blogHandler.Get))
				// PUT is deliberately not ownership-gated; see DESIGN.md.
				r.Put("/", p.Handle(pipeline.StageResource, blogHandler.Update))
				r.Delete("/", p.Handle(
					pipeline.StageCredential|pipeline.StagePrincipal|
						pipeline.StageResource|pipeline.StageResourceAbsentOK|
						pipeline.StageOwnership,
					blogHandler.Delete))
				r.Post("/like", p.Handle(
					pipeline.StageCredential|pipeline.StagePrincipal|pipeline.StageResource,
					blogHandler.Like))
				r.Post("/comments", p.Handle(pipeline.StageResource, blogHandler.Comment))
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, apperr.UnknownRoute())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, apperr.UnknownRoute())
	})

	return r
}
