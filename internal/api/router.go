package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bic-devsphere/devsphere-backend/internal/api/handlers"
	"github.com/bic-devsphere/devsphere-backend/internal/api/httpx"
	"github.com/bic-devsphere/devsphere-backend/internal/metrics"
	"github.com/bic-devsphere/devsphere-backend/internal/middleware"
	"github.com/bic-devsphere/devsphere-backend/internal/models"
)

type Deps struct {
	Auth         *handlers.AuthHandler
	Members      *handlers.MemberHandler
	Events       *handlers.EventHandler
	Projects     *handlers.ProjectHandler
	Tags         *handlers.TagHandler
	Contributors *handlers.ContributorHandler
	Users        *handlers.UserHandler
	Audits       *handlers.AuditHandler

	AuthMW  *middleware.AuthMiddleware
	RateRPS int
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover)
	r.Use(middleware.RateLimit(d.RateRPS))
	r.Use(middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, "ok", nil)
	})
	r.Handle("/metrics", metrics.Handler())

	admin := middleware.RequireRole(string(models.RoleAdmin))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/admin/auth", func(r chi.Router) {
			r.Post("/signup", d.Auth.Signup)
			r.Post("/signin", d.Auth.Signin)
			r.Post("/refresh", d.Auth.Refresh)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", d.Members.List)
			r.Get("/{id}/status", d.Members.Status)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.Auth, admin)
				r.Post("/", d.Members.Create)
				r.Delete("/{id}", d.Members.Remove)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", d.Events.List)
			r.Get("/{id}", d.Events.Get)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.Auth, admin)
				r.Post("/", d.Events.Create)
				r.Put("/{id}", d.Events.Update)
				r.Delete("/{id}", d.Events.Delete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", d.Projects.List)
			r.Get("/{id}", d.Projects.Get)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.Auth, admin)
				r.Post("/", d.Projects.Create)
				r.Put("/{id}", d.Projects.Update)
				r.Delete("/{id}", d.Projects.Delete)
				r.Post("/{id}/contributors/sync", d.Projects.SyncContributors)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", d.Tags.List)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW.Auth, admin)
				r.Post("/", d.Tags.Create)
				r.Delete("/{id}", d.Tags.Delete)
			})
		})

		r.Get("/contributors", d.Contributors.List)

		r.Route("/users", func(r chi.Router) {
			r.Use(d.AuthMW.Auth, admin)
			r.Get("/", d.Users.List)
			r.Get("/{id}", d.Users.Get)
			r.Get("/{id}/role", d.Users.Role)
			r.Put("/{id}/role", d.Users.UpdateRole)
		})

		r.Route("/audits", func(r chi.Router) {
			r.Use(d.AuthMW.Auth, admin)
			r.Get("/", d.Audits.List)
		})
	})

	return r
}
