package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/construction-backoffice/internal/auth"
	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/feature"
	"github.com/frahmantamala/construction-backoffice/internal/leave"
	"github.com/frahmantamala/construction-backoffice/internal/notification"
	"github.com/frahmantamala/construction-backoffice/internal/project"
	"github.com/frahmantamala/construction-backoffice/internal/purchase"
	"github.com/frahmantamala/construction-backoffice/internal/transport/middleware"
	"github.com/frahmantamala/construction-backoffice/internal/transport/swagger"
	"github.com/frahmantamala/construction-backoffice/internal/user"
	"github.com/go-chi/chi"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth          *auth.Handler
	Authz         *authz.Handler
	Feature       *feature.Handler
	User          *user.Handler
	Project       *project.Handler
	ProjectAccess *project.AccessMiddleware
	Leave         *leave.Handler
	Purchase      *purchase.Handler
	Notification  *notification.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, guards *authz.Authorization, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Everything below requires an authenticated principal.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.Authz != nil {
				pr.Get("/permissions/me", h.Authz.GetMyPermissions)
			}

			if h.Feature != nil {
				pr.Get("/features", h.Feature.GetFeatures)
			}

			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", h.Notification.ListNotifications)
					nr.Post("/{id}/read", h.Notification.MarkRead)
				})
			}

			if h.Project != nil {
				pr.Route("/projects", func(sr chi.Router) {
					sr.With(guards.RequireFeature(project.FeatureView)).Get("/", h.Project.ListProjects)

					sr.Group(func(ar chi.Router) {
						ar.Use(guards.RequireAdmin())
						ar.Post("/", h.Project.CreateProject)
						ar.Patch("/{id}", h.Project.UpdateProject)
						if h.Authz != nil {
							ar.Get("/{id}/access", h.Authz.GetProjectAccess)
							ar.Put("/{id}/access", h.Authz.SaveProjectAccess)
						}
					})

					if h.ProjectAccess != nil {
						sr.With(h.ProjectAccess.RequireProjectAccess()).Get("/{id}", h.Project.GetProject)
					}
				})
			}

			if h.Leave != nil {
				pr.Get("/users/{id}/leave-balances", h.Leave.GetUserBalances)
				pr.With(guards.RequireAdmin()).Put("/leave-balances", h.Leave.SaveBalance)
			}

			if h.Purchase != nil {
				pr.Route("/purchase-requests", func(er chi.Router) {
					er.With(guards.RequireFeature(purchase.FeatureSubmit)).Post("/", h.Purchase.SubmitRequest)
					er.Get("/", h.Purchase.ListRequests)
					er.Get("/{id}", h.Purchase.GetRequest)

					er.Group(func(mr chi.Router) {
						mr.Use(guards.RequireFeature(purchase.FeatureApprove))
						mr.Patch("/{id}/approve", h.Purchase.ApproveRequest)
						mr.Patch("/{id}/reject", h.Purchase.RejectRequest)
					})
				})
			}

			// Admin surface: user management, feature catalog, and the
			// authorization editors.
			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(guards.RequireAdmin())

				if h.User != nil {
					ar.Route("/users", func(ur chi.Router) {
						ur.Get("/", h.User.ListUsers)
						ur.Post("/", h.User.CreateUser)
						ur.Get("/{id}", h.User.GetUser)
						ur.Patch("/{id}", h.User.UpdateUser)
						ur.Delete("/{id}", h.User.DeactivateUser)
						if h.Authz != nil {
							ur.Get("/{id}/visibility", h.Authz.GetUserVisibility)
							ur.Put("/{id}/visibility", h.Authz.SaveUserVisibility)
						}
					})
				}

				if h.Feature != nil {
					ar.Route("/features", func(fr chi.Router) {
						fr.Get("/", h.Feature.GetAllFeatures)
						fr.Post("/", h.Feature.CreateFeature)
						fr.Patch("/{id}", h.Feature.UpdateFeature)
						fr.Delete("/{id}", h.Feature.DeactivateFeature)
					})
				}

				if h.Authz != nil {
					ar.Get("/role-permissions", h.Authz.GetMatrix)
					ar.Put("/role-permissions", h.Authz.SaveMatrix)
				}
			})
		})
	})
}
