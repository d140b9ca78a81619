package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	entryHandler "github.com/dfreire/financas/internal/http/entry"
	authMiddleware "github.com/dfreire/financas/internal/http/middleware"
	userHandler "github.com/dfreire/financas/internal/http/user"
)

// UnauthenticatedRoutes is the allow-list checked before the token stage:
// registration and login are the only entry points without a bearer token.
var UnauthenticatedRoutes = []string{
	"POST /api/usuarios",
	"POST /api/usuarios/autenticar",
}

func New(
	usersV1 *userHandler.Handler,
	entriesV1 *entryHandler.Handler,
	auth *authMiddleware.Auth,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Token auth carries the actual security; CORS stays permissive on
	// headers and methods just like the original deployment.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Use(auth.Handler)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/usuarios", usersV1.Routes)
		r.Route("/lancamentos", entriesV1.Routes)
	})

	return router
}
