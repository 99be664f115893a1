package api

import (
	"net/http"
)

// NewRouter builds the API handler with its middleware chain
func NewRouter(handler *Handler, verifier TokenVerifier, corsAllowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)

	return RequestLogging(CORS(corsAllowedOrigins, recoverPanic(mux)))
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/{$}", handler.Root)

	mux.HandleFunc("POST /api/auth/login", handler.Login)

	mux.HandleFunc("GET /api/news", handler.ListNews)
	mux.HandleFunc("GET /api/news/{id}", handler.GetNews)
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/{id}", handler.GetPlayer)
	mux.HandleFunc("GET /api/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/matches/{id}", handler.GetMatch)
	mux.HandleFunc("GET /api/settings", handler.GetSettings)
	mux.HandleFunc("POST /api/contacts", handler.CreateContact)
	mux.HandleFunc("GET /api/standings", handler.GetStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	protect := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}

	protect("POST /api/auth/register", handler.Register)
	protect("GET /api/auth/me", handler.Me)

	protect("POST /api/news", handler.CreateNews)
	protect("PUT /api/news/{id}", handler.UpdateNews)
	protect("DELETE /api/news/{id}", handler.DeleteNews)

	protect("POST /api/players", handler.CreatePlayer)
	protect("PUT /api/players/{id}", handler.UpdatePlayer)
	protect("DELETE /api/players/{id}", handler.DeletePlayer)

	protect("POST /api/matches", handler.CreateMatch)
	protect("PUT /api/matches/{id}", handler.UpdateMatch)
	protect("DELETE /api/matches/{id}", handler.DeleteMatch)

	protect("PUT /api/settings", handler.UpdateSettings)

	protect("GET /api/contacts", handler.ListContacts)
	protect("DELETE /api/contacts/{id}", handler.DeleteContact)
	protect("PATCH /api/contacts/{id}/read", handler.MarkContactRead)

	protect("POST /api/standings/refresh", handler.RefreshStandings)
}
