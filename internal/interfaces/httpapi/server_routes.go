package httpapi

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/riskibarqy/volley-club/internal/domain/account"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /register", handler.Register)
	mux.HandleFunc("POST /login", handler.Login)
	mux.Handle("GET /profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("PUT /profile", RequireAuth(verifier, http.HandlerFunc(handler.UpdateProfile)))
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /api/news", handler.ListNews)
	mux.HandleFunc("GET /api/news/{id}", handler.GetNews)
	mux.HandleFunc("GET /api/league", handler.ListLeagueRows)
	mux.HandleFunc("GET /api/store", handler.ListStoreItems)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, authorizer RoleAuthorizer) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireRole(authorizer, account.RoleAdmin, h))
	}

	mux.Handle("GET /api/admin/players", admin(handler.ListPlayers))
	mux.Handle("POST /api/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /api/admin/players/{id}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /api/admin/players/{id}", admin(handler.DeletePlayer))

	mux.Handle("GET /api/admin/fixtures", admin(handler.ListFixtures))
	mux.Handle("POST /api/admin/fixtures", admin(handler.CreateFixture))
	mux.Handle("PUT /api/admin/fixtures/{id}", admin(handler.UpdateFixture))
	mux.Handle("DELETE /api/admin/fixtures/{id}", admin(handler.DeleteFixture))

	mux.Handle("GET /api/admin/news", admin(handler.ListNews))
	mux.Handle("POST /api/admin/news", admin(handler.CreateNews))
	mux.Handle("PUT /api/admin/news/{id}", admin(handler.UpdateNews))
	mux.Handle("DELETE /api/admin/news/{id}", admin(handler.DeleteNews))

	mux.Handle("GET /api/admin/store", admin(handler.ListStoreItems))
	mux.Handle("POST /api/admin/store", admin(handler.CreateStoreItem))
	mux.Handle("PUT /api/admin/store/{id}", admin(handler.UpdateStoreItem))
	mux.Handle("DELETE /api/admin/store/{id}", admin(handler.DeleteStoreItem))

	mux.Handle("GET /api/admin/league", admin(handler.ListLeagueRows))
	mux.Handle("POST /api/admin/league", admin(handler.CreateLeagueRow))
	mux.Handle("PUT /api/admin/league/{id}", admin(handler.UpdateLeagueRow))
	mux.Handle("DELETE /api/admin/league/{id}", admin(handler.DeleteLeagueRow))

	mux.Handle("GET /api/admin/stats", admin(handler.GetAdminStats))
	mux.Handle("GET /api/admin/users", admin(handler.ListAccounts))
	mux.Handle("PUT /api/admin/users/{id}/role", admin(handler.ChangeAccountRole))
}

func registerUploadRoutes(mux *http.ServeMux, uploadsDir string) {
	if strings.TrimSpace(uploadsDir) == "" {
		return
	}
	files := http.StripPrefix("/uploads/", http.FileServer(noDirListing{http.Dir(uploadsDir)}))
	mux.Handle("GET /uploads/{path...}", files)
}

// noDirListing hides directory indexes under the uploads root.
type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
