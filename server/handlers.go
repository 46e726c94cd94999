package server

import (
	"net/http"
	"strings"

	"github.com/dekarrin/chomsky/server/api"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/result"
	"github.com/go-chi/chi/v5"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

func newRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount(api.PathPrefix, newAPIRouter(a))

	return r
}

func newAPIRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	// set before mounting so the sub-routers pick them up
	r.NotFound(a.HTTPNotFound())
	r.MethodNotAllowed(a.HTTPMethodNotAllowed())

	r.Mount("/login", newLoginRouter(a))
	r.Mount("/tokens", newTokensRouter(a))
	r.Mount("/users", newUsersRouter(a))
	r.Mount("/info", newInfoRouter(a))
	r.Mount("/normalize", newNormalizeRouter(a))
	r.Mount("/grammars", newGrammarsRouter(a))

	return r
}

func requireAuth(a api.API) middle.Middleware {
	return middle.RequireAuth(a.Backend.DB.Users(), a.Secret, a.UnauthDelay)
}

func optionalAuth(a api.API) middle.Middleware {
	return middle.OptionalAuth(a.Backend.DB.Users(), a.Secret, a.UnauthDelay, dao.User{})
}

func newLoginRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Post("/", a.HTTPCreateLogin())
	r.With(requireAuth(a)).Delete("/"+p("id:uuid"), a.HTTPDeleteLogin())
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

func newTokensRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(requireAuth(a)).Post("/", a.HTTPCreateToken())

	return r
}

func newUsersRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Use(requireAuth(a))

	r.Get("/", a.HTTPGetAllUsers())
	r.Post("/", a.HTTPCreateUser())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", a.HTTPGetUser())
		r.Delete("/", a.HTTPDeleteUser())
	})

	return r
}

func newInfoRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Get("/", a.HTTPGetInfo())

	return r
}

func newNormalizeRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Post("/", a.HTTPNormalize())

	return r
}

func newGrammarsRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Use(requireAuth(a))

	r.Get("/", a.HTTPGetAllGrammars())
	r.Post("/", a.HTTPCreateGrammar())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", a.HTTPGetGrammar())
		r.Delete("/", a.HTTPDeleteGrammar())
		r.Post("/cnf", a.HTTPNormalizeGrammar())
		r.Post("/accepts", a.HTTPGetAccepts())
	})

	return r
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL as the
// request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	result.Redirection(redirPath).WriteResponse(w, req)
}
