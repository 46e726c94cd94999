package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/result"
	"github.com/dekarrin/chomsky/server/serr"
)

// requireOwnedGrammar gets the grammar named by the id URL param and checks
// that the logged-in user may see it. If ok is false, res is the response to
// send instead.
func (api API) requireOwnedGrammar(req *http.Request, action string) (g dao.Grammar, res result.Result, ok bool) {
	id := requireIDParam(req)
	user := loggedInUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return g, result.NotFound(), false
		}
		return g, result.InternalServerError("could not get grammar: " + err.Error()), false
	}

	if g.Owner != user.ID && user.Role != dao.Admin {
		return g, result.Forbidden("user '%s' (role %s) %s grammar %s of user %s: forbidden", user.Username, user.Role, action, g.ID, api.describeUser(req, g.Owner.String())), false
	}

	return g, result.Result{}, true
}

// HTTPCreateGrammar returns a HandlerFunc that stores a new grammar owned by
// the logged-in user.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateGrammar() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateGrammar)
}

func (api API) epCreateGrammar(req *http.Request) result.Result {
	user := loggedInUser(req)

	var createReq GrammarCreateRequest
	err := parseJSON(req, &createReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	created, err := api.Backend.CreateGrammar(req.Context(), user.ID, createReq.Name, createReq.Grammar.data(), createReq.Options.options())
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := grammarModel(created)
	return result.Created(resp, "user '%s' created grammar '%s' (%s)", user.Username, resp.Name, resp.ID)
}

// HTTPGetAllGrammars returns a HandlerFunc that lists stored grammars. Admins
// get every grammar; everyone else gets only their own.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetAllGrammars() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllGrammars)
}

func (api API) epGetAllGrammars(req *http.Request) result.Result {
	user := loggedInUser(req)

	var grammars []dao.Grammar
	var err error
	if user.Role == dao.Admin {
		grammars, err = api.Backend.GetAllGrammars(req.Context())
	} else {
		grammars, err = api.Backend.GetGrammarsOwnedBy(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]GrammarModel, len(grammars))
	for i := range grammars {
		resp[i] = grammarModel(grammars[i])
	}

	return result.OK(resp, "user '%s' got %d grammars", user.Username, len(resp))
}

// HTTPGetGrammar returns a HandlerFunc that gets one stored grammar.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the grammar and the logged-in user of the client making the
// request.
func (api API) HTTPGetGrammar() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetGrammar)
}

func (api API) epGetGrammar(req *http.Request) result.Result {
	g, res, ok := api.requireOwnedGrammar(req, "get")
	if !ok {
		return res
	}

	return result.OK(grammarModel(g), "user '%s' got grammar '%s'", loggedInUser(req).Username, g.Name)
}

// HTTPDeleteGrammar returns a HandlerFunc that deletes one stored grammar.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the grammar and the logged-in user of the client making the
// request.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	g, res, ok := api.requireOwnedGrammar(req, "delete")
	if !ok {
		return res
	}

	_, err := api.Backend.DeleteGrammar(req.Context(), g.ID.String())
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete grammar: " + err.Error())
	}

	return result.NoContent("user '%s' deleted grammar '%s'", loggedInUser(req).Username, g.Name)
}

// HTTPNormalizeGrammar returns a HandlerFunc that runs the pipeline on a
// stored grammar and saves the result. The request body is optional; if it
// gives options, they replace the stored ones.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the grammar and the logged-in user of the client making the
// request.
func (api API) HTTPNormalizeGrammar() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epNormalizeGrammar)
}

func (api API) epNormalizeGrammar(req *http.Request) result.Result {
	g, res, ok := api.requireOwnedGrammar(req, "normalize")
	if !ok {
		return res
	}

	var cnfReq CNFRequest
	if req.ContentLength != 0 {
		if err := parseJSON(req, &cnfReq); err != nil {
			return result.BadRequest(err.Error(), err.Error())
		}
	}

	var newOpts *grammar.Options
	if cnfReq.Options != nil {
		opts := cnfReq.Options.options()
		newOpts = &opts
	}

	updated, steps, err := api.Backend.NormalizeGrammar(req.Context(), g.ID.String(), newOpts)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	resp := CNFResponse{
		Grammar: grammarModel(updated),
		Display: updated.Normalized.Display(),
		Steps:   stepModels(steps),
	}
	return result.OK(resp, "user '%s' normalized grammar '%s'", loggedInUser(req).Username, updated.Name)
}

// HTTPGetAccepts returns a HandlerFunc that checks an input string against
// a stored grammar, both as submitted and as normalized. The grammar must
// have been normalized first.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the grammar and the logged-in user of the client making the
// request.
func (api API) HTTPGetAccepts() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAccepts)
}

func (api API) epGetAccepts(req *http.Request) result.Result {
	g, res, ok := api.requireOwnedGrammar(req, "check input against")
	if !ok {
		return res
	}

	var accReq AcceptsRequest
	if err := parseJSON(req, &accReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	acc, err := api.Backend.Accepts(req.Context(), g.ID.String(), accReq.Input)
	if err != nil {
		if errors.Is(err, serr.ErrNotNormalized) {
			return result.Conflict("Grammar must be normalized before checking input", "grammar '%s' not normalized", g.Name)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	resp := AcceptsResponse{
		Input:      accReq.Input,
		Tokens:     acc.Tokens,
		Original:   acc.Original,
		Normalized: acc.Normalized,
	}
	if resp.Tokens == nil {
		resp.Tokens = []string{}
	}
	return result.OK(resp, "user '%s' checked %d tokens against grammar '%s'", loggedInUser(req).Username, len(resp.Tokens), g.Name)
}
