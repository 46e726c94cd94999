package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/chomsky/server/result"
	"github.com/dekarrin/chomsky/server/serr"
)

// HTTPNormalize returns a HandlerFunc that normalizes the grammar given in the
// request and returns the result without storing anything. Logging in is not
// required.
func (api API) HTTPNormalize() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epNormalize)
}

func (api API) epNormalize(req *http.Request) result.Result {
	var normReq NormalizeRequest
	err := parseJSON(req, &normReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	norm, err := api.Backend.Normalize(normReq.Grammar.data(), normReq.Options.options())
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(normalizeResponse(norm), "%s normalized a grammar with %d rules", clientDesc(req), len(normReq.Grammar.Rules))
}
