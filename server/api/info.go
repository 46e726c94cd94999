package api

import (
	"net/http"

	"github.com/dekarrin/chomsky/internal/version"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Chomsky = version.Current

	return result.OK(resp, "%s got API info", clientDesc(req))
}

// clientDesc describes the client making req for log messages. req must have
// passed through an auth middleware.
func clientDesc(req *http.Request) string {
	loggedIn, _ := req.Context().Value(middle.AuthLoggedIn).(bool)
	if !loggedIn {
		return "unauthed client"
	}
	return "user '" + loggedInUser(req).Username + "'"
}
