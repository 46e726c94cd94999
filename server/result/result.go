// Package result builds the responses that the API's endpoints return. An
// endpoint returns a Result rather than writing to the ResponseWriter itself,
// so the caller can log the outcome with its internal message before the
// response goes out.
//
// Every constructor that takes internalMsg treats it as an optional format
// string followed by its arguments. The internal message is only logged; the
// client sees the response body.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is a complete response to an API request: status, body, headers, and
// a message for the server log.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string
	hdrs  [][2]string

	// cached by PrepareMarshaledResponse
	respJSONBytes []byte
}

// internalFormat gives the format string and args held in internalMsg, or def
// if internalMsg is empty.
func internalFormat(def string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}

func success(status int, respObj interface{}, def string, internalMsg []interface{}) Result {
	f, args := internalFormat(def, internalMsg)
	return Response(status, respObj, f, args...)
}

func failure(status int, userMsg, def string, internalMsg []interface{}) Result {
	f, args := internalFormat(def, internalMsg)
	return Err(status, userMsg, f, args...)
}

// OK is an HTTP-200 with respObj as the JSON body.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return success(http.StatusOK, respObj, "OK", internalMsg)
}

// Created is an HTTP-201 with the new resource as the JSON body.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return success(http.StatusCreated, respObj, "created", internalMsg)
}

// NoContent is an HTTP-204, used for successful deletes and logouts.
func NoContent(internalMsg ...interface{}) Result {
	return success(http.StatusNoContent, nil, "no content", internalMsg)
}

// BadRequest is an HTTP-400. userMsg should say what in the request was wrong,
// for example which rule of a grammar literal could not be parsed.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return failure(http.StatusBadRequest, userMsg, "bad request", internalMsg)
}

// Unauthorized is an HTTP-401 carrying the WWW-Authenticate challenge for
// bearer tokens. A generic message is used if userMsg is empty.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return failure(http.StatusUnauthorized, userMsg, "unauthorized", internalMsg).
		WithHeader("WWW-Authenticate", `Bearer realm="chomsky server", charset="utf-8"`)
}

// Forbidden is an HTTP-403, given when a logged-in user asks for another
// user's account or grammars without being an admin.
func Forbidden(internalMsg ...interface{}) Result {
	return failure(http.StatusForbidden, "You don't have permission to do that", "forbidden", internalMsg)
}

// NotFound is an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	return failure(http.StatusNotFound, "The requested resource was not found", "not found", internalMsg)
}

// MethodNotAllowed is an HTTP-405 naming the method and path of req.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return failure(http.StatusMethodNotAllowed, userMsg, "method not allowed", internalMsg)
}

// Conflict is an HTTP-409. It covers taken usernames and input checks against
// a grammar that has not been normalized yet.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	return failure(http.StatusConflict, userMsg, "conflict", internalMsg)
}

// InternalServerError is an HTTP-500. The client only gets a generic message;
// the details go in internalMsg.
func InternalServerError(internalMsg ...interface{}) Result {
	return failure(http.StatusInternalServerError, "An internal server error occurred", "internal server error", internalMsg)
}

// Response is a non-error JSON result with the given status. respObj is not
// read for HTTP-204 and may be nil then; otherwise it must not be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err is an error result with the given status whose body is an
// ErrorResponse holding userMsg.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// TextErr is like Err but the body is userMsg as plain text. It is used where
// JSON encoding itself may be what failed, such as after a handler panics.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// Redirection is an HTTP-308 to uri.
func Redirection(uri string) Result {
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: fmt.Sprintf("redirect -> %s", uri),
		redir:       uri,
	}
}

// WithHeader returns a copy of r that also sets the given header. r itself is
// not changed.
func (r Result) WithHeader(name, val string) Result {
	withHdr := r
	withHdr.respJSONBytes = nil
	withHdr.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(withHdr.hdrs, r.hdrs)
	withHdr.hdrs = append(withHdr.hdrs, [2]string{name, val})
	return withHdr
}

// PrepareMarshaledResponse encodes the JSON body of r if it has one, so that
// encoding problems can be found before anything is written. Once it has
// succeeded, later calls do nothing.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}
	if !r.IsJSON || r.Status == http.StatusNoContent || r.redir != "" {
		return nil
	}

	var err error
	r.respJSONBytes, err = json.Marshal(r.resp)
	return err
}

// WriteResponse writes r to w as the response to req. Responses to HEAD
// requests get the headers but no body. It panics if r was not made by one of
// the constructors or its body cannot be encoded.
func (r Result) WriteResponse(w http.ResponseWriter, req *http.Request) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	hdr := w.Header()
	hdr.Set("X-Content-Type-Options", "nosniff")

	var body []byte
	if r.IsJSON {
		hdr.Set("Content-Type", "application/json")
		body = r.respJSONBytes
	} else {
		hdr.Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent && r.redir == "" {
			body = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	if r.redir != "" {
		hdr.Set("Location", r.redir)
	}
	for i := range r.hdrs {
		hdr.Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent && req.Method != http.MethodHead {
		w.Write(body)
	}
}
