package result

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		method       string
		expectStatus int
		expectBody   string
		expectHeader map[string]string
	}{
		{
			name:         "OK with JSON body",
			r:            OK(map[string]int{"count": 2}),
			method:       http.MethodGet,
			expectStatus: http.StatusOK,
			expectBody:   `{"count":2}`,
			expectHeader: map[string]string{"Content-Type": "application/json"},
		},
		{
			name:         "HEAD gets no body",
			r:            OK(map[string]int{"count": 2}),
			method:       http.MethodHead,
			expectStatus: http.StatusOK,
			expectBody:   "",
		},
		{
			name:         "no content",
			r:            NoContent("deleted %d things", 3),
			method:       http.MethodDelete,
			expectStatus: http.StatusNoContent,
			expectBody:   "",
		},
		{
			name:         "error response",
			r:            BadRequest("rules: property is empty", "no rules"),
			method:       http.MethodPost,
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"rules: property is empty","status":400}`,
		},
		{
			name:         "unauthorized sets authenticate header",
			r:            Unauthorized(""),
			method:       http.MethodGet,
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"error":"You are not authorized to do that","status":401}`,
			expectHeader: map[string]string{"WWW-Authenticate": `Bearer realm="chomsky server", charset="utf-8"`},
		},
		{
			name:         "plain text error",
			r:            TextErr(http.StatusInternalServerError, "An internal server error occurred", "panic"),
			method:       http.MethodGet,
			expectStatus: http.StatusInternalServerError,
			expectBody:   "An internal server error occurred",
			expectHeader: map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		},
		{
			name:         "redirect",
			r:            Redirection("/api/v1/info"),
			method:       http.MethodGet,
			expectStatus: http.StatusPermanentRedirect,
			expectHeader: map[string]string{"Location": "/api/v1/info"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest(tc.method, "/test", nil)
			w := httptest.NewRecorder()

			tc.r.WriteResponse(w, req)

			assert.Equal(tc.expectStatus, w.Code)
			assert.Equal(tc.expectBody, w.Body.String())
			for k, v := range tc.expectHeader {
				assert.Equal(v, w.Header().Get(k), "header %s", k)
			}
		})
	}
}

func Test_Result_WithHeader_doesNotShareHeaders(t *testing.T) {
	assert := assert.New(t)

	base := OK("x").WithHeader("X-One", "1")
	a := base.WithHeader("X-Two", "2")
	b := base.WithHeader("X-Three", "3")

	assert.Len(a.hdrs, 2)
	assert.Len(b.hdrs, 2)
	assert.Equal("X-Two", a.hdrs[1][0])
	assert.Equal("X-Three", b.hdrs[1][0])
}

func Test_Result_InternalMsg(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("OK", OK(nil).InternalMsg)
	assert.Equal("user 'bob' got 3 grammars", OK(nil, "user '%s' got %d grammars", "bob", 3).InternalMsg)
	assert.Equal("not found", NotFound().InternalMsg)
}
