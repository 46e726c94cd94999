package token

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/dao/inmem"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_Generate_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		assert := assert.New(t)
		repo := inmem.NewUsersRepository()
		user, _ := repo.Create(ctx, dao.User{Username: "kleene", Password: "hash"})

		tok, err := Generate(testSecret, user)
		if !assert.NoError(err) {
			return
		}

		got, err := Validate(ctx, tok, testSecret, repo)
		assert.NoError(err)
		assert.Equal(user.ID, got.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert := assert.New(t)
		repo := inmem.NewUsersRepository()
		user, _ := repo.Create(ctx, dao.User{Username: "kleene", Password: "hash"})

		tok, _ := Generate(testSecret, user)
		_, err := Validate(ctx, tok, []byte("ffffffffffffffffffffffffffffffff"), repo)
		assert.Error(err)
	})

	t.Run("logout invalidates", func(t *testing.T) {
		assert := assert.New(t)
		repo := inmem.NewUsersRepository()
		user, _ := repo.Create(ctx, dao.User{Username: "kleene", Password: "hash"})

		tok, _ := Generate(testSecret, user)

		user.LastLogoutTime = user.LastLogoutTime.Add(2 * time.Second)
		_, err := repo.Update(ctx, user.ID, user)
		assert.NoError(err)

		_, err = Validate(ctx, tok, testSecret, repo)
		assert.Error(err)
	})

	t.Run("deleted user", func(t *testing.T) {
		assert := assert.New(t)
		repo := inmem.NewUsersRepository()
		user, _ := repo.Create(ctx, dao.User{Username: "kleene", Password: "hash"})

		tok, _ := Generate(testSecret, user)
		_, _ = repo.Delete(ctx, user.ID)

		_, err := Validate(ctx, tok, testSecret, repo)
		assert.Error(err)
	})
}

func Test_Get(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", expect: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", expect: "abc"},
		{name: "missing", header: "", expectErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", expectErr: true},
		{name: "no token", header: "Bearer", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := Get(req)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}
