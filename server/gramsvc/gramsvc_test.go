package gramsvc

import (
	"context"
	"testing"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/internal/gfile"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/dao/inmem"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() Service {
	return Service{DB: inmem.NewDatastore(), HashCost: bcrypt.MinCost}
}

var rightLinear = gfile.GrammarData{
	Start: "S",
	Rules: []string{"S -> a A | b", "A -> a | b S"},
}

func Test_Service_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CreateUser(ctx, "chomsky", "syntactic", "noam@example.com", dao.Normal)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	testCases := []struct {
		name      string
		username  string
		password  string
		expectErr error
	}{
		{name: "correct", username: "chomsky", password: "syntactic"},
		{name: "wrong password", username: "chomsky", password: "structures", expectErr: serr.ErrBadCredentials},
		{name: "no such user", username: "greibach", password: "syntactic", expectErr: serr.ErrBadCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			user, err := svc.Login(ctx, tc.username, tc.password)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.username, user.Username)
			assert.False(user.LastLoginTime.IsZero())
		})
	}
}

func Test_Service_Logout_movesLogoutTime(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	user, _ := svc.CreateUser(ctx, "chomsky", "syntactic", "", dao.Normal)
	before := user.LastLogoutTime.Unix()

	out, err := svc.Logout(ctx, user.ID)
	assert.NoError(err)
	assert.Greater(out.LastLogoutTime.Unix(), before)

	_, err = svc.Logout(ctx, uuid.New())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_CreateUser(t *testing.T) {
	testCases := []struct {
		name      string
		username  string
		password  string
		email     string
		expectErr error
	}{
		{name: "valid", username: "a", password: "b", email: "a@example.com"},
		{name: "no email", username: "a", password: "b"},
		{name: "blank username", username: "", password: "b", expectErr: serr.ErrBadArgument},
		{name: "blank password", username: "a", password: "", expectErr: serr.ErrBadArgument},
		{name: "bad email", username: "a", password: "b", email: "not an email", expectErr: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()

			_, err := svc.CreateUser(context.Background(), tc.username, tc.password, tc.email, dao.Normal)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			assert.NoError(err)

			_, err = svc.CreateUser(context.Background(), tc.username, tc.password, tc.email, dao.Normal)
			assert.ErrorIs(err, serr.ErrAlreadyExists)
		})
	}
}

func Test_Service_DeleteUser_deletesGrammars(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	user, _ := svc.CreateUser(ctx, "chomsky", "syntactic", "", dao.Normal)
	g, err := svc.CreateGrammar(ctx, user.ID, "rl", rightLinear, grammar.Options{})
	if !assert.NoError(err) {
		return
	}

	_, err = svc.DeleteUser(ctx, user.ID.String())
	assert.NoError(err)

	_, err = svc.GetGrammar(ctx, g.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_Normalize(t *testing.T) {
	testCases := []struct {
		name      string
		data      gfile.GrammarData
		expectErr error
	}{
		{name: "valid", data: rightLinear},
		{name: "no start", data: gfile.GrammarData{Rules: []string{"S -> a"}}, expectErr: serr.ErrBadArgument},
		{name: "no rules", data: gfile.GrammarData{Start: "S"}, expectErr: serr.ErrBadArgument},
		{
			name: "undeclared symbol",
			data: gfile.GrammarData{
				Start:        "S",
				NonTerminals: []string{"S"},
				Terminals:    []string{"a"},
				Rules:        []string{"S -> a b"},
			},
			expectErr: serr.ErrBadArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()

			norm, err := svc.Normalize(tc.data, grammar.Options{})
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			assert.NoError(err)
			assert.True(norm.Normalized.IsCNF())
			assert.Len(norm.Steps, len(grammar.DefaultPipeline))
			assert.Equal("S -> a A | b\nA -> a | b S", norm.Original.String())
		})
	}
}

func Test_Service_NormalizeGrammar_and_Accepts(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	owner := uuid.New()
	stored, err := svc.CreateGrammar(ctx, owner, "rl", rightLinear, grammar.Options{})
	if !assert.NoError(err) {
		return
	}

	_, err = svc.Accepts(ctx, stored.ID.String(), "b")
	assert.ErrorIs(err, serr.ErrNotNormalized)

	updated, steps, err := svc.NormalizeGrammar(ctx, stored.ID.String(), &grammar.Options{Reprune: true})
	if !assert.NoError(err) {
		return
	}
	assert.True(updated.IsNormalized())
	assert.True(updated.Options.Reprune)
	assert.Len(steps, 6)

	testCases := []struct {
		input  string
		expect bool
	}{
		{input: "b", expect: true},
		{input: "aa", expect: true},
		{input: "abb", expect: true},
		{input: "ab", expect: false},
	}
	for _, tc := range testCases {
		acc, err := svc.Accepts(ctx, stored.ID.String(), tc.input)
		if !assert.NoError(err) {
			continue
		}
		assert.Equal(tc.expect, acc.Original, "original on %q", tc.input)
		assert.Equal(tc.expect, acc.Normalized, "normalized on %q", tc.input)
	}

	_, err = svc.Accepts(ctx, stored.ID.String(), "abc")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.Accepts(ctx, "not-a-uuid", "b")
	assert.ErrorIs(err, serr.ErrBadArgument)
}

func Test_Service_GetGrammarsOwnedBy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	alice := uuid.New()
	bob := uuid.New()
	_, _ = svc.CreateGrammar(ctx, alice, "one", rightLinear, grammar.Options{})
	_, _ = svc.CreateGrammar(ctx, bob, "two", rightLinear, grammar.Options{})

	owned, err := svc.GetGrammarsOwnedBy(ctx, alice)
	assert.NoError(err)
	if assert.Len(owned, 1) {
		assert.Equal("one", owned[0].Name)
	}

	all, err := svc.GetAllGrammars(ctx)
	assert.NoError(err)
	assert.Len(all, 2)

	_, err = svc.CreateGrammar(ctx, alice, " ", rightLinear, grammar.Options{})
	assert.ErrorIs(err, serr.ErrBadArgument)
}
