package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_UsersRepository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewUsersRepository()

	created, err := repo.Create(ctx, dao.User{Username: "ellen", Password: "hash", Role: dao.Normal})
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(uuid.Nil, created.ID)
	assert.False(created.Created.IsZero())

	_, err = repo.Create(ctx, dao.User{Username: "ellen"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	byName, err := repo.GetByUsername(ctx, "ellen")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)

	created.Username = "ripley"
	updated, err := repo.Update(ctx, created.ID, created)
	assert.NoError(err)
	assert.Equal("ripley", updated.Username)

	_, err = repo.GetByUsername(ctx, "ellen")
	assert.ErrorIs(err, dao.ErrNotFound)

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal("ripley", deleted.Username)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_GrammarsRepository(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	t.Run("stored grammar is a copy", func(t *testing.T) {
		assert := assert.New(t)
		repo := NewGrammarsRepository()

		g := grammar.MustParseRules("S", "S -> a S | b")
		created, err := repo.Create(ctx, dao.Grammar{Owner: owner, Name: "right", Original: g})
		if !assert.NoError(err) {
			return
		}

		g.Normalize(grammar.Options{})

		got, err := repo.GetByID(ctx, created.ID)
		assert.NoError(err)
		assert.Equal("S -> a S | b", got.Original.String())
		assert.False(got.IsNormalized())
	})

	t.Run("filter by owner", func(t *testing.T) {
		assert := assert.New(t)
		repo := NewGrammarsRepository()

		g := grammar.MustParseRules("S", "S -> a")
		first, _ := repo.Create(ctx, dao.Grammar{Owner: owner, Name: "one", Original: g})
		_, _ = repo.Create(ctx, dao.Grammar{Owner: other, Name: "two", Original: g})
		third, _ := repo.Create(ctx, dao.Grammar{Owner: owner, Name: "three", Original: g})

		mine, err := repo.GetAllByOwner(ctx, owner)
		assert.NoError(err)
		if !assert.Len(mine, 2) {
			return
		}
		ids := []uuid.UUID{mine[0].ID, mine[1].ID}
		assert.Contains(ids, first.ID)
		assert.Contains(ids, third.ID)

		all, err := repo.GetAll(ctx)
		assert.NoError(err)
		assert.Len(all, 3)
	})

	t.Run("update and delete", func(t *testing.T) {
		assert := assert.New(t)
		repo := NewGrammarsRepository()

		g := grammar.MustParseRules("S", "S -> a A | b", "A -> a")
		created, _ := repo.Create(ctx, dao.Grammar{Owner: owner, Name: "g", Original: g})

		cnf := g.Copy()
		cnf.Normalize(grammar.Options{})
		created.Normalized = cnf

		updated, err := repo.Update(ctx, created.ID, created)
		assert.NoError(err)
		assert.True(updated.IsNormalized())
		assert.Equal(created.Created, updated.Created)

		_, err = repo.Update(ctx, uuid.New(), created)
		assert.ErrorIs(err, dao.ErrNotFound)

		_, err = repo.Delete(ctx, created.ID)
		assert.NoError(err)
		_, err = repo.Delete(ctx, created.ID)
		assert.ErrorIs(err, dao.ErrNotFound)
	})
}
