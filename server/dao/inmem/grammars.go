package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/chomsky/internal/util"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

func NewGrammarsRepository() *GrammarsRepository {
	return &GrammarsRepository{
		grammars: make(map[uuid.UUID]dao.Grammar),
	}
}

// GrammarsRepository stores copies of the grammars given to it, so changing a
// grammar after it was stored or retrieved does not change what is stored.
type GrammarsRepository struct {
	mtx      sync.RWMutex
	grammars map[uuid.UUID]dao.Grammar
}

func (imgr *GrammarsRepository) Close() error {
	return nil
}

func (imgr *GrammarsRepository) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imgr.mtx.Lock()
	defer imgr.mtx.Unlock()

	g.ID = newUUID
	now := time.Now()
	g.Created = now
	g.Modified = now

	imgr.grammars[g.ID] = copyGrammar(g)
	return copyGrammar(g), nil
}

func (imgr *GrammarsRepository) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	return imgr.filter(func(g dao.Grammar) bool { return true }), nil
}

func (imgr *GrammarsRepository) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Grammar, error) {
	return imgr.filter(func(g dao.Grammar) bool { return g.Owner == owner }), nil
}

func (imgr *GrammarsRepository) filter(keep func(dao.Grammar) bool) []dao.Grammar {
	imgr.mtx.RLock()
	defer imgr.mtx.RUnlock()

	var all []dao.Grammar
	for k := range imgr.grammars {
		if keep(imgr.grammars[k]) {
			all = append(all, copyGrammar(imgr.grammars[k]))
		}
	}

	return util.SortBy(all, func(l, r dao.Grammar) bool {
		if !l.Created.Equal(r.Created) {
			return l.Created.Before(r.Created)
		}
		return l.ID.String() < r.ID.String()
	})
}

func (imgr *GrammarsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	imgr.mtx.RLock()
	defer imgr.mtx.RUnlock()

	g, ok := imgr.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return copyGrammar(g), nil
}

func (imgr *GrammarsRepository) Update(ctx context.Context, id uuid.UUID, g dao.Grammar) (dao.Grammar, error) {
	imgr.mtx.Lock()
	defer imgr.mtx.Unlock()

	existing, ok := imgr.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	if g.ID != id {
		if _, ok := imgr.grammars[g.ID]; ok {
			return dao.Grammar{}, dao.ErrConstraintViolation
		}
	}

	g.Created = existing.Created
	g.Modified = time.Now()

	delete(imgr.grammars, id)
	imgr.grammars[g.ID] = copyGrammar(g)
	return copyGrammar(g), nil
}

func (imgr *GrammarsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	imgr.mtx.Lock()
	defer imgr.mtx.Unlock()

	g, ok := imgr.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	delete(imgr.grammars, id)
	return g, nil
}

func copyGrammar(g dao.Grammar) dao.Grammar {
	if g.Original != nil {
		g.Original = g.Original.Copy()
	}
	if g.Normalized != nil {
		g.Normalized = g.Normalized.Copy()
	}
	return g
}
