package gramsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/internal/gfile"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/google/uuid"
)

// Normalization is the outcome of running the pipeline on a grammar.
type Normalization struct {
	Original   *grammar.Grammar
	Normalized *grammar.Grammar
	Steps      []grammar.StepResult
}

// Acceptance is the outcome of checking an input against a stored grammar.
type Acceptance struct {
	Tokens []string

	// Original is whether the grammar as submitted derives the input, checked
	// with an Earley recognizer.
	Original bool

	// Normalized is whether the normalized grammar derives the input, checked
	// with CYK.
	Normalized bool
}

// buildGrammar checks gd and builds it. The returned error matches
// serr.ErrBadArgument and lists every problem with the grammar.
func buildGrammar(gd gfile.GrammarData) (*grammar.Grammar, error) {
	if strings.TrimSpace(gd.Start) == "" {
		return nil, serr.New("start symbol cannot be blank", serr.ErrBadArgument)
	}
	if len(gd.Rules) == 0 {
		return nil, serr.New("grammar must have at least one rule", serr.ErrBadArgument)
	}

	g, err := gd.Grammar()
	if err != nil {
		return nil, serr.WrapBadArgument("grammar is not valid", err)
	}
	return g, nil
}

// Normalize builds the grammar described by gd and runs the pipeline on it
// without storing anything.
func (svc Service) Normalize(gd gfile.GrammarData, opts grammar.Options) (Normalization, error) {
	g, err := buildGrammar(gd)
	if err != nil {
		return Normalization{}, err
	}

	norm := Normalization{Original: g, Normalized: g.Copy()}
	norm.Steps = norm.Normalized.Normalize(opts)
	return norm, nil
}

// CreateGrammar stores the grammar described by gd on behalf of owner. The
// pipeline is not run; call NormalizeGrammar for that.
//
// The returned error will match serr.ErrBadArgument if gd is not a valid
// grammar and serr.ErrDB if there is a problem with the DB.
func (svc Service) CreateGrammar(ctx context.Context, owner uuid.UUID, name string, gd gfile.GrammarData, opts grammar.Options) (dao.Grammar, error) {
	if strings.TrimSpace(name) == "" {
		return dao.Grammar{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	g, err := buildGrammar(gd)
	if err != nil {
		return dao.Grammar{}, err
	}

	stored, err := svc.DB.Grammars().Create(ctx, dao.Grammar{
		Owner:    owner,
		Name:     name,
		Original: g,
		Options:  opts,
	})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Grammar{}, serr.New("owner does not exist", err, serr.ErrBadArgument)
		}
		return dao.Grammar{}, serr.WrapDB("could not create grammar", err)
	}

	return stored, nil
}

// GetAllGrammars returns every stored grammar.
func (svc Service) GetAllGrammars(ctx context.Context) ([]dao.Grammar, error) {
	all, err := svc.DB.Grammars().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return all, nil
}

// GetGrammarsOwnedBy returns every stored grammar belonging to owner.
func (svc Service) GetGrammarsOwnedBy(ctx context.Context, owner uuid.UUID) ([]dao.Grammar, error) {
	owned, err := svc.DB.Grammars().GetAllByOwner(ctx, owner)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return owned, nil
}

// GetGrammar returns the stored grammar with the given ID.
//
// The returned error will match serr.ErrNotFound if there is no such grammar,
// serr.ErrBadArgument if id is not a valid ID, and serr.ErrDB for problems
// with the DB.
func (svc Service) GetGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, serr.ErrNotFound
		}
		return dao.Grammar{}, serr.WrapDB("could not get grammar", err)
	}
	return g, nil
}

// DeleteGrammar deletes the stored grammar with the given ID and returns it as
// it was just before deletion. Errors are as for GetGrammar.
func (svc Service) DeleteGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, serr.ErrNotFound
		}
		return dao.Grammar{}, serr.WrapDB("could not delete grammar", err)
	}
	return g, nil
}

// NormalizeGrammar runs the pipeline on the original of the stored grammar
// with the given ID and stores the result. If opts is non-nil it replaces the
// stored options first. The original is never modified, so calling this again
// starts over from it.
func (svc Service) NormalizeGrammar(ctx context.Context, id string, opts *grammar.Options) (dao.Grammar, []grammar.StepResult, error) {
	stored, err := svc.GetGrammar(ctx, id)
	if err != nil {
		return dao.Grammar{}, nil, err
	}

	if opts != nil {
		stored.Options = *opts
	}

	cnf := stored.Original.Copy()
	steps := cnf.Normalize(stored.Options)
	stored.Normalized = cnf

	updated, err := svc.DB.Grammars().Update(ctx, stored.ID, stored)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, nil, serr.ErrNotFound
		}
		return dao.Grammar{}, nil, serr.WrapDB("could not save normalized grammar", err)
	}

	return updated, steps, nil
}

// Accepts checks input against the stored grammar with the given ID, both as
// originally submitted and as normalized. Input is split into terminals of the
// original grammar.
//
// The returned error will match serr.ErrNotNormalized if NormalizeGrammar has
// not been called for the grammar, and serr.ErrBadArgument if input contains
// something that is not a terminal. Otherwise errors are as for GetGrammar.
func (svc Service) Accepts(ctx context.Context, id string, input string) (Acceptance, error) {
	stored, err := svc.GetGrammar(ctx, id)
	if err != nil {
		return Acceptance{}, err
	}
	if !stored.IsNormalized() {
		return Acceptance{}, serr.ErrNotNormalized
	}

	tokens, err := stored.Original.Tokenize(input)
	if err != nil {
		return Acceptance{}, serr.WrapBadArgument("input", err)
	}

	acc := Acceptance{
		Tokens:   tokens,
		Original: stored.Original.Earley(tokens),
	}
	acc.Normalized, err = stored.Normalized.CYK(tokens)
	if err != nil {
		return Acceptance{}, serr.New("stored normalized grammar is not in normal form", err)
	}

	return acc, nil
}
