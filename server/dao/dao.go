// Package dao provides data access objects for use in the normalization
// server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Grammars() GrammarRepository
	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

type GrammarRepository interface {

	// Create creates a new stored Grammar. All attributes except for
	// auto-generated fields are taken from the provided Grammar.
	Create(ctx context.Context, g Grammar) (Grammar, error)
	GetAll(ctx context.Context) ([]Grammar, error)

	// GetAllByOwner returns every stored grammar owned by the user with the
	// given ID.
	GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]Grammar, error)
	GetByID(ctx context.Context, id uuid.UUID) (Grammar, error)
	Update(ctx context.Context, id uuid.UUID, g Grammar) (Grammar, error)
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

// Grammar is a grammar stored on behalf of a user, along with the result of
// normalizing it if that has been done.
type Grammar struct {
	ID    uuid.UUID
	Owner uuid.UUID
	Name  string

	// Original is the grammar as it was submitted. It is never changed after
	// creation.
	Original *grammar.Grammar

	// Normalized is the result of running the pipeline on Original with
	// Options. It is nil until that has been done.
	Normalized *grammar.Grammar

	// Options is what the pipeline was (or will be) run with.
	Options grammar.Options

	Created  time.Time
	Modified time.Time
}

// IsNormalized returns whether the pipeline has been run on the grammar.
func (g Grammar) IsNormalized() bool {
	return g.Normalized != nil
}
