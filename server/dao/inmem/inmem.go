// Package inmem provides a dao.Store that keeps everything in memory. Nothing
// persists past the end of the process.
package inmem

import (
	"fmt"

	"github.com/dekarrin/chomsky/server/dao"
)

type store struct {
	users    *UsersRepository
	grammars *GrammarsRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		grammars: NewGrammarsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = nextErr
	}
	if nextErr := s.grammars.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
