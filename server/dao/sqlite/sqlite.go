// Package sqlite provides a dao.Store backed by SQLite database files kept in
// a data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/chomsky/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	users    *UsersDB
	grammars *GrammarsDB
}

// NewDatastore opens (creating if needed) the database in storageDir and
// makes sure every table exists.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	// foreign keys are off by default in SQLite and the pragma has to be set
	// on every pooled connection, so it goes in the DSN.
	st.db, err = sql.Open("sqlite", "file:"+fileName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("users table: %w", err)
	}

	st.grammars = &GrammarsDB{db: st.db}
	if err := st.grammars.init(true); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("grammars table: %w", err)
	}

	return st, nil
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// low byte is the primary code; 19 is SQLITE_CONSTRAINT for any of its
		// extended variants (unique, foreign key, ...)
		if sqliteErr.Code()&0xff == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s: %s", sqlite.ErrorCodeString[sqliteErr.Code()&0xff], sqliteErr.Error())
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
