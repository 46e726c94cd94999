package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

const grammarColumns = `id, owner, name, original, normalized, isolate_start, reprune, created, modified`

type GrammarsDB struct {
	db *sql.DB
}

func (repo *GrammarsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		owner TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		name TEXT NOT NULL,
		original TEXT NOT NULL,
		normalized TEXT NOT NULL,
		isolate_start INTEGER NOT NULL,
		reprune INTEGER NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func scanGrammar(row scanner) (dao.Grammar, error) {
	var g dao.Grammar
	var id string
	var owner string
	var original string
	var normalized string
	var isolateStart int
	var reprune int
	var created int64
	var modified int64

	err := row.Scan(
		&id,
		&owner,
		&g.Name,
		&original,
		&normalized,
		&isolateStart,
		&reprune,
		&created,
		&modified,
	)
	if err != nil {
		return g, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &g.ID); err != nil {
		return g, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(owner, &g.Owner); err != nil {
		return g, fmt.Errorf("stored owner UUID %q is invalid: %w", owner, err)
	}
	if err := convertFromDB_Grammar(original, &g.Original); err != nil {
		return g, fmt.Errorf("stored original grammar is invalid: %w", err)
	}
	if err := convertFromDB_Grammar(normalized, &g.Normalized); err != nil {
		return g, fmt.Errorf("stored normalized grammar is invalid: %w", err)
	}
	if err := convertFromDB_Bool(isolateStart, &g.Options.IsolateStart); err != nil {
		return g, fmt.Errorf("stored isolate_start is invalid: %w", err)
	}
	if err := convertFromDB_Bool(reprune, &g.Options.Reprune); err != nil {
		return g, fmt.Errorf("stored reprune is invalid: %w", err)
	}
	if err := convertFromDB_Time(created, &g.Created); err != nil {
		return g, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	if err := convertFromDB_Time(modified, &g.Modified); err != nil {
		return g, fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}

	return g, nil
}

func (repo *GrammarsDB) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO grammars (` + grammarColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(g.Owner),
		g.Name,
		convertToDB_Grammar(g.Original),
		convertToDB_Grammar(g.Normalized),
		convertToDB_Bool(g.Options.IsolateStart),
		convertToDB_Bool(g.Options.Reprune),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *GrammarsDB) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	return repo.query(ctx, `SELECT `+grammarColumns+` FROM grammars ORDER BY created, id;`)
}

func (repo *GrammarsDB) GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]dao.Grammar, error) {
	return repo.query(ctx, `SELECT `+grammarColumns+` FROM grammars WHERE owner = ? ORDER BY created, id;`, convertToDB_UUID(owner))
}

func (repo *GrammarsDB) query(ctx context.Context, q string, args ...any) ([]dao.Grammar, error) {
	rows, err := repo.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Grammar
	for rows.Next() {
		g, err := scanGrammar(rows)
		if err != nil {
			return all, err
		}
		all = append(all, g)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *GrammarsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+grammarColumns+` FROM grammars WHERE id = ?;`, convertToDB_UUID(id))
	return scanGrammar(row)
}

func (repo *GrammarsDB) Update(ctx context.Context, id uuid.UUID, g dao.Grammar) (dao.Grammar, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE grammars SET id=?, owner=?, name=?, original=?, normalized=?, isolate_start=?, reprune=?, modified=? WHERE id=?;`,
		convertToDB_UUID(g.ID),
		convertToDB_UUID(g.Owner),
		g.Name,
		convertToDB_Grammar(g.Original),
		convertToDB_Grammar(g.Normalized),
		convertToDB_Bool(g.Options.IsolateStart),
		convertToDB_Bool(g.Options.Reprune),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Grammar{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, g.ID)
}

func (repo *GrammarsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

// Close does nothing; the connection is shared and is closed by the store.
func (repo *GrammarsDB) Close() error {
	return nil
}
