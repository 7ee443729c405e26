package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "railway/internal/config"
	intdb "railway/internal/db"
	"railway/internal/domain"
)

// Store is the handle and dialect every repository embeds. Zero values
// fall back to the shared connection opened by config.ConnectDB.
type Store struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (s Store) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s Store) dialect() intdb.Dialect {
	if s.Dialect != "" {
		return s.Dialect
	}
	return intdb.Dialect(intconfig.DBDriver)
}

func (s Store) q(query string) string {
	return intdb.Rebind(s.dialect(), query)
}

func (s Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	return intdb.InsertID(ctx, s.db(), s.dialect(), query, args...)
}

// deleteByID removes one row and reports NotFound when nothing matched.
func (s Store) deleteByID(ctx context.Context, table, resource string, id int64) error {
	res, err := s.db().ExecContext(ctx, s.q(`DELETE FROM `+table+` WHERE id=?`), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

// idFilter appends "col IN (...)" when ids is non-empty.
func idFilter(where []string, args []any, col string, ids []int64) ([]string, []any) {
	if len(ids) == 0 {
		return where, args
	}
	where = append(where, col+" IN ("+intdb.Placeholders(len(ids))+")")
	return where, append(args, intdb.Int64Args(ids)...)
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return fmt.Errorf("get %s: %w", resource, err)
}

// writeErr maps constraint failures of an INSERT/UPDATE onto domain errors.
func writeErr(resource, refField string, err error) error {
	switch {
	case intdb.IsForeignKeyViolation(err):
		return domain.ValidationError{Field: refField, Msg: "referenced object does not exist", Err: err}
	case intdb.IsUniqueViolation(err):
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	default:
		return fmt.Errorf("write %s: %w", resource, err)
	}
}
