package database

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

const (
	tableThemes       = "themes"
	tableInspirations = "inspirations"
)

// ErrDuplicateKey reports a unique or primary key violation. Callers
// pre-check for duplicates, so this surfaces only when a racing writer slips
// between the check and the write.
var ErrDuplicateKey = errors.New("duplicate key")

func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository methods run standalone or inside a coordinator transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Repository struct {
	q        querier
	db       *DB
	notifier *Notifier

	// touched is non-nil only on transactional repositories; change
	// notifications collect here and publish after commit.
	touched map[string]bool
}

func NewRepository(db *DB) *Repository {
	return &Repository{q: db, db: db, notifier: NewNotifier()}
}

// WithTx runs fn against a repository bound to a single transaction.
// Multi-step operations (rename cascade, delete-with-reassignment) go through
// here so external observers see either the fully-before or the fully-after
// state, never an intermediate one. Watch subscribers are notified only after
// the commit succeeds.
func (r *Repository) WithTx(fn func(*Repository) error) error {
	if r.touched != nil {
		return errors.New("nested transactions are not supported")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	txRepo := &Repository{q: tx, db: r.db, notifier: r.notifier, touched: map[string]bool{}}
	if err := fn(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for table := range txRepo.touched {
		r.notifier.Publish(table)
	}
	return nil
}

func (r *Repository) notify(table string) {
	if r.touched != nil {
		r.touched[table] = true
		return
	}
	r.notifier.Publish(table)
}
