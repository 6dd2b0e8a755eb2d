package divepoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dive_points (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	lat  REAL NOT NULL,
	lon  REAL NOT NULL
);`

const findByIDSQL = `SELECT id, name, lat, lon FROM dive_points WHERE id = ?`

const insertPointSQL = `INSERT INTO dive_points (name, lat, lon) VALUES (?, ?, ?)`

// SQLiteLookup implements Lookup over a sqlite database.
type SQLiteLookup struct {
	db *sql.DB
}

func NewSQLiteLookup(db *sql.DB) *SQLiteLookup {
	return &SQLiteLookup{db: db}
}

// CreateSchema creates the dive_points table if it does not exist yet.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create dive_points schema: %w", err)
	}
	return nil
}

func (l *SQLiteLookup) FindByID(ctx context.Context, id int64) (*Point, error) {
	var p Point
	err := l.db.QueryRowContext(ctx, findByIDSQL, id).
		Scan(&p.ID, &p.Name, &p.Coordinates.Latitude, &p.Coordinates.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dive point %d: %w", id, err)
	}
	return &p, nil
}

// Insert adds a dive point row. Used by the bootstrap loader.
func (l *SQLiteLookup) Insert(ctx context.Context, name string, lat, lon float64) (int64, error) {
	res, err := l.db.ExecContext(ctx, insertPointSQL, name, lat, lon)
	if err != nil {
		return 0, fmt.Errorf("insert dive point %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("dive point id for %q: %w", name, err)
	}
	return id, nil
}
