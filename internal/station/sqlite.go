package station

import (
	"context"
	"database/sql"
	"fmt"

	"dive-marine/internal/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS stations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL,
	external_id TEXT NOT NULL,
	name        TEXT NOT NULL,
	lat         REAL NOT NULL DEFAULT 0,
	lon         REAL NOT NULL DEFAULT 0,
	active      INTEGER NOT NULL DEFAULT 1,
	UNIQUE (source, external_id)
);
CREATE INDEX IF NOT EXISTS idx_stations_source_active ON stations (source, active);
`

const listActiveSQL = `
SELECT id, source, external_id, name, lat, lon, active
FROM stations
WHERE source = ? AND active = 1
ORDER BY id`

const upsertStationSQL = `
INSERT INTO stations (source, external_id, name, lat, lon, active)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (source, external_id) DO UPDATE SET
	name = excluded.name,
	lat = excluded.lat,
	lon = excluded.lon,
	active = excluded.active`

// SQLiteRegistry implements Registry over a sqlite database.
type SQLiteRegistry struct {
	db *sql.DB
}

func NewSQLiteRegistry(db *sql.DB) *SQLiteRegistry {
	return &SQLiteRegistry{db: db}
}

// CreateSchema creates the stations table if it does not exist yet.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create stations schema: %w", err)
	}
	return nil
}

func (r *SQLiteRegistry) ListActiveStations(ctx context.Context, kind types.SourceKind) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, listActiveSQL, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list active stations for %s: %w", kind, err)
	}
	defer rows.Close()

	var out []types.Station
	for rows.Next() {
		var (
			st     types.Station
			source string
			active int
		)
		if err := rows.Scan(&st.ID, &source, &st.ExternalID, &st.Name,
			&st.Coordinates.Latitude, &st.Coordinates.Longitude, &active); err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		st.Source = types.SourceKind(source)
		st.Active = active == 1
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate station rows: %w", err)
	}
	return out, nil
}

// Upsert inserts or refreshes one station row. Used by the bootstrap loader,
// never by the aggregation engine.
func (r *SQLiteRegistry) Upsert(ctx context.Context, st types.Station) error {
	active := 0
	if st.Active {
		active = 1
	}
	_, err := r.db.ExecContext(ctx, upsertStationSQL,
		string(st.Source), st.ExternalID, st.Name,
		st.Coordinates.Latitude, st.Coordinates.Longitude, active)
	if err != nil {
		return fmt.Errorf("upsert station %s/%s: %w", st.Source, st.ExternalID, err)
	}
	return nil
}
