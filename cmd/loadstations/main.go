// Command loadstations bootstraps the station registry and the dive point
// catalog from CSV files.
//
// Station rows: source,external_id,name,latitude,longitude,active
// Dive point rows: name,latitude,longitude
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"dive-marine/internal/divepoint"
	"dive-marine/internal/station"
	"dive-marine/internal/types"
)

func main() {
	dbPath := flag.String("db", "dive-marine.db", "path to the sqlite database")
	stationsPath := flag.String("stations", "", "path to the stations CSV file")
	pointsPath := flag.String("points", "", "optional path to the dive points CSV file")
	flag.Parse()

	if *stationsPath == "" {
		log.Fatal("missing required -stations flag")
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := station.CreateSchema(db); err != nil {
		log.Fatalf("failed to create station schema: %v", err)
	}
	if err := divepoint.CreateSchema(db); err != nil {
		log.Fatalf("failed to create dive point schema: %v", err)
	}

	ctx := context.Background()

	n, err := loadStations(ctx, db, *stationsPath)
	if err != nil {
		log.Fatalf("failed to load stations: %v", err)
	}
	log.Printf("loaded %d stations from %s", n, *stationsPath)

	if *pointsPath != "" {
		n, err := loadPoints(ctx, db, *pointsPath)
		if err != nil {
			log.Fatalf("failed to load dive points: %v", err)
		}
		log.Printf("loaded %d dive points from %s", n, *pointsPath)
	}
}

func loadStations(ctx context.Context, db *sql.DB, path string) (int, error) {
	records, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	registry := station.NewSQLiteRegistry(db)
	known := make(map[types.SourceKind]bool)
	for _, kind := range types.AllSourceKinds() {
		known[kind] = true
	}

	count := 0
	// Skip header row
	for i, record := range records[1:] {
		if len(record) < 6 {
			return count, fmt.Errorf("row %d: expected 6 columns, got %d", i+2, len(record))
		}

		source := types.SourceKind(record[0])
		if !known[source] {
			return count, fmt.Errorf("row %d: unknown source %q", i+2, record[0])
		}

		// Stations without a position keep the zero coordinate and are
		// skipped by distance ranking.
		lat, _ := strconv.ParseFloat(record[3], 64)
		lon, _ := strconv.ParseFloat(record[4], 64)
		active, err := strconv.ParseBool(record[5])
		if err != nil {
			return count, fmt.Errorf("row %d: bad active flag %q: %w", i+2, record[5], err)
		}

		st := types.Station{
			Source:     source,
			ExternalID: record[1],
			Name:       record[2],
			Coordinates: types.Coords{
				Latitude:  lat,
				Longitude: lon,
			},
			Active: active,
		}
		if err := registry.Upsert(ctx, st); err != nil {
			return count, fmt.Errorf("row %d: %w", i+2, err)
		}
		count++
	}

	return count, nil
}

func loadPoints(ctx context.Context, db *sql.DB, path string) (int, error) {
	records, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	lookup := divepoint.NewSQLiteLookup(db)

	count := 0
	for i, record := range records[1:] {
		if len(record) < 3 {
			return count, fmt.Errorf("row %d: expected 3 columns, got %d", i+2, len(record))
		}

		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return count, fmt.Errorf("row %d: bad latitude %q: %w", i+2, record[1], err)
		}
		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return count, fmt.Errorf("row %d: bad longitude %q: %w", i+2, record[2], err)
		}

		if _, err := lookup.Insert(ctx, record[0], lat, lon); err != nil {
			return count, fmt.Errorf("row %d: %w", i+2, err)
		}
		count++
	}

	return count, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}
	return records, nil
}
