package kma

import (
	"strconv"
	"strings"

	"dive-marine/internal/types"
)

// The buoy feed is a plain-text table. Lines starting with '#' are comments;
// data rows are fixed comma-delimited columns.
const (
	colStationID = iota
	colObsTime
	colWindDir
	colWindSpeed
	colWindGust
	colSigWaveHeight

	minColumns = colSigWaveHeight + 1
)

// parseValue converts one column to a float pointer, mapping the feed's
// "not measured" sentinels to nil. -99 is a magic number upstream, never a
// real observation.
func parseValue(field string) *float64 {
	field = strings.TrimSpace(field)
	if field == "" || field == "-99" || field == "-99.0" {
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	if v == -99 {
		return nil
	}
	return &v
}

// parseBuoyTable scans the table for the row of one station and normalizes it
// into a WaveReading. Returns (nil, false) when the station has no row.
func parseBuoyTable(body string, stationID string) (*types.WaveReading, bool) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < minColumns {
			continue
		}
		if strings.TrimSpace(fields[colStationID]) != stationID {
			continue
		}

		return &types.WaveReading{
			SignificantWaveHeightM: parseValue(fields[colSigWaveHeight]),
			WindDirectionDeg:       parseValue(fields[colWindDir]),
			WindSpeedMs:            parseValue(fields[colWindSpeed]),
		}, true
	}
	return nil, false
}
