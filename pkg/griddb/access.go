package griddb

import (
	"database/sql"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/types"
)

// Timestamps are stored as unix seconds; sub-second precision is dropped.

func (s *Store) InsertGridReading(r *types.GridReading) error {
	_, err := s.db.Exec(
		"INSERT INTO grid_readings (timestamp, watts) "+
			"VALUES (?, ?)",
		r.Timestamp.UTC().Unix(),
		r.Watts,
	)
	if err != nil {
		return err
	}
	return nil
}

// ReadingsSince returns all readings with timestamp >= cutoff,
// oldest first. Empty slice when none match.
func (s *Store) ReadingsSince(cutoff time.Time) ([]types.GridReading, error) {
	rows, err := s.db.Query(
		"SELECT timestamp, watts FROM grid_readings "+
			"WHERE timestamp >= ? ORDER BY timestamp ASC",
		cutoff.UTC().Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []types.GridReading{}
	for rows.Next() {
		var ts int64
		var watts int
		if err := rows.Scan(&ts, &watts); err != nil {
			return nil, err
		}
		readings = append(readings, types.GridReading{
			Timestamp: time.Unix(ts, 0).UTC(),
			Watts:     watts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return readings, nil
}

// LatestReading returns the most recent reading, or nil when the table is empty.
func (s *Store) LatestReading() (*types.GridReading, error) {
	var ts int64
	var watts int
	err := s.db.QueryRow(
		"SELECT timestamp, watts FROM grid_readings "+
			"ORDER BY timestamp DESC LIMIT 1",
	).Scan(&ts, &watts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &types.GridReading{
		Timestamp: time.Unix(ts, 0).UTC(),
		Watts:     watts,
	}, nil
}
