package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/denris/internal/multiplayer"
)

// VersusMatch is a stored versus result.
type VersusMatch struct {
	ID        int64
	MatchID   string
	Seed      int64
	Winner    int // 0 for a draw
	EndReason string
	Score1    int
	Score2    int
	Lines1    int
	Lines2    int
	Sent1     int
	Sent2     int
	Duration  time.Duration
	CreatedAt time.Time
}

const versusColumns = `id, match_id, seed, winner, end_reason, score1, score2,
		        lines1, lines2, sent1, sent2, duration_ms, created_at`

// SaveVersusMatch records a versus result.
// Returns the ID of the inserted record.
func (s *Store) SaveVersusMatch(m VersusMatch) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO versus_matches
		 (match_id, seed, winner, end_reason, score1, score2, lines1, lines2, sent1, sent2, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Seed, m.Winner, m.EndReason,
		m.Score1, m.Score2, m.Lines1, m.Lines2, m.Sent1, m.Sent2,
		m.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save versus match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// VersusMatchByID retrieves a match by its match ID. It returns nil when
// no such match exists.
func (s *Store) VersusMatchByID(matchID string) (*VersusMatch, error) {
	row := s.db.QueryRow(
		`SELECT `+versusColumns+`
		 FROM versus_matches
		 WHERE match_id = ?`,
		matchID,
	)
	m, err := scanVersus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query versus match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent versus matches, newest first.
func (s *Store) RecentMatches(limit int) ([]VersusMatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+versusColumns+`
		 FROM versus_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query versus matches: %w", err)
	}
	defer rows.Close()

	var results []VersusMatch
	for rows.Next() {
		m, err := scanVersus(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVersus(row scanner) (VersusMatch, error) {
	var m VersusMatch
	var durationMS int64
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.Seed,
		&m.Winner,
		&m.EndReason,
		&m.Score1,
		&m.Score2,
		&m.Lines1,
		&m.Lines2,
		&m.Sent1,
		&m.Sent2,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return m, err
	}
	m.Duration = time.Duration(durationMS) * time.Millisecond
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(result multiplayer.MatchResult) error {
	_, err := s.SaveVersusMatch(VersusMatch{
		MatchID:   string(result.MatchID),
		Seed:      result.Seed,
		Winner:    int(result.Winner),
		EndReason: result.Reason.String(),
		Score1:    result.Score1,
		Score2:    result.Score2,
		Lines1:    result.Lines1,
		Lines2:    result.Lines2,
		Sent1:     result.Sent1,
		Sent2:     result.Sent2,
		Duration:  result.Duration,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
