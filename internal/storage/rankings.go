package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Ranking is one finished game on the leaderboard.
type Ranking struct {
	ID        int64
	GameID    string
	Name      string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time
}

// SaveRanking records a finished game. An empty name is stored as
// "anonymous". Returns the ID of the inserted record.
func (s *Store) SaveRanking(gameID, name string, score, lines, level int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "anonymous"
	}
	result, err := s.db.Exec(
		"INSERT INTO rankings (game_id, name, score, lines, level) VALUES (?, ?, ?, ?, ?)",
		gameID, name, score, lines, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save ranking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRankings retrieves the best limit games for gameID, highest score
// first; earlier entries win ties. A non-positive limit means
// DefaultRankingLimit.
func (s *Store) TopRankings(gameID string, limit int) ([]Ranking, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, lines, level, created_at
		 FROM rankings
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rankings: %w", err)
	}
	defer rows.Close()

	var entries []Ranking
	for rows.Next() {
		var r Ranking
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Name, &r.Score, &r.Lines, &r.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		entries = append(entries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no rankings exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rankings WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRankings deletes all rankings for the given game.
func (s *Store) ClearRankings(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rankings WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rankings: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	BestLevel  int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM rankings WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &stats.BestLevel, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}
