package profile

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS player_profiles (
	player_id        INTEGER PRIMARY KEY,
	skill            REAL NOT NULL,
	assistance       REAL NOT NULL,
	learning_rate    REAL NOT NULL,
	adaptation_speed REAL NOT NULL,
	play_style       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tuning_log (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id      TEXT NOT NULL,
	tick            INTEGER NOT NULL,
	player_id       INTEGER NOT NULL,
	gesture         TEXT NOT NULL,
	intensity       REAL NOT NULL,
	confidence      REAL NOT NULL,
	source          TEXT NOT NULL,
	difficulty_adj  REAL NOT NULL,
	difficulty_after REAL NOT NULL,
	created_at      TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// Store persists player profiles and the tuning log in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// Open opens (creating if needed) the bridge database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region load

// Load returns one profile per player slot. Slots without a persisted row
// get the startup defaults.
func (s *Store) Load(players int) ([]Profile, error) {
	out := make([]Profile, players)
	for i := range out {
		out[i] = New(i)
	}

	rows, err := s.db.Query(
		`SELECT player_id, skill, assistance, learning_rate, adaptation_speed, play_style
		 FROM player_profiles WHERE player_id < ?`, players,
	)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Skill, &p.Assistance, &p.LearningRate,
			&p.AdaptationSpeed, &p.PlayStyle); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if p.ID >= 0 && p.ID < players {
			out[p.ID] = p
		}
	}
	return out, rows.Err()
}

// #endregion load

// #region save

// Save upserts one profile. The connection flag is intentionally not stored.
func (s *Store) Save(p Profile) error {
	_, err := s.db.Exec(
		`INSERT INTO player_profiles (player_id, skill, assistance, learning_rate, adaptation_speed, play_style, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   skill = excluded.skill,
		   assistance = excluded.assistance,
		   learning_rate = excluded.learning_rate,
		   adaptation_speed = excluded.adaptation_speed,
		   play_style = excluded.play_style,
		   updated_at = excluded.updated_at`,
		p.ID, p.Skill, p.Assistance, p.LearningRate, p.AdaptationSpeed, p.PlayStyle,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save profile %d: %w", p.ID, err)
	}
	return nil
}

// #endregion save
