package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// AccountRow represents a registered account
type AccountRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// CareerRow represents an account's lifetime stats across matches
type CareerRow struct {
	AccountID int64
	Score     int
	Kills     int
	Deaths    int
	Captures  int
	Matches   int
	Playtime  float64 // seconds
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency between game loop writers and readers
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS careers (
		account_id INTEGER PRIMARY KEY REFERENCES accounts(id),
		score INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		deaths INTEGER NOT NULL DEFAULT 0,
		captures INTEGER NOT NULL DEFAULT 0,
		matches INTEGER NOT NULL DEFAULT 0,
		playtime REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		duration REAL NOT NULL DEFAULT 0,
		winner TEXT NOT NULL DEFAULT '',
		leaderboard TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		player TEXT,
		detail TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// GetSetting returns a settings value, or "" if absent
func (db *DB) GetSetting(key string) string {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetSetting stores a settings value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// CreateAccount creates a new account and its empty career row
func (db *DB) CreateAccount(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO accounts (username, pass_hash) VALUES (?, ?)",
		username, passHash,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	_, err = db.conn.Exec("INSERT INTO careers (account_id) VALUES (?)", id)
	return id, err
}

// GetAccountByUsername returns an account, or nil when not found
func (db *DB) GetAccountByUsername(username string) (*AccountRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM accounts WHERE username = ?",
		username,
	)
	a := &AccountRow{}
	err := row.Scan(&a.ID, &a.Username, &a.PassHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// UsernameExists checks if a username is taken
func (db *DB) UsernameExists(username string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM accounts WHERE username = ?", username).Scan(&count)
	return count > 0, err
}

// GetCareer returns an account's lifetime stats
func (db *DB) GetCareer(accountID int64) (*CareerRow, error) {
	row := db.conn.QueryRow(
		"SELECT account_id, score, kills, deaths, captures, matches, playtime FROM careers WHERE account_id = ?",
		accountID,
	)
	c := &CareerRow{}
	err := row.Scan(&c.AccountID, &c.Score, &c.Kills, &c.Deaths, &c.Captures, &c.Matches, &c.Playtime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// bumpCareer adds one match's results to an account's lifetime stats
func (db *DB) bumpCareer(accountID int64, row LeaderboardRow, duration float64) error {
	_, err := db.conn.Exec(`
		UPDATE careers SET
			score = score + ?,
			kills = kills + ?,
			deaths = deaths + ?,
			captures = captures + ?,
			matches = matches + 1,
			playtime = playtime + ?
		WHERE account_id = ?`,
		row.Score, row.Kills, row.Deaths, row.Captures, duration, accountID,
	)
	return err
}

// RecordMatch persists a finished match and bumps the career stats of every
// authenticated participant. Satisfies MatchRecorder; runs off the tick path.
func (db *DB) RecordMatch(duration float64, rows []LeaderboardRow, authIDs map[string]int64) {
	winner := ""
	if len(rows) > 0 {
		winner = rows[0].Name
	}
	lb, _ := json.Marshal(rows)
	if _, err := db.conn.Exec(
		"INSERT INTO matches (duration, winner, leaderboard) VALUES (?, ?, ?)",
		duration, winner, string(lb),
	); err != nil {
		log.Printf("record match: %v", err)
		return
	}
	for _, row := range rows {
		accountID := authIDs[row.PlayerID]
		if accountID == 0 {
			continue
		}
		if err := db.bumpCareer(accountID, row, duration); err != nil {
			log.Printf("bump career %d: %v", accountID, err)
		}
	}
}

// RecentMatches returns the most recent finished matches
func (db *DB) RecentMatches(limit int) ([]string, error) {
	rows, err := db.conn.Query(
		"SELECT leaderboard FROM matches ORDER BY created_at DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var lb string
		if err := rows.Scan(&lb); err != nil {
			return nil, err
		}
		result = append(result, lb)
	}
	return result, rows.Err()
}
