package masteryls

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents a question bank database connection
type DB struct {
	db *sql.DB
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			key TEXT PRIMARY KEY,
			id TEXT,
			title TEXT,
			type TEXT NOT NULL,
			body TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			position INTEGER NOT NULL,
			saved_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS options (
			question_key TEXT NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct INTEGER NOT NULL,
			PRIMARY KEY (question_key, position),
			FOREIGN KEY (question_key) REFERENCES questions(key)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveBank replaces the stored bank with the given one, keeping insertion
// order in the position column
func (db *DB) SaveBank(bank *Bank, report *Report) error {
	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"options", "questions", "diagnostics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now()
	for pos, q := range bank.Questions() {
		_, err := tx.Exec(
			"INSERT INTO questions (key, id, title, type, body, file, line, position, saved_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			q.Key(), q.ID, q.Title, string(q.Type), q.Body, q.File, q.Line, pos, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %s: %w", q.Key(), err)
		}

		for i, opt := range q.Options {
			_, err := tx.Exec(
				"INSERT INTO options (question_key, position, text, correct) VALUES (?, ?, ?, ?)",
				q.Key(), i, opt.Text, opt.Correct,
			)
			if err != nil {
				return fmt.Errorf("failed to insert option %d of %s: %w", i, q.Key(), err)
			}
		}
	}

	if report != nil {
		for _, d := range report.Diagnostics {
			_, err := tx.Exec(
				"INSERT INTO diagnostics (file, line, kind, message, count) VALUES (?, ?, ?, ?, ?)",
				d.File, d.Line, string(d.Kind), d.Message, d.Count,
			)
			if err != nil {
				return fmt.Errorf("failed to insert diagnostic: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bank: %w", err)
	}
	return nil
}

// LoadBank rebuilds a Bank from the database in stored order
func (db *DB) LoadBank() (*Bank, error) {
	rows, err := db.db.Query(
		"SELECT key, id, title, type, body, file, line, position FROM questions ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	defer rows.Close()

	bank := NewBank()
	for rows.Next() {
		var (
			q        QuestionBlock
			key      string
			typeTag  string
			position int
		)
		if err := rows.Scan(&key, &q.ID, &q.Title, &typeTag, &q.Body, &q.File, &q.Line, &position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Type = QuestionType(typeTag)
		q.Ordinal = position

		q.Options, err = db.loadOptions(key)
		if err != nil {
			return nil, err
		}

		if diag := bank.Add(&q); diag != nil {
			return nil, fmt.Errorf("stored bank has duplicate key %s", key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return bank, nil
}

// GetQuestion retrieves a single question by bank key
func (db *DB) GetQuestion(key string) (*QuestionBlock, error) {
	var (
		q       QuestionBlock
		typeTag string
	)
	err := db.db.QueryRow(
		"SELECT id, title, type, body, file, line, position FROM questions WHERE key = ?", key,
	).Scan(&q.ID, &q.Title, &typeTag, &q.Body, &q.File, &q.Line, &q.Ordinal)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("question not found: %s", key)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	q.Type = QuestionType(typeTag)

	q.Options, err = db.loadOptions(key)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// LoadDiagnostics retrieves the stored diagnostics report
func (db *DB) LoadDiagnostics() (*Report, error) {
	rows, err := db.db.Query("SELECT file, line, kind, message, count FROM diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to load diagnostics: %w", err)
	}
	defer rows.Close()

	report := &Report{}
	for rows.Next() {
		var (
			d    Diagnostic
			kind string
		)
		if err := rows.Scan(&d.File, &d.Line, &kind, &d.Message, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		d.Kind = DiagnosticKind(kind)
		report.Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnostics: %w", err)
	}

	report.Sort()
	return report, nil
}

func (db *DB) loadOptions(key string) ([]Option, error) {
	rows, err := db.db.Query(
		"SELECT text, correct FROM options WHERE question_key = ? ORDER BY position", key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load options for %s: %w", key, err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var opt Option
		if err := rows.Scan(&opt.Text, &opt.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
