package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/repositories/history/migrations"
)

const migrationTable = "schema_migrations"

// sqliteParams use the modernc driver's syntax; each _pragma runs on every new
// connection. _txlock=immediate takes the write lock at BEGIN so concurrent
// appends queue on busy_timeout instead of failing on lock upgrade.
const sqliteParams = "?_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=foreign_keys(ON)" +
	"&_txlock=immediate"

// SQLiteStore keeps history records in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

var _ Repository = (*SQLiteStore)(nil)

// OpenSQLite opens a SQLite history store and applies embedded migrations
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}
	dsn := filepath.Clean(path) + sqliteParams
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Record.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal record data")
	}
	points, err := json.Marshal(input.Record.CalculationPoints)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal record points")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin history transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var number int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM history_records WHERE user_id = ? AND character_id = ?`,
		input.UserID, input.CharacterID,
	).Scan(&number)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate history number")
	}

	record := *input.Record
	record.Number = number
	_, err = tx.ExecContext(ctx,
		`INSERT INTO history_records (
		   user_id, character_id, number, id, type, name, timestamp,
		   data, calculation_points, learning_method, comment
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.UserID,
		input.CharacterID,
		record.Number,
		record.ID,
		string(record.Type),
		record.Name,
		record.Timestamp,
		string(data),
		string(points),
		string(record.LearningMethod),
		record.Comment,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to append history record")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit history record")
	}

	slog.DebugContext(ctx, "appended history record",
		"user_id", input.UserID,
		"character_id", input.CharacterID,
		"number", number,
		"type", record.Type)

	return &AppendOutput{Record: &record}, nil
}

func (s *SQLiteStore) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}
	limit := limitOrDefault(input.Limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT number, id, type, name, timestamp, data, calculation_points, learning_method, comment
		 FROM history_records
		 WHERE user_id = ? AND character_id = ? AND number > ?
		 ORDER BY number
		 LIMIT ?`,
		input.UserID, input.CharacterID, input.AfterNumber, limit+1,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}
	defer func() { _ = rows.Close() }()

	output := &ListOutput{}
	for rows.Next() {
		var (
			record         sheet.HistoryRecord
			recordType     string
			learningMethod string
			data           string
			points         string
		)
		if err := rows.Scan(
			&record.Number,
			&record.ID,
			&recordType,
			&record.Name,
			&record.Timestamp,
			&data,
			&points,
			&learningMethod,
			&record.Comment,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan history record")
		}
		record.Type = sheet.HistoryRecordType(recordType)
		record.LearningMethod = sheet.LearningMethod(learningMethod)
		if err := json.Unmarshal([]byte(data), &record.Data); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal record data")
		}
		if err := json.Unmarshal([]byte(points), &record.CalculationPoints); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal record points")
		}
		output.Records = append(output.Records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate history")
	}

	if len(output.Records) > limit {
		output.HasMore = true
		output.Records = output.Records[:limit]
	}
	return output, nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM history_records WHERE user_id = ? AND character_id = ?`,
		input.UserID, input.CharacterID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete history")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count deleted history")
	}
	return &DeleteAllOutput{Deleted: deleted}, nil
}

// applyMigrations runs each embedded .sql file at most once, in name order
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return errors.Wrap(err, "ensure migration table")
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return errors.Wrap(err, "read migrations dir")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		var found int
		err := db.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return errors.Wrapf(err, "check migration %s", file)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return errors.Wrapf(err, "read migration %s", file)
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrapf(err, "begin migration %s", file)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "exec migration %s", file)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "record migration %s", file)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit migration %s", file)
		}
	}
	return nil
}

// upMigration returns the SQL between the Up and Down markers
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	if i := strings.Index(content, up); i >= 0 {
		content = content[i+len(up):]
	}
	if i := strings.Index(content, down); i >= 0 {
		content = content[:i]
	}
	return content
}
