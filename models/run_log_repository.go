package models

import (
	"database/sql"
	"fmt"
	"time"
)

// PipelineRunLog is one row of the pipeline run journal.
type PipelineRunLog struct {
	ID                    int
	RunID                 string
	StartTime             time.Time
	EndTime               time.Time
	Status                string // in_progress, success, failed
	CustomersProcessed    int
	AccountsProcessed     int
	TransactionsProcessed int
	ErrorMessage          string
	ExecutionTimeSeconds  float64
}

// RunLogRepository persists the pipeline run journal.
type RunLogRepository interface {
	CreateRunLogTable() error
	CreateLogEntry(runID string, startTime time.Time) (int, error)
	UpdateLogEntrySuccess(id int, endTime time.Time, customers, accounts, transactions int) error
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error
	GetLastSuccessfulRun() (*PipelineRunLog, error)
	GetRecentRuns(limit int) ([]PipelineRunLog, error)
}

// MySQLRunLogRepository implements RunLogRepository on the mart database.
type MySQLRunLogRepository struct {
	db *sql.DB
}

// NewMySQLRunLogRepository creates a new MySQLRunLogRepository.
func NewMySQLRunLogRepository(db *sql.DB) *MySQLRunLogRepository {
	return &MySQLRunLogRepository{db: db}
}

// CreateRunLogTable creates the run journal table if it does not exist.
func (r *MySQLRunLogRepository) CreateRunLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS pipeline_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		customers_processed INT DEFAULT 0,
		accounts_processed INT DEFAULT 0,
		transactions_processed INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("creating pipeline_run_log table: %w", err)
	}

	return nil
}

// CreateLogEntry opens a new in-progress journal row for a run.
func (r *MySQLRunLogRepository) CreateLogEntry(runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO pipeline_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("creating run log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run log entry id: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess closes a journal row after a successful run.
func (r *MySQLRunLogRepository) UpdateLogEntrySuccess(
	id int,
	endTime time.Time,
	customers, accounts, transactions int) error {

	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pipeline_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("reading run start time: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE pipeline_run_log
	SET
		end_time = ?,
		status = 'success',
		customers_processed = ?,
		accounts_processed = ?,
		transactions_processed = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, customers, accounts, transactions, executionTime, id)
	if err != nil {
		return fmt.Errorf("updating run log entry: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure closes a journal row after a failed run.
func (r *MySQLRunLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM pipeline_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("reading run start time: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE pipeline_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("updating run log entry: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun returns the most recent successful run, or nil when
// the pipeline has never completed.
func (r *MySQLRunLogRepository) GetLastSuccessfulRun() (*PipelineRunLog, error) {
	query := `
	SELECT
		id, run_id, start_time, end_time, status,
		customers_processed, accounts_processed, transactions_processed,
		IFNULL(error_message, ''), execution_time_seconds
	FROM pipeline_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var entry PipelineRunLog
	err := r.db.QueryRow(query).Scan(
		&entry.ID, &entry.RunID, &entry.StartTime, &entry.EndTime, &entry.Status,
		&entry.CustomersProcessed, &entry.AccountsProcessed, &entry.TransactionsProcessed,
		&entry.ErrorMessage, &entry.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last successful run: %w", err)
	}

	return &entry, nil
}

// GetRecentRuns returns the latest journal rows, newest first.
func (r *MySQLRunLogRepository) GetRecentRuns(limit int) ([]PipelineRunLog, error) {
	query := `
	SELECT
		id, run_id, start_time, IFNULL(end_time, start_time), status,
		customers_processed, accounts_processed, transactions_processed,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM pipeline_run_log
	ORDER BY start_time DESC
	LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("reading recent runs: %w", err)
	}
	defer rows.Close()

	var entries []PipelineRunLog
	for rows.Next() {
		var entry PipelineRunLog
		err := rows.Scan(
			&entry.ID, &entry.RunID, &entry.StartTime, &entry.EndTime, &entry.Status,
			&entry.CustomersProcessed, &entry.AccountsProcessed, &entry.TransactionsProcessed,
			&entry.ErrorMessage, &entry.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run log row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run log rows: %w", err)
	}

	return entries, nil
}
