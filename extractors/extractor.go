package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// Staged wide tables produced by the upstream union step. Each row carries
// every ingested field for one subject plus the lineage columns.
const (
	customersStagedTable    = "customers_staged"
	accountsStagedTable     = "accounts_staged"
	transactionsStagedTable = "transactions_staged"
)

// Extractor reads the staged wide datasets out of the staging database.
// The upstream collector has already reconciled the per-period column
// differences (early transaction feeds lacking ewallet/loan-type columns
// arrive as NULL), so each table presents one fixed column set.
type Extractor struct {
	db       *sql.DB
	logger   *utils.ETLLogger
	archiver *Archiver
}

// NewExtractor creates a new Extractor. archiver may be nil to disable
// batch snapshots.
func NewExtractor(db *sql.DB, logger *utils.ETLLogger, archiver *Archiver) *Extractor {
	return &Extractor{
		db:       db,
		logger:   logger,
		archiver: archiver,
	}
}

// ExtractCustomers reads the staged customer dataset.
func (e *Extractor) ExtractCustomers() ([]models.Record, error) {
	return e.extractTable(customersStagedTable)
}

// ExtractAccounts reads the staged account dataset.
func (e *Extractor) ExtractAccounts() ([]models.Record, error) {
	return e.extractTable(accountsStagedTable)
}

// ExtractTransactions reads the staged transaction dataset.
func (e *Extractor) ExtractTransactions() ([]models.Record, error) {
	return e.extractTable(transactionsStagedTable)
}

// extractTable reads every row of one staged table into wide records,
// column set taken from the table itself.
func (e *Extractor) extractTable(table string) ([]models.Record, error) {
	startTime := time.Now()

	rows, err := e.db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	var records []models.Record
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}

		record := make(models.Record, len(columns))
		for i, column := range columns {
			record[column] = driverValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}

	e.logger.Debug("Extracted %d rows from %s (%v)", len(records), table, time.Since(startTime))

	if e.archiver != nil {
		if err := e.archiver.ArchiveBatch(table, records); err != nil {
			// Archiving is audit support, not part of the data contract.
			e.logger.Error("archiving %s batch: %v", table, err)
		}
	}

	return records, nil
}

// driverValue converts driver byte slices to strings so records hold
// comparable values.
func driverValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
