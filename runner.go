package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/cleanse"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/config"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/extractors"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/load"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/status"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/transform"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// stageResult captures one stage's advisory progress output.
type stageResult struct {
	Stage    string
	Rows     int
	Duration time.Duration
}

// PipelineRunner wires the pipeline together and executes the fixed stage
// sequence. Each stage takes the previous stage's output as an explicit
// argument; no stage communicates through shared staging tables.
type PipelineRunner struct {
	config               *config.PipelineConfig
	dbConnections        *config.DBConnections
	logger               *utils.ETLLogger
	extractor            *extractors.Extractor
	customerCleanser     *cleanse.CustomerCleanser
	accountCleanser      *cleanse.AccountCleanser
	transactionCleanser  *cleanse.TransactionCleanser
	expander             *cleanse.Expander
	customerProjector    *transform.CustomerProjector
	accountProjector     *transform.AccountProjector
	transactionProjector *transform.TransactionProjector
	loadManager          *load.LoadManager
	runLogRepo           models.RunLogRepository
	hub                  *status.Hub
}

// NewPipelineRunner builds a runner from configuration.
func NewPipelineRunner(ctx context.Context, cfg *config.PipelineConfig, hub *status.Hub) (*PipelineRunner, error) {
	logger := utils.NewETLLogger(cfg.EnableDetailedLogging)
	logger.Info("Initializing pipeline runner")

	connections, err := config.ConnectDatabases(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting databases: %w", err)
	}

	runLogRepo := models.NewMySQLRunLogRepository(connections.MartDB)
	if err := runLogRepo.CreateRunLogTable(); err != nil {
		return nil, fmt.Errorf("creating run log table: %w", err)
	}

	strategy, err := cleanse.StrategyFromString(cfg.CombinationStrategy)
	if err != nil {
		return nil, err
	}

	var archiver *extractors.Archiver
	if cfg.ArchiveDir != "" {
		archiver = extractors.NewArchiver(cfg.ArchiveDir, logger)
	}

	return &PipelineRunner{
		config:               cfg,
		dbConnections:        connections,
		logger:               logger,
		extractor:            extractors.NewExtractor(connections.StagingDB, logger, archiver),
		customerCleanser:     cleanse.NewCustomerCleanser(logger),
		accountCleanser:      cleanse.NewAccountCleanser(logger),
		transactionCleanser:  cleanse.NewTransactionCleanser(logger),
		expander:             cleanse.NewExpander(strategy),
		customerProjector:    transform.NewCustomerProjector(logger),
		accountProjector:     transform.NewAccountProjector(logger),
		transactionProjector: transform.NewTransactionProjector(logger),
		loadManager:          load.NewLoadManager(connections.MartDB, logger),
		runLogRepo:           runLogRepo,
		hub:                  hub,
	}, nil
}

// Close releases the database pools.
func (r *PipelineRunner) Close() {
	r.logger.Info("Shutting down pipeline runner")
	config.CloseDatabases(r.dbConnections)
}

// Logger exposes the runner's logger for the serve-mode wiring.
func (r *PipelineRunner) Logger() *utils.ETLLogger {
	return r.logger
}

// RunLogs exposes the run journal for the status server.
func (r *PipelineRunner) RunLogs() models.RunLogRepository {
	return r.runLogRepo
}

// SetHub attaches the progress hub. Call before the first Execute.
func (r *PipelineRunner) SetHub(hub *status.Hub) {
	r.hub = hub
}

// Execute runs one full batch: extract, cleanse, expand, project, load.
func (r *PipelineRunner) Execute() error {
	runID := uuid.NewString()
	startTime := time.Now()
	r.logger.Info("Pipeline run %s started", runID)

	logID, err := r.runLogRepo.CreateLogEntry(runID, startTime)
	if err != nil {
		return fmt.Errorf("creating run log entry: %w", err)
	}

	results, counts, err := r.runStages(runID)
	if err != nil {
		r.logger.Error("Pipeline run %s failed: %v", runID, err)
		if logErr := r.runLogRepo.UpdateLogEntryFailure(logID, time.Now(), err.Error()); logErr != nil {
			r.logger.Error("updating run log: %v", logErr)
		}
		r.publish(runID, "pipeline", 0, "failed")
		return err
	}

	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(),
		counts.customers, counts.accounts, counts.transactions); err != nil {
		r.logger.Error("updating run log: %v", err)
	}

	r.renderSummary(runID, results)
	r.logger.LogRunComplete(startTime, counts.customers, counts.accounts, counts.transactions)
	r.publish(runID, "pipeline", counts.customers+counts.accounts+counts.transactions, "success")
	return nil
}

type runCounts struct {
	customers    int
	accounts     int
	transactions int
}

// runStages executes the fixed stage order and collects per-stage results.
func (r *PipelineRunner) runStages(runID string) ([]stageResult, runCounts, error) {
	var results []stageResult
	var counts runCounts

	begin := func(stage string) time.Time {
		r.logger.LogStageStart(stage)
		return time.Now()
	}
	record := func(stage string, rows int, startTime time.Time) {
		results = append(results, stageResult{Stage: stage, Rows: rows, Duration: time.Since(startTime)})
		r.publish(runID, stage, rows, "success")
	}

	// Extract staged wide datasets.
	stageStart := begin("extract")
	stagedCustomers, err := r.extractor.ExtractCustomers()
	if err != nil {
		return nil, counts, fmt.Errorf("extracting customers: %w", err)
	}
	stagedAccounts, err := r.extractor.ExtractAccounts()
	if err != nil {
		return nil, counts, fmt.Errorf("extracting accounts: %w", err)
	}
	stagedTransactions, err := r.extractor.ExtractTransactions()
	if err != nil {
		return nil, counts, fmt.Errorf("extracting transactions: %w", err)
	}
	record("extract", len(stagedCustomers)+len(stagedAccounts)+len(stagedTransactions), stageStart)

	// Cleanse in dependency order.
	stageStart = begin("cleanse-customers")
	cleanedCustomers := r.customerCleanser.Cleanse(stagedCustomers)
	record("cleanse-customers", len(cleanedCustomers), stageStart)

	stageStart = begin("cleanse-accounts")
	cleanedAccounts := r.accountCleanser.Cleanse(stagedAccounts, cleanedCustomers)
	record("cleanse-accounts", len(cleanedAccounts), stageStart)

	stageStart = begin("cleanse-transactions")
	cleanedTransactions := r.transactionCleanser.Cleanse(stagedTransactions, cleanedAccounts)
	record("cleanse-transactions", len(cleanedTransactions), stageStart)

	// Provision the output contract before any load.
	stageStart = begin("create-normalized-schema")
	if err := r.loadManager.EnsureSchema(); err != nil {
		return nil, counts, fmt.Errorf("creating normalized schema: %w", err)
	}
	record("create-normalized-schema", 0, stageStart)

	// Project and load, one subject area at a time.
	stageStart = begin("load-customers")
	customerSet := r.customerProjector.Project(cleanedCustomers)
	counts.customers, err = r.loadManager.LoadCustomers(customerSet)
	if err != nil {
		return nil, counts, fmt.Errorf("loading customers: %w", err)
	}
	record("load-customers", counts.customers, stageStart)

	stageStart = begin("load-accounts")
	expandedAccounts := r.expander.Expand(cleanedAccounts)
	accountSet := r.accountProjector.Project(expandedAccounts)
	counts.accounts, err = r.loadManager.LoadAccounts(accountSet)
	if err != nil {
		return nil, counts, fmt.Errorf("loading accounts: %w", err)
	}
	record("load-accounts", counts.accounts, stageStart)

	stageStart = begin("load-transactions")
	transactionFacts := r.transactionProjector.Project(cleanedTransactions)
	counts.transactions, err = r.loadManager.LoadTransactions(transactionFacts)
	if err != nil {
		return nil, counts, fmt.Errorf("loading transactions: %w", err)
	}
	record("load-transactions", counts.transactions, stageStart)

	return results, counts, nil
}

// renderSummary prints the per-stage row counts as a table.
func (r *PipelineRunner) renderSummary(runID string, results []stageResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Pipeline run %s", runID)
	t.AppendHeader(table.Row{"Stage", "Rows", "Duration"})
	for _, result := range results {
		t.AppendRow(table.Row{result.Stage, result.Rows, result.Duration.Round(time.Millisecond)})
	}
	t.Render()
}

func (r *PipelineRunner) publish(runID, stage string, rows int, state string) {
	r.hub.Publish(status.StageEvent{
		RunID:     runID,
		Stage:     stage,
		Rows:      rows,
		Status:    state,
		Timestamp: time.Now(),
	})
}

// StartScheduler runs the pipeline on the configured interval until the
// context is cancelled.
func (r *PipelineRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Starting pipeline scheduler with interval %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Scheduled pipeline run starting")
		if err := r.Execute(); err != nil {
			r.logger.Error("Scheduled pipeline run failed: %v", err)
		}
	})
	if err != nil {
		r.logger.Error("Configuring scheduler: %v", err)
		return
	}

	scheduler.StartAsync()

	<-ctx.Done()

	scheduler.Stop()
	r.logger.Info("Pipeline scheduler stopped")
}
