package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// ETLLogger writes pipeline log output to a dated log file and to stdout.
type ETLLogger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewETLLogger creates a logger for the cleansing pipeline.
// When verbose is false, Debug output is suppressed.
func NewETLLogger(verbose bool) *ETLLogger {
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("pipeline_log_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("could not open or create log file: %v", err)
	}

	infoLogger := log.New(file, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	warnLogger := log.New(file, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(file, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		warnLogger:  warnLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// Info logs an informational message.
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)
	log.Println("INFO:", msg)
}

// Warn logs an advisory warning.
func (l *ETLLogger) Warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.warnLogger.Println(msg)
	log.Println("WARN:", msg)
}

// Error logs an error message.
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)
	log.Println("ERROR:", msg)
}

// Debug logs a debug message (only in verbose mode).
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)
	log.Println("DEBUG:", msg)
}

// LogStageStart logs the start of a pipeline stage.
func (l *ETLLogger) LogStageStart(stage string) {
	l.Info("Stage %s started", stage)
}

// LogStageComplete logs the completion of a pipeline stage with its row count.
// Row counts are advisory progress output, not part of the data contract.
func (l *ETLLogger) LogStageComplete(stage string, rows int, duration time.Duration) {
	l.Info("Stage %s finished: %d rows (%v)", stage, rows, duration)
}

// LogRunComplete logs the completion of a full pipeline run.
func (l *ETLLogger) LogRunComplete(startTime time.Time, customers, accounts, transactions int) {
	duration := time.Since(startTime)
	l.Info("Pipeline run finished. Duration: %v", duration)
	l.Info("Processed: %d customers, %d accounts, %d transactions", customers, accounts, transactions)
}
