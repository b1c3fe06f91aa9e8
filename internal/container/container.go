// Package container provides dependency injection for the budget-tracker application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/budget-tracker/internal/batch"
	"fjacquet/budget-tracker/internal/categorizer"
	"fjacquet/budget-tracker/internal/common"
	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/filestore"
	"fjacquet/budget-tracker/internal/fileutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/receipt"
	"fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/smsparser"
	"fjacquet/budget-tracker/internal/store"
	"fjacquet/budget-tracker/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.Store
	files       filestore.Store
	configFiles *store.ConfigFiles
	parser      *smsparser.Parser
	detector    *smsparser.Detector
	categorizer *categorizer.Categorizer
	importer    *batch.Importer
	reports     *report.ReportGenerator
	scanner     *receipt.Scanner
	csv         *common.CSVHandler

	closers []io.Closer
}

// NewContainer creates and wires all application dependencies: the SQLite store at
// database.path and the receipt file store selected by receipts.backend.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	checkDatabaseFile(cfg.Database.Path, logger)

	db, err := store.OpenSQLite(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	files, err := newFileStore(ctx, cfg.Receipts, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := New(cfg, db, files, logger)
	c.closers = append(c.closers, db)
	if closer, ok := files.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}

	logger.Info("Container initialized successfully",
		logging.F("database", cfg.Database.Path),
		logging.F("receipts_backend", cfg.Receipts.Backend))
	return c, nil
}

// checkDatabaseFile warns when an existing database file is readable by everyone.
func checkDatabaseFile(path string, logger logging.Logger) {
	if path == ":memory:" || !fileutils.FileExists(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		logger.WithError(err).Warn("Database file is readable by other users", logging.F(logging.FieldFile, path))
	}
}

func newFileStore(ctx context.Context, cfg config.ReceiptsConfig, logger logging.Logger) (filestore.Store, error) {
	switch cfg.Backend {
	case config.BackendGCS:
		gcs, err := filestore.NewGCSStore(ctx, cfg.Bucket, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create receipt store: %w", err)
		}
		return gcs, nil
	case config.BackendLocal, "":
		return filestore.NewLocalStore(cfg.Directory, cfg.PublicBaseURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown receipts backend: %s", cfg.Backend)
	}
}

// New wires the domain components around an existing store and file store.
// The caller keeps ownership of st and files.
func New(cfg *config.Config, st store.Store, files filestore.Store, logger logging.Logger) *Container {
	if logger == nil {
		logger = logging.Nop()
	}

	configFiles := store.NewConfigFiles(cfg.Categories.File, cfg.Budgets.File, logger)
	cat := categorizer.NewCategorizer(configFiles, logger)
	parser := smsparser.NewParser(logger)
	detector := smsparser.NewDetector(cfg.SMS.DuplicateWindow, nil)

	delimiter := ','
	if d := []rune(cfg.CSV.Delimiter); len(d) == 1 {
		delimiter = d[0]
	}

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       st,
		files:       files,
		configFiles: configFiles,
		parser:      parser,
		detector:    detector,
		categorizer: cat,
		importer:    batch.NewImporter(parser, detector, st, cat, logger, batch.WithRecentWindow(cfg.SMS.RecentWindow)),
		reports:     report.NewReportGenerator(logger),
		scanner:     receipt.NewScanner(files, st, cat, logger),
		csv:         common.NewCSVHandler(delimiter, logger),
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the persistence store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetFileStore returns the receipt file store.
func (c *Container) GetFileStore() filestore.Store {
	return c.files
}

// GetConfigFiles returns the categories and budgets file loader.
func (c *Container) GetConfigFiles() *store.ConfigFiles {
	return c.configFiles
}

// GetParser returns the SMS parser.
func (c *Container) GetParser() *smsparser.Parser {
	return c.parser
}

// GetDetector returns the duplicate detector.
func (c *Container) GetDetector() *smsparser.Detector {
	return c.detector
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetImporter returns the batch importer.
func (c *Container) GetImporter() *batch.Importer {
	return c.importer
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetScanner returns the receipt scanner.
func (c *Container) GetScanner() *receipt.Scanner {
	return c.scanner
}

// GetCSVHandler returns the CSV reader and writer.
func (c *Container) GetCSVHandler() *common.CSVHandler {
	return c.csv
}

// Close releases the resources opened by NewContainer.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	c.logger.Debug("Container closed")
	return firstErr
}
