package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"termsheet-reconciler/core/config"
	"termsheet-reconciler/core/database"
	"termsheet-reconciler/core/logger"
	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/storage"
	"termsheet-reconciler/feature/booking"
	"termsheet-reconciler/feature/report"
	"termsheet-reconciler/feature/termsheet"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	termSheetPath string
	bookingPath   string
	outputDir     string
	mappingsPath  string
	reportName    string
	useDB         bool
	remoteFiles   bool
	uploadReports bool
)

// reconcileCmd runs the full pipeline: extract the term sheet, load booking
// records, reconcile, and render reports.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a term sheet against booking records",
	Long: `Reconcile a term sheet document against booking records and write
CSV and Markdown reports.

The term sheet may be a PDF (extracted through the configured LLM) or an
already-structured JSON file. Booking records come from a CSV or JSON file,
from the booking database (--db), or from objects in the storage bucket
(--remote).

Examples:
  # Structured term sheet against a CSV export
  termsheet-reconciler reconcile --termsheet genel.json --booking trades.csv

  # PDF term sheet against the booking database, publish reports
  termsheet-reconciler reconcile --termsheet genel.pdf --db --upload`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVarP(&termSheetPath, "termsheet", "t", "", "term sheet file (.pdf or .json)")
	reconcileCmd.Flags().StringVarP(&bookingPath, "booking", "b", "", "booking records file (.csv or .json)")
	reconcileCmd.Flags().StringVarP(&outputDir, "output", "o", "", "report output directory (default from config)")
	reconcileCmd.Flags().StringVarP(&mappingsPath, "mappings", "m", "", "field mappings YAML file (default from config)")
	reconcileCmd.Flags().StringVar(&reportName, "report-name", "reconciliation_report", "base name for generated reports")
	reconcileCmd.Flags().BoolVar(&useDB, "db", false, "load booking records from the booking database")
	reconcileCmd.Flags().BoolVar(&remoteFiles, "remote", false, "treat file paths as object names in the storage bucket")
	reconcileCmd.Flags().BoolVar(&uploadReports, "upload", false, "publish generated reports to the storage bucket")
	_ = reconcileCmd.MarkFlagRequired("termsheet")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logg.Sync()

	reconCfg, err := buildReconConfig(cfg)
	if err != nil {
		return err
	}

	if !useDB && bookingPath == "" {
		return fmt.Errorf("either --booking or --db is required")
	}

	ctx := cmd.Context()

	var store storage.Client
	if remoteFiles || uploadReports {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("create storage client: %w", err)
		}
	}

	ts, err := loadTermSheet(ctx, cfg, store, logg)
	if err != nil {
		return err
	}

	records, err := loadBookingRecords(ctx, cfg, store, logg)
	if err != nil {
		return err
	}
	logg.Info("Loaded booking records", zap.Int("count", len(records)))

	summary := booking.Summarize(records, reconCfg)
	logg.Info("Booking record summary",
		zap.Int("with_trade_id", summary.WithTradeID),
		zap.Int("unique_isins", summary.UniqueISINs),
		zap.Int("unique_issuers", summary.UniqueIssuers),
		zap.Strings("currencies", summary.Currencies),
	)

	engine := reconcile.NewEngine(reconCfg, logg)
	results := engine.Reconcile(ts, records)

	dir := outputDir
	if dir == "" {
		dir = cfg.Recon.OutputDir
	}
	gen, err := report.NewGenerator(dir, logg)
	if err != nil {
		return err
	}

	csvPath, err := gen.WriteCSV(results, reportName)
	if err != nil {
		return err
	}
	mdPath, err := gen.WriteMarkdown(results, termSheetPath, bookingLabel(), reportName)
	if err != nil {
		return err
	}

	report.PrintSummary(os.Stdout, results)

	if uploadReports {
		objects, err := gen.Publish(ctx, store, cfg.Storage.Bucket, []string{csvPath, mdPath})
		if err != nil {
			return err
		}
		logg.Info("Published reports", zap.Strings("objects", objects))
	}

	return nil
}

// buildReconConfig layers environment tolerances and the optional mappings
// file over the built-in defaults.
func buildReconConfig(cfg *config.Config) (reconcile.Config, error) {
	reconCfg := reconcile.DefaultConfig()
	reconCfg.NumericTolerance = cfg.Recon.NumericTolerance
	reconCfg.DateToleranceDays = cfg.Recon.DateToleranceDays

	path := mappingsPath
	if path == "" {
		path = cfg.Recon.MappingsFile
	}
	if path != "" {
		merged, err := config.LoadMappings(path, reconCfg)
		if err != nil {
			return reconCfg, fmt.Errorf("load mappings: %w", err)
		}
		reconCfg = merged
	}
	return reconCfg, nil
}

func loadTermSheet(ctx context.Context, cfg *config.Config, store storage.Client, logg *zap.Logger) (*reconcile.TermSheet, error) {
	ext := strings.ToLower(filepath.Ext(termSheetPath))

	switch ext {
	case ".json":
		if remoteFiles {
			return termsheet.LoadJSONObject(ctx, store, cfg.Storage.Bucket, termSheetPath)
		}
		return termsheet.LoadJSON(termSheetPath)

	case ".pdf":
		var text string
		var err error
		if remoteFiles {
			text, err = termsheet.ExtractObjectText(ctx, store, cfg.Storage.Bucket, termSheetPath)
		} else {
			text, err = termsheet.ExtractText(termSheetPath)
		}
		if err != nil {
			return nil, err
		}
		logg.Info("Extracted document text", zap.Int("chars", len(text)))

		if cfg.OpenAI.ApiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for PDF term sheets")
		}

		extractor := termsheet.NewExtractor(
			openai.NewClient(cfg.OpenAI.ApiKey),
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			logg,
		)

		callCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
		defer cancel()

		ts, err := extractor.Extract(callCtx, text, filepath.Base(termSheetPath))
		if err != nil {
			return nil, err
		}

		confidence := termsheet.ValidateExtraction(ts, text)
		logg.Info("Extraction confidence", zap.Float64("confidence", confidence))
		return ts, nil

	default:
		return nil, fmt.Errorf("unsupported term sheet format %q", ext)
	}
}

func loadBookingRecords(ctx context.Context, cfg *config.Config, store storage.Client, logg *zap.Logger) ([]reconcile.BookingRecord, error) {
	if useDB {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect booking database: %w", err)
		}
		return booking.LoadTable(db, cfg.Recon.BookingTable, logg)
	}

	if remoteFiles {
		return booking.LoadObject(ctx, store, cfg.Storage.Bucket, bookingPath)
	}

	switch strings.ToLower(filepath.Ext(bookingPath)) {
	case ".csv":
		return booking.LoadCSV(bookingPath)
	case ".json":
		return booking.LoadJSON(bookingPath)
	default:
		return nil, fmt.Errorf("unsupported booking format %q", filepath.Ext(bookingPath))
	}
}

func bookingLabel() string {
	if useDB {
		return "booking database"
	}
	return bookingPath
}
