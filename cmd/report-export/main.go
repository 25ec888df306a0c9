// Command report-export builds a spending report for a family over a date
// range and writes it as a PDF, optionally appending the same rows to a
// shared Google Sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gharkharch/internal/backend"
	"gharkharch/internal/config"
	"gharkharch/internal/core"
	"gharkharch/internal/engine"
	"gharkharch/internal/export"
	applog "gharkharch/internal/log"
)

func main() {
	_ = godotenv.Load()

	var (
		startFlag = flag.String("start", "", "range start (YYYY-MM-DD), required")
		endFlag   = flag.String("end", "", "range end (YYYY-MM-DD), required")
		queryFlag = flag.String("query", "", "filter expenses by item or category text")
		outFlag   = flag.String("out", "report.pdf", "output PDF path")
		titleFlag = flag.String("title", "Expense Report", "report title")
		sheetFlag = flag.Bool("sheets", false, "also append the report to the configured Google Sheet")
	)
	flag.Parse()

	logger := applog.New(applog.DefaultConfig()).WithComponent("report-export")
	applog.SetDefault(logger)

	if err := run(context.Background(), *startFlag, *endFlag, *queryFlag, *outFlag, *titleFlag, *sheetFlag, logger); err != nil {
		logger.Error("Report export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, startStr, endStr, query, outPath, title string, toSheets bool, logger *applog.Logger) error {
	if startStr == "" || endStr == "" {
		return fmt.Errorf("both -start and -end are required (format %s)", core.DateLayout)
	}
	start, err := core.ParseDate(startStr)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}
	if end.Before(start.Time) {
		return fmt.Errorf("range end %s is before start %s", endStr, startStr)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if cfg.FamilyID == "" {
		return fmt.Errorf("FAMILY_ID is required")
	}

	res, err := backend.NewFactory(logger.Logger).Create(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	expenses, err := res.Store.Expenses().List(ctx, cfg.FamilyID)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	filtered := engine.FilterByText(engine.FilterByRange(expenses, start, end), query)
	logger.Info("Building report", "family_id", cfg.FamilyID, "matched", len(filtered), "of", len(expenses))

	rep := export.BuildReport(title, time.Now(), filtered)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := export.WritePDF(rep, f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Info("Wrote PDF report", "path", outPath, "rows", len(rep.Rows), "total", rep.Total.String())

	if toSheets {
		w, err := export.NewSheetsWriterFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("sheets writer: %w", err)
		}
		if err := w.Append(ctx, rep); err != nil {
			return err
		}
		logger.Info("Appended report to Google Sheet")
	}
	return nil
}
