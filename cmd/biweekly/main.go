package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/planningdata/biweekly"
)

func main() {
	cmd := &cli.Command{
		Name:  "biweekly",
		Usage: "Download LA City Planning biweekly case reports and convert them to CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Report kind: CD (council district) or CNC (neighborhood council)",
				Value: string(biweekly.KindDistrict),
			},
			&cli.IntFlag{
				Name:  "start-year",
				Usage: "First year of reports to fetch (default: from config)",
			},
			&cli.IntFlag{
				Name:  "end-year",
				Usage: "Last year of reports to fetch (default: current year)",
			},
			&cli.IntFlag{
				Name:  "start-month",
				Usage: "First month to keep (1-12, inclusive)",
			},
			&cli.IntFlag{
				Name:  "end-month",
				Usage: "Last month to keep (1-12, inclusive)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Planning site base URL (default: from config)",
			},
			&cli.StringFlag{
				Name:  "download-dir",
				Usage: "Directory for downloaded PDFs (default: from config)",
			},
			&cli.StringFlag{
				Name:  "csv-dir",
				Usage: "Directory for CSV output (default: from config)",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Convert a single local PDF instead of running the batch",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output CSV path for --input mode (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := biweekly.LoadConfig()
	if v := cmd.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v := cmd.String("download-dir"); v != "" {
		cfg.DownloadDir = v
	}
	if v := cmd.String("csv-dir"); v != "" {
		cfg.CSVDir = v
	}

	kind := biweekly.ReportKind(cmd.String("kind"))
	if kind != biweekly.KindDistrict && kind != biweekly.KindCouncil {
		return fmt.Errorf("unknown report kind %q", cmd.String("kind"))
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	extractor := biweekly.NewExtractor(instance)

	if input := cmd.String("input"); input != "" {
		return convertFile(extractor, kind, input, cmd.String("output"), logger)
	}

	dates := biweekly.DateRange{
		StartYear:  int(cmd.Int("start-year")),
		EndYear:    int(cmd.Int("end-year")),
		StartMonth: time.Month(cmd.Int("start-month")),
		EndMonth:   time.Month(cmd.Int("end-month")),
	}

	runner := biweekly.NewRunner(
		biweekly.NewClient(cfg.BaseURL, nil),
		biweekly.NewDownloader(nil),
		extractor,
		cfg,
		kind,
		dates,
		logger,
	)

	combined, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Combined CSV written to %s\n", combined)
	return nil
}

// convertFile converts one already-downloaded PDF without touching the
// network.
func convertFile(extractor *biweekly.Extractor, kind biweekly.ReportKind, input, output string, logger *slog.Logger) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	pages, err := extractor.ExtractDocument(data)
	if err != nil {
		return err
	}

	walker := biweekly.NewWalker(kind, "", logger)
	for _, tables := range pages {
		walker.WalkPage(tables)
	}
	records := walker.Records()
	logger.Info("converted file", "input", input, "records", len(records))

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}
	return biweekly.WriteRecords(out, records)
}
