// Command shiftlens computes one downtime/OEE report from a record snapshot
// file and prints it as JSON on stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shiftlens/shiftlens/internal/config"
	"github.com/shiftlens/shiftlens/internal/metrics"
	"github.com/shiftlens/shiftlens/internal/report"
	"github.com/shiftlens/shiftlens/internal/source"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	recordsPath := flag.String("records", "", "YAML or JSON record snapshot (required)")
	from := flag.String("from", "", "first shift date, YYYY-MM-DD")
	to := flag.String("to", "", "last shift date, YYYY-MM-DD")
	line := flag.String("line", "", "line id or name")
	shift := flag.String("shift", "", "shift instance id, work shift id or work shift name")
	product := flag.String("product", "", "product id")
	section := flag.String("section", "report", "report|oee|kpi|pareto|priorities|trend|dimensions|rollup")
	textfile := flag.String("metrics-textfile", "", "also write Prometheus metrics to this file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// stdout carries the report; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *recordsPath, *section, *textfile, source.Filter{
		From: *from, To: *to, Line: *line, Shift: *shift, Product: *product,
	}); err != nil {
		slog.Error("shiftlens failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, recordsPath, section, textfile string, f source.Filter) error {
	if recordsPath == "" {
		return fmt.Errorf("-records is required")
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	snap, err := source.Load(recordsPath)
	if err != nil {
		return err
	}

	start := time.Now()
	rep := report.Build(source.Apply(snap, f), cfg.Policy.Report(), report.Options{ProductID: f.Product})
	elapsed := time.Since(start)
	slog.Info("report built",
		"id", rep.ID,
		"shifts", len(rep.Shifts),
		"events", rep.EventCount,
		"orphans", len(rep.Orphans),
		"elapsed", elapsed,
	)

	out, err := pick(rep, section)
	if err != nil {
		return err
	}

	if textfile != "" {
		reg := metrics.NewRegistry()
		reg.Observe(rep, elapsed)
		if err := reg.WriteTextfile(textfile); err != nil {
			return err
		}
		slog.Info("metrics written", "path", textfile)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// pick selects the part of rep named by section.
func pick(rep *report.Report, section string) (interface{}, error) {
	switch section {
	case "report", "":
		return rep, nil
	case "oee":
		return rep.Shifts, nil
	case "kpi":
		return rep.KPI, nil
	case "pareto":
		return rep.Pareto, nil
	case "priorities":
		return map[string]interface{}{"items": rep.Priorities, "insights": rep.Insights}, nil
	case "trend":
		return rep.Trend, nil
	case "dimensions":
		return map[string]interface{}{"by_natureza": rep.ByNatureza, "by_line": rep.ByLine}, nil
	case "rollup":
		return rep.Rollup, nil
	default:
		return nil, fmt.Errorf("unknown section %q", section)
	}
}
