// Command scheduler is the CLI surface spec.md §6 summarizes: read a
// catalog JSON file, run the driver, write a workbook, exit 0 on
// success and nonzero on any error.
package main

import (
	"flag"
	"fmt"
	"os"

	"coursesched/internal/catalog"
	"coursesched/internal/config"
	"coursesched/internal/driver"
	"coursesched/internal/obslog"
	"coursesched/internal/workbook"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		catalogPath = flag.String("catalog", "", "path to a catalog JSON file")
		programs    = flag.String("programs", "", "comma-separated declared program names")
		incomingArg = flag.String("incoming", "", "comma-separated incoming course codes")
		outPath     = flag.String("out", "schedule.xlsx", "output workbook path")
		envFile     = flag.String("env", ".env", "optional .env file to preload")
		dev         = flag.Bool("dev", false, "use development (console) logging")
	)
	flag.Parse()

	log, err := obslog.New(*dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scheduler: logger init:", err)
		return 1
	}
	defer log.Sync()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error("config load failed", zap.Error(err))
		return 1
	}

	if *catalogPath == "" {
		log.Error("missing required -catalog flag")
		return 1
	}
	cat, err := catalog.LoadJSONFile(*catalogPath)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		return 1
	}

	programNames := splitNonEmpty(*programs)
	incomingCodes, err := parseIncoming(*incomingArg)
	if err != nil {
		log.Error("incoming parse failed", zap.Error(err))
		return 1
	}

	out, err := driver.GenerateSchedule(cat, programNames, incomingCodes, driver.Limits{
		MaxCreditsPerSemester: cfg.MaxCreditsPerSemester,
		TimeLimitSeconds:      cfg.SolverTimeLimitSecs,
	}, log)
	if err != nil {
		log.Error("schedule generation failed", zap.Error(err))
		return 1
	}

	if err := workbook.Write(*outPath, out.Schedule); err != nil {
		log.Error("workbook write failed", zap.Error(err))
		return 1
	}

	log.Info("schedule written", zap.String("path", *outPath), zap.Int64("total_credits", out.TotalCredits))
	return 0
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func parseIncoming(s string) (catalog.Semester, error) {
	var out catalog.Semester
	for _, raw := range splitNonEmpty(s) {
		code, err := catalog.ParseCourseCode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}
