package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"grade-advisor/internal/advisor"
	"grade-advisor/internal/concurrency"
	"grade-advisor/internal/config"
	"grade-advisor/internal/domain"
	"grade-advisor/internal/ingest"
	"grade-advisor/internal/logging"
	"grade-advisor/internal/schema"
	"grade-advisor/internal/store"
)

type prediction struct {
	Course     string
	Grade      float64
	Confidence float64
	Difficulty float64
	Average    float64
	HasAverage bool
	Known      bool
}

func main() {
	cfg := config.Load()

	var (
		dataPath   = flag.String("data", cfg.DatasetPath, "raw dataset csv path")
		snapPath   = flag.String("snapshot", cfg.SnapshotPath, "load dataset from a json snapshot instead of csv")
		advisorCfg = flag.String("advisor-config", "", "yaml file with scoring weights (optional)")
		gpa        = flag.Float64("gpa", 0, "current GPA on the 4.0 scale")
		completed  = flag.String("completed", "", "completed courses, comma-separated")
		difficulty = flag.String("difficulty", "moderate", "difficulty preference: easy|moderate|challenging|very_hard")
		workers    = flag.Int("workers", 0, "max concurrent predictions (0 = default)")
	)
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	codes := flag.Args()
	if len(codes) == 0 {
		fmt.Fprintln(os.Stderr, "usage: predict [flags] COURSE [COURSE ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var ds *schema.Dataset
	if *snapPath != "" {
		rows, err := store.ReadSnapshot(*snapPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load snapshot")
		}
		ds = schema.NewDataset(rows)
	} else {
		table, err := ingest.ParseFile(*dataPath)
		if err != nil {
			log.Fatal().Err(err).Msg("ingest failed")
		}
		ds, err = schema.Normalize(table)
		if err != nil {
			log.Fatal().Err(err).Msg("normalization failed")
		}
	}

	pref, err := domain.ParseDifficultyLevel(*difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad difficulty preference")
	}
	profile := domain.NewStudentProfile("", splitList(*completed), *gpa, pref)
	if err := profile.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad profile")
	}

	weights, err := config.LoadAdvisor(*advisorCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load advisor config")
	}
	engine, err := advisor.NewEngine(weights, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}

	preds, _ := concurrency.ProcessParallel(context.Background(), codes,
		concurrency.ParallelOptions{MaxWorkers: *workers},
		func(_ context.Context, _ int, code string) (prediction, error) {
			p := prediction{Course: strings.ToUpper(strings.TrimSpace(code))}
			grade, conf := engine.PredictGrade(ds, profile, code)
			if grade == 0 && conf == 0 {
				return p, nil
			}
			p.Known = true
			p.Grade = grade
			p.Confidence = conf
			p.Difficulty = engine.DifficultyScore(ds, code)
			p.Average, p.HasAverage = ds.AverageFor(code)
			return p, nil
		})

	for _, p := range preds {
		if !p.Known {
			fmt.Printf("%-10s no data available\n", p.Course)
			continue
		}
		avg := "?"
		if p.HasAverage {
			avg = fmt.Sprintf("%.2f", p.Average)
		}
		fmt.Printf("%-10s predicted %.2f  confidence %.2f  difficulty %.1f  historical avg %s\n",
			p.Course, p.Grade, p.Confidence, p.Difficulty, avg)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
