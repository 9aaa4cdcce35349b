package main

import (
	"errors"
	"flag"

	"grade-advisor/internal/config"
	"grade-advisor/internal/export"
	"grade-advisor/internal/ingest"
	"grade-advisor/internal/logging"
	"grade-advisor/internal/schema"
	"grade-advisor/internal/store"
)

func main() {
	cfg := config.Load()

	var (
		inPath   = flag.String("in", cfg.DatasetPath, "raw dataset csv path")
		outPath  = flag.String("out", "", "write normalized csv here (optional)")
		snapPath = flag.String("snapshot", "", "write json snapshot here (optional)")
		toDB     = flag.Bool("db", false, "persist the normalized dataset to sqlite")
		topN     = flag.Int("top-subjects", 10, "how many subjects to report")
	)
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	table, err := ingest.ParseFile(*inPath)
	if err != nil {
		if errors.Is(err, ingest.ErrNoUsableRows) {
			log.Fatal().Str("file", *inPath).Msg("could not recover any rows from the file")
		}
		log.Fatal().Err(err).Msg("ingest failed")
	}
	log.Info().
		Str("file", *inPath).
		Int("columns", len(table.Header)).
		Int("rows", len(table.Rows)).
		Msg("parsed raw dataset")

	ds, err := schema.Normalize(table)
	if err != nil {
		var infErr *schema.InferenceError
		if errors.As(err, &infErr) {
			log.Fatal().Strs("columns", infErr.Columns).Msg("no course code column found")
		}
		log.Fatal().Err(err).Msg("normalization failed")
	}

	st := ds.Stats()
	log.Info().
		Int("records", st.Records).
		Int("unique_courses", st.UniqueCourses).
		Int("graded", st.Graded).
		Float64("mean", st.Mean).
		Float64("median", st.Median).
		Float64("min", st.Min).
		Float64("max", st.Max).
		Msg("normalized dataset")

	for i, sc := range ds.SubjectCounts() {
		if i >= *topN {
			break
		}
		log.Info().Str("subject", sc.Subject).Int("rows", sc.Rows).Msg("subject")
	}

	if *outPath != "" {
		if err := export.WriteDatasetFile(*outPath, ds.Rows()); err != nil {
			log.Fatal().Err(err).Msg("write normalized csv")
		}
		log.Info().Str("file", *outPath).Msg("wrote normalized csv")
	}

	if *snapPath != "" {
		if err := store.WriteSnapshot(*snapPath, ds.Rows()); err != nil {
			log.Fatal().Err(err).Msg("write snapshot")
		}
		log.Info().Str("file", *snapPath).Msg("wrote snapshot")
	}

	if *toDB {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer db.Close()
		if err := db.ReplaceDataset(ds.Rows()); err != nil {
			log.Fatal().Err(err).Msg("persist dataset")
		}
		log.Info().Str("db", cfg.DBPath).Int("rows", ds.Len()).Msg("persisted dataset")
	}
}
