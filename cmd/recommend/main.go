package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"grade-advisor/internal/advisor"
	"grade-advisor/internal/config"
	"grade-advisor/internal/domain"
	"grade-advisor/internal/export"
	"grade-advisor/internal/ingest"
	"grade-advisor/internal/logging"
	"grade-advisor/internal/schema"
	"grade-advisor/internal/sftpclient"
	"grade-advisor/internal/store"
)

func main() {
	cfg := config.Load()

	var (
		dataPath    = flag.String("data", cfg.DatasetPath, "raw dataset csv path")
		snapPath    = flag.String("snapshot", cfg.SnapshotPath, "load dataset from a json snapshot instead of csv")
		fromDB      = flag.Bool("db", false, "load dataset from sqlite")
		advisorCfg  = flag.String("advisor-config", "", "yaml file with scoring weights (optional)")
		count       = flag.Int("count", 8, "max recommendations")
		minCredits  = flag.Int("min-credits", 3, "minimum course credits")
		subjects    = flag.String("subjects", "", "restrict to subject prefixes, comma-separated (e.g. COMP,MATH)")
		includeDone = flag.Bool("include-completed", false, "keep courses the student already completed")
		name        = flag.String("name", "", "student name")
		gpa         = flag.Float64("gpa", 0, "current GPA on the 4.0 scale")
		completed   = flag.String("completed", "", "completed courses, comma-separated (e.g. COMP250,MATH240)")
		difficulty  = flag.String("difficulty", "moderate", "difficulty preference: easy|moderate|challenging|very_hard")
		profileName = flag.String("profile", "", "load a saved profile by name instead of flags")
		saveProfile = flag.Bool("save-profile", false, "save the flag-built profile to sqlite")
		listSubject = flag.String("list-subject", "", "list courses for a subject prefix and exit")
		asJSON      = flag.Bool("json", false, "print recommendations as json")
		outPath     = flag.String("out", "", "write a csv report here (optional)")
		uploadSFTP  = flag.Bool("sftp", false, "upload the csv report via SFTP")
	)
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	ds := loadDataset(log, cfg, *dataPath, *snapPath, *fromDB)

	if *listSubject != "" {
		listCourses(ds, *listSubject)
		return
	}

	profile := buildProfile(log, cfg, *profileName, *name, *gpa, *completed, *difficulty)
	if *saveProfile {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		if err := db.SaveProfile(profile); err != nil {
			db.Close()
			log.Fatal().Err(err).Msg("save profile")
		}
		db.Close()
		log.Info().Str("profile", profile.Name).Msg("saved profile")
	}

	weights, err := config.LoadAdvisor(*advisorCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load advisor config")
	}
	engine, err := advisor.NewEngine(weights, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}

	recs := engine.Recommend(ds, profile, advisor.Options{
		Count:            *count,
		ExcludeCompleted: !*includeDone,
		MinCredits:       *minCredits,
		Subjects:         splitList(*subjects),
	})
	if len(recs) == 0 {
		log.Warn().Msg("no courses matched the filters")
		return
	}

	if *asJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("encode recommendations")
		}
		fmt.Println(string(data))
	} else {
		printRecs(recs)
	}

	if *outPath != "" {
		if err := export.WriteReportFile(*outPath, recs); err != nil {
			log.Fatal().Err(err).Msg("write report")
		}
		log.Info().Str("file", *outPath).Msg("wrote report")

		if *uploadSFTP {
			upCfg := sftpclient.Config{
				Host:                  cfg.SFTPHost,
				Port:                  cfg.SFTPPort,
				User:                  cfg.SFTPUser,
				Pass:                  cfg.SFTPPass,
				RemoteDir:             cfg.SFTPDir,
				InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := sftpclient.UploadFile(ctx, upCfg, *outPath, filepath.Base(*outPath)); err != nil {
				log.Fatal().Err(err).Msg("upload report")
			}
			log.Info().Str("host", upCfg.Host).Str("dir", upCfg.RemoteDir).Msg("uploaded report")
		}
	}
}

func loadDataset(log zerolog.Logger, cfg config.Config, dataPath, snapPath string, fromDB bool) *schema.Dataset {
	switch {
	case fromDB:
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer db.Close()
		rows, err := db.LoadDataset()
		if err != nil {
			log.Fatal().Err(err).Msg("load dataset from sqlite")
		}
		return schema.NewDataset(rows)
	case snapPath != "":
		rows, err := store.ReadSnapshot(snapPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load snapshot")
		}
		return schema.NewDataset(rows)
	default:
		table, err := ingest.ParseFile(dataPath)
		if err != nil {
			log.Fatal().Err(err).Msg("ingest failed")
		}
		ds, err := schema.Normalize(table)
		if err != nil {
			log.Fatal().Err(err).Msg("normalization failed")
		}
		return ds
	}
}

func buildProfile(log zerolog.Logger, cfg config.Config, profileName, name string, gpa float64, completed, difficulty string) *domain.StudentProfile {
	if profileName != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer db.Close()
		p, err := db.LoadProfile(profileName)
		if err != nil {
			log.Fatal().Err(err).Msg("load profile")
		}
		return p
	}

	pref, err := domain.ParseDifficultyLevel(difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad difficulty preference")
	}
	p := domain.NewStudentProfile(name, splitList(completed), gpa, pref)
	if err := p.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad profile")
	}
	return p
}

func listCourses(ds *schema.Dataset, subject string) {
	sums := ds.CoursesBySubject(subject)
	if len(sums) == 0 {
		fmt.Printf("no courses found for subject %s\n", strings.ToUpper(strings.TrimSpace(subject)))
		return
	}
	for _, s := range sums {
		avg, credits := "?", "?"
		if s.HasAverage {
			avg = fmt.Sprintf("%.2f", s.ClassAverage)
		}
		if s.HasCredits {
			credits = fmt.Sprintf("%d", s.Credits)
		}
		fmt.Printf("%-10s (%s cr) - Avg: %s\n", s.Course, credits, avg)
	}
}

func printRecs(recs []domain.Recommendation) {
	for i, rec := range recs {
		fmt.Printf("%2d. %-10s predicted %.2f  avg %.2f  difficulty %.1f  confidence %.2f  %d credits  term %s\n",
			i+1, rec.Course, rec.PredictedGrade, rec.ClassAverage, rec.Difficulty, rec.Confidence, rec.Credits, rec.Term)
		for _, r := range rec.Reasons {
			fmt.Printf("      + %s\n", r)
		}
		for _, w := range rec.Warnings {
			fmt.Printf("      ! %s\n", w)
		}
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
