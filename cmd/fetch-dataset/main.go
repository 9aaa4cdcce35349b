package main

import (
	"context"
	"flag"
	"os"
	"time"

	"grade-advisor/internal/config"
	"grade-advisor/internal/fetch"
	"grade-advisor/internal/ingest"
	"grade-advisor/internal/logging"
	"grade-advisor/internal/schema"
	"grade-advisor/internal/sftpclient"
)

func main() {
	cfg := config.Load()

	var (
		url      = flag.String("url", cfg.ShareURL, "spreadsheet share or export URL")
		useSFTP  = flag.Bool("sftp", false, "download from the SFTP drop directory instead of HTTP")
		remote   = flag.String("remote", "ClassAverageCrowdSourcing.csv", "remote file name for SFTP downloads")
		outPath  = flag.String("out", cfg.DatasetPath, "where to write the downloaded csv")
		validate = flag.Bool("validate", true, "parse and normalize the download before keeping it")
	)
	flag.Parse()

	log := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var data []byte
	switch {
	case *useSFTP:
		dlCfg := sftpclient.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		}
		if err := sftpclient.DownloadFile(ctx, dlCfg, *remote, *outPath); err != nil {
			log.Fatal().Err(err).Msg("download dataset")
		}
		var err error
		if data, err = os.ReadFile(*outPath); err != nil {
			log.Fatal().Err(err).Msg("read downloaded dataset")
		}
	case *url != "":
		var err error
		if data, err = fetch.CSV(ctx, nil, *url); err != nil {
			log.Fatal().Err(err).Msg("download dataset")
		}
	default:
		log.Fatal().Msg("no source: set -url, SHARE_URL, or -sftp")
	}

	if *validate {
		table, err := ingest.Parse(data)
		if err != nil {
			log.Fatal().Err(err).Msg("downloaded file is not a usable csv")
		}
		ds, err := schema.Normalize(table)
		if err != nil {
			log.Fatal().Err(err).Msg("downloaded file has no course column")
		}
		log.Info().Int("rows", ds.Len()).Int("courses", len(ds.Courses())).Msg("download validated")
	}

	if !*useSFTP {
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			log.Fatal().Err(err).Msg("write dataset")
		}
	}
	log.Info().Str("file", *outPath).Int("bytes", len(data)).Msg("dataset saved")
}
