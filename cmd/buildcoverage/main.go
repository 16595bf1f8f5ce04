package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"vax-coverage/internal/config"
	"vax-coverage/internal/pipeline"
	"vax-coverage/internal/sftpclient"
)

func main() {
	var (
		primaryPath   = flag.String("primary", "", "path to the agency coverage snapshot (default <data-dir>/vaccination-coverage-map.csv)")
		secondaryPath = flag.String("secondary", "", "path to the community additional-dose snapshot (default <data-dir>/vaccine_additionaldoses_timeseries_prov.csv)")
		outDir        = flag.String("out-dir", "", "output directory (default from COVERAGE_OUT_DIR)")
		uploadSFTP    = flag.Bool("sftp", false, "upload the generated files via SFTP")
	)
	flag.Parse()

	cfg := config.Load()

	if *primaryPath == "" {
		*primaryPath = filepath.Join(cfg.DataDir, "vaccination-coverage-map.csv")
	}
	if *secondaryPath == "" {
		*secondaryPath = filepath.Join(cfg.DataDir, "vaccine_additionaldoses_timeseries_prov.csv")
	}
	if *outDir == "" {
		*outDir = cfg.OutDir
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	res, err := pipeline.Run(pipeline.Options{
		PrimaryPath:   *primaryPath,
		SecondaryPath: *secondaryPath,
		OutDir:        *outDir,
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d wide rows to %s and %d long rows to %s (anomalies=%d)",
		res.Rows, res.WidePath, res.LongRows, res.LongPath, len(res.Anomalies))

	if *uploadSFTP {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		upCfg := sftpclient.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		}
		if err := sftpclient.UploadFiles(ctx, upCfg, []string{res.WidePath, res.LongPath}); err != nil {
			log.Fatal(err)
		}
		log.Printf("uploaded to sftp://%s:%d%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir)
	}
}
