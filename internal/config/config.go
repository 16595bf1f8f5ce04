package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Source snapshots
	PrimaryURL   string
	SecondaryURL string
	DataDir      string

	// Output
	OutDir string

	// SFTP publication (optional)
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		PrimaryURL: getenv("COVERAGE_PRIMARY_URL",
			"https://health-infobase.canada.ca/src/data/covidLive/vaccination-coverage-map.csv"),
		SecondaryURL: getenv("COVERAGE_SECONDARY_URL",
			"https://raw.githubusercontent.com/ccodwg/Covid19Canada/master/timeseries_prov/vaccine_additionaldoses_timeseries_prov.csv"),
		DataDir: getenv("COVERAGE_DATA_DIR", "data"),
		OutDir:  getenv("COVERAGE_OUT_DIR", "out"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/"),
		SFTPInsecureIgnoreHostKey: os.Getenv("SFTP_INSECURE_IGNORE_HOST_KEY") == "1",
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
