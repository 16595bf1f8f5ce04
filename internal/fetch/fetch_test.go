package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadStagesSnapshots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/primary":
			w.Write([]byte("week_end,prename\n"))
		case "/secondary":
			w.Write([]byte("date_vaccine_additionaldose,province\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	snapshots := []Snapshot{
		{Name: "primary", URL: srv.URL + "/primary", Path: filepath.Join(dir, "primary.csv")},
		{Name: "secondary", URL: srv.URL + "/secondary", Path: filepath.Join(dir, "secondary.csv")},
	}

	if err := Download(context.Background(), srv.Client(), snapshots); err != nil {
		t.Fatalf("Download error: %v", err)
	}

	data, err := os.ReadFile(snapshots[0].Path)
	if err != nil {
		t.Fatalf("read staged primary: %v", err)
	}
	if string(data) != "week_end,prename\n" {
		t.Errorf("primary content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("staging dir has %d entries, want 2: %v", len(entries), entries)
	}
}

func TestDownloadReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	err := Download(context.Background(), srv.Client(), []Snapshot{
		{Name: "primary", URL: srv.URL + "/missing", Path: filepath.Join(dir, "primary.csv")},
	})
	if err == nil {
		t.Fatal("expected error for 404, got nil")
	}

	if _, statErr := os.Stat(filepath.Join(dir, "primary.csv")); !os.IsNotExist(statErr) {
		t.Error("failed download must not leave a staged file")
	}
}
