// Package fetch downloads the two raw input snapshots. Acquisition is a
// peripheral collaborator of the pipeline: it only stages files on disk,
// the pipeline itself never touches the network.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vax-coverage/internal/concurrency"
	"vax-coverage/internal/httpx"
)

// Snapshot names one remote file and where to stage it locally.
type Snapshot struct {
	Name string
	URL  string
	Path string
}

// Download fetches every snapshot, the two sources in parallel. Each file is
// staged through a temp file and renamed, so an interrupted download never
// leaves a truncated snapshot for the pipeline to read.
func Download(ctx context.Context, client *http.Client, snapshots []Snapshot) error {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}

	_, errs := concurrency.ProcessParallel(ctx, snapshots, concurrency.Options{MaxWorkers: len(snapshots)},
		func(ctx context.Context, i int, s Snapshot) (struct{}, error) {
			return struct{}{}, one(ctx, client, s)
		})
	return errors.Join(errs...)
}

func one(ctx context.Context, client *http.Client, s Snapshot) error {
	body, err := httpx.Get(ctx, client, s.URL, httpx.DefaultRetryConfig())
	if err != nil {
		return fmt.Errorf("fetch: %s: %w", s.Name, err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fetch: %s: %w", s.Name, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("fetch: %s: %w", s.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("fetch: %s: write: %w", s.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fetch: %s: close: %w", s.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("fetch: %s: rename: %w", s.Name, err)
	}
	return nil
}
