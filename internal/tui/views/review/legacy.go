package review

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/suggest"
)

// loadLegacyRows fetches every correction artifact of the run concurrently
// and joins them into one row slice. Any single fetch failure fails the
// whole load; partial data would silently misrepresent the run.
func loadLegacyRows(ctx context.Context, client *api.Client, runID string) ([]suggest.CorrectionRow, error) {
	artifacts, err := client.ListArtifacts(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var files []string
	for _, f := range artifacts.Files {
		if suggest.IsCorrectionArtifact(f) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	multiDoc := len(files) > 1
	perFile := make([][]suggest.CorrectionRow, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			data, err := client.GetArtifact(ctx, runID, name)
			if err != nil {
				errs[i] = fmt.Errorf("fetch %s: %w", name, err)
				return
			}
			rows := suggest.ParseJSONL(bytes.NewReader(data))
			if multiDoc {
				doc := suggest.DocumentName(name)
				for j := range rows {
					rows[j].Document = doc
				}
			}
			perFile[i] = rows
		}(i, name)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var out []suggest.CorrectionRow
	for _, rows := range perFile {
		out = append(out, rows...)
	}
	return out, nil
}
