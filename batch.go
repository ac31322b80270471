package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goinggo/workpool"
)

// convertResult is one line of the batch summary report.
type convertResult struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// convertWork converts one file on a pool routine. Packages are
// independent, so conversions run concurrently with no coordination
// beyond the results list.
type convertWork struct {
	filename string
	lz4      bool
	hc       bool

	mu      *sync.Mutex
	results *[]convertResult
}

func (w *convertWork) DoWork(workRoutine int) {
	res := convertResult{File: w.filename, Status: "success"}
	if err := convertFile(w.filename, w.lz4, w.hc); err != nil {
		res.Status = "error"
		res.Error = err.Error()
	}

	w.mu.Lock()
	*w.results = append(*w.results, res)
	w.mu.Unlock()
}

// convertDir walks a directory tree, queues every .uasset onto a worker
// pool, waits for the pool to drain, and writes a summary report next to
// the converted files.
func convertDir(dir string, lz4 bool, hc bool) error {
	pool := workpool.New(runtime.NumCPU()*2, 7000)

	var mu sync.Mutex
	var results []convertResult

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.ToLower(filepath.Ext(p)) != ".uasset" {
			return nil
		}
		work := &convertWork{
			filename: p,
			lz4:      lz4,
			hc:       hc,
			mu:       &mu,
			results:  &results,
		}
		return pool.PostWork("convert", work)
	})

	// Drain even on a walk error, so queued conversions finish before
	// the function returns.
	for pool.QueuedWork() != 0 || pool.ActiveRoutines() != 0 {
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		return err
	}

	return writeSummary(dir, results)
}

// writeSummary writes the per-file success/error report for a batch run.
func writeSummary(dir string, results []convertResult) error {
	success := 0
	for _, r := range results {
		if r.Status == "success" {
			success++
		}
	}
	fmt.Printf("Converted %d/%d files\n", success, len(results))

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "_convert_summary.json"), out, 0o644)
}
