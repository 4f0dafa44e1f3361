package analyze

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/efidecode/dlog"
	"github.com/efidecode/dlog/format"
)

// FileReport is the outcome of one file's decode attempt. Err is set when
// the decode failed; a failed file never aborts the batch.
type FileReport struct {
	Path    string
	Version format.SchemaVersion
	Rows    int
	Columns int
	Partial bool
	Stats   []ColumnStats
	Err     error
}

// BatchReport aggregates the per-file outcomes of one batch run.
type BatchReport struct {
	Files   []FileReport
	Decoded int
	Failed  int
}

// statColumns are the columns summarized per file in batch reports. They
// cover the verified table head, so they resolve on V4 partial datasets too.
var statColumns = []string{"RPM", "Inj PW", "Duty Cycle", "TPS", "MAP", "CTS", "Battery"}

// FindLogs walks root recursively and returns every .dl and .dlz file,
// matched case-insensitively, in sorted order.
func FindLogs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".dl", ".dlz":
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}

// File decodes one log file and summarizes it. Decompression, detection and
// decoding failures land in the report's Err field.
func File(path string) FileReport {
	report := FileReport{Path: path}

	ds, err := dlog.DecodeFile(path)
	if err != nil {
		report.Err = err
		return report
	}

	report.Version = ds.Version()
	report.Rows = ds.NumRows()
	report.Columns = ds.NumColumns()
	report.Partial = ds.Partial()
	report.Stats = Columns(ds, statColumns...)

	return report
}

// Batch decodes every log under root on a pool of workers and aggregates
// the outcomes. Each file's decode is independent; workers share nothing but
// the immutable schema registry, so no locking is needed beyond the result
// collection itself.
func Batch(root string, workers int) (BatchReport, error) {
	files, err := FindLogs(root)
	if err != nil {
		return BatchReport{}, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string)
	results := make(chan FileReport)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- File(path)
			}
		}()
	}
	go func() {
		for _, path := range files {
			jobs <- path
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var report BatchReport
	for fr := range results {
		report.Files = append(report.Files, fr)
		if fr.Err != nil {
			report.Failed++
		} else {
			report.Decoded++
		}
	}
	sort.Slice(report.Files, func(i, j int) bool { return report.Files[i].Path < report.Files[j].Path })

	return report, nil
}
