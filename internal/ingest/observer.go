package ingest

import "github.com/dbsmedya/shiftmerge/internal/logger"

// Observer receives discrete pipeline events. It decouples the batch
// processor from any specific output medium, so the pipeline is
// testable without capturing log text.
type Observer interface {
	// FileStarted fires before a file is parsed.
	FileStarted(name string)
	// FileParsed fires after a file parses successfully. missingDates
	// is the count of date cells replaced with the missing marker.
	FileParsed(name string, rows, cols, missingDates int)
	// FileFailed fires when a file fails to parse or validate.
	FileFailed(name, kind, detail string)
	// BatchSummary fires once per run, after the last file.
	BatchSummary(report *Report)
}

// LogObserver emits pipeline events through the structured logger.
// It is the default observer wired by the CLI.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver creates an observer backed by log.
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) FileStarted(name string) {
	o.log.WithFile(name).Info("Processing file")
}

func (o *LogObserver) FileParsed(name string, rows, cols, missingDates int) {
	l := o.log.WithFile(name)
	l.Infow("File parsed", "rows", rows, "columns", cols)
	if missingDates > 0 {
		l.Warnw("Unparseable dates replaced with missing marker", "count", missingDates)
	}
}

func (o *LogObserver) FileFailed(name, kind, detail string) {
	o.log.WithFile(name).Errorw("File failed", "kind", kind, "detail", detail)
}

func (o *LogObserver) BatchSummary(report *Report) {
	o.log.Infow("Batch complete",
		"discovered", report.Discovered,
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"failed_files", report.FailedFileNames(),
	)
	if s := report.Summary; s != nil {
		o.log.Infow("Combined dataset",
			"rows", s.TotalRows,
			"date_min", s.MinDate,
			"date_max", s.MaxDate,
			"machines", s.DistinctMachines,
			"shifts", s.Shifts,
		)
	}
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) FileStarted(string)                {}
func (NopObserver) FileParsed(string, int, int, int)  {}
func (NopObserver) FileFailed(string, string, string) {}
func (NopObserver) BatchSummary(*Report)              {}
