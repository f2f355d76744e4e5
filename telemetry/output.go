package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/drape/config"
)

// csvLog appends gocsv records to one file, writing the header once.
type csvLog struct {
	name   string
	f      *os.File
	header bool
}

func openCSV(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

// write marshals records, a slice of csv-tagged structs.
func (l *csvLog) write(records interface{}) error {
	var err error
	if !l.header {
		err = gocsv.Marshal(records, l.f)
		l.header = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, l.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// EventRecord is one row of events.csv.
type EventRecord struct {
	Tick  int32  `csv:"tick"`
	Type  string `csv:"type"`
	Index int    `csv:"index"`
	Cause string `csv:"cause"`
}

// OutputManager writes run output: telemetry.csv, perf.csv, bookmarks.csv,
// events.csv and config.yaml. A nil manager discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
	bookmarks *csvLog
	events    *csvLog

	// Events are buffered and written with the next telemetry window,
	// since cascades produce hundreds per tick.
	pending []EventRecord
}

// NewOutputManager creates the output directory and its files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, f := range []struct {
		dst  **csvLog
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
		{&om.events, "events.csv"},
	} {
		l, err := openCSV(dir, f.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*f.dst = l
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// RecordEvent queues an event for events.csv.
func (om *OutputManager) RecordEvent(e Event) {
	if om == nil {
		return
	}
	rec := EventRecord{Tick: e.Tick, Type: e.Type.String(), Index: e.Index}
	if e.Type == EventDestroy {
		rec.Cause = e.Cause.String()
	}
	om.pending = append(om.pending, rec)
}

// WriteTelemetry writes a window to telemetry.csv and flushes queued events.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return err
	}
	return om.flushEvents()
}

func (om *OutputManager) flushEvents() error {
	if len(om.pending) == 0 {
		return nil
	}
	err := om.events.write(om.pending)
	om.pending = om.pending[:0]
	return err
}

// WritePerf writes a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close writes queued events and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var errs []error
	if om.events != nil {
		errs = append(errs, om.flushEvents())
	}
	for _, l := range []*csvLog{om.telemetry, om.perf, om.bookmarks, om.events} {
		if l != nil {
			errs = append(errs, l.f.Close())
		}
	}
	return errors.Join(errs...)
}
