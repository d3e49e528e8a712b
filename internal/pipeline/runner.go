// Package pipeline orchestrates the transcript-to-journey extraction run:
// file discovery, resumable parsing, session settlement, journey
// extraction, and sink delivery.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rentmax/journeyd/internal/cursor"
	"github.com/rentmax/journeyd/internal/journey"
	"github.com/rentmax/journeyd/internal/sink"
	"github.com/rentmax/journeyd/internal/transcript"
)

// ErrRunInProgress is returned when Run is invoked while a previous run on
// the same Runner has not finished. Overlapping runs would race on the
// cursor read-modify-write.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// Config holds the pipeline knobs. Zero values fall back to the production
// defaults.
type Config struct {
	LogDir       string
	GapThreshold time.Duration // inactivity gap that closes a session
	QuietPeriod  time.Duration // how long a session must be idle to settle
	SinkTimeout  time.Duration // per-record, per-sink delivery bound
	Journey      journey.Config
}

// Summary reports what one run did.
type Summary struct {
	RunID            uuid.UUID
	Files            int
	FilesSkipped     int
	Records          int
	Delivered        int
	DeliveryFailures int
}

// Runner processes transcript files one at a time and forwards completed
// journey records to the configured sinks.
type Runner struct {
	cfg     Config
	sinks   []sink.Sink
	logger  *slog.Logger
	now     func() time.Time // injectable clock for settlement tests
	running atomic.Bool
}

func NewRunner(cfg Config, sinks []sink.Sink, logger *slog.Logger) *Runner {
	if cfg.GapThreshold <= 0 {
		cfg.GapThreshold = 600 * time.Second
	}
	if cfg.QuietPeriod <= 0 {
		cfg.QuietPeriod = 7 * time.Minute
	}
	if cfg.SinkTimeout <= 0 {
		cfg.SinkTimeout = 15 * time.Second
	}
	return &Runner{cfg: cfg, sinks: sinks, logger: logger, now: time.Now}
}

// Run processes every discovered transcript file once and delivers the
// extracted journey records. One file's or one record's failure never
// aborts the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	files, err := r.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	sum := &Summary{RunID: uuid.New(), Files: len(files)}
	r.logger.Info("run starting", "run_id", sum.RunID.String(), "files", len(files))

	for i := 0; i < len(files); i++ {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		records, err := r.processFile(files[i])
		if err != nil {
			r.logger.Error("file skipped", "path", files[i], "error", err)
			sum.FilesSkipped++
			continue
		}
		sum.Records += len(records)

		for _, rec := range records {
			r.deliver(ctx, rec, sum)
		}
	}

	r.logger.Info("run complete",
		"run_id", sum.RunID.String(),
		"files", sum.Files,
		"files_skipped", sum.FilesSkipped,
		"records", sum.Records,
		"delivered", sum.Delivered,
		"delivery_failures", sum.DeliveryFailures,
	)
	return sum, nil
}

// discoverFiles returns the fixed, sorted list of transcript files for this
// run. The runner iterates it by index so processing stays deterministic
// and restartable per file.
func (r *Runner) discoverFiles() ([]string, error) {
	entries, err := os.ReadDir(r.cfg.LogDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(r.cfg.LogDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) processFile(path string) ([]*journey.Record, error) {
	cur, err := cursor.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}

	msgs, _, err := transcript.ReadFromOffset(path, cur.LineOffset)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	sessions := transcript.SplitSessions(msgs, r.cfg.GapThreshold)
	settled := r.settledSessions(sessions)
	if len(settled) == 0 {
		r.logger.Debug("no settled sessions yet", "path", path, "sessions", len(sessions))
		return nil, nil
	}

	fileName := filepath.Base(path)
	var records []*journey.Record
	for _, sess := range settled {
		segs := r.cfg.Journey.Split(sess)
		if len(segs) == 0 {
			r.logger.Info("no menu prompt in session", "path", path, "messages", len(sess))
			continue
		}
		for _, seg := range segs {
			if rec, ok := r.cfg.Journey.FromSegment(seg, fileName); ok {
				records = append(records, rec)
			}
		}
	}

	// Advance the cursor past the settled sessions only; unsettled trailing
	// lines stay unconsumed for the next run.
	lastSettled := settled[len(settled)-1]
	cur.LineOffset = lastSettled[len(lastSettled)-1].Line + 1
	cur.JourneyCount += len(records)

	mobile := mobileFromPath(path)
	for _, rec := range records {
		rec.Mobile = mobile
		rec.Attempts = cur.JourneyCount
	}

	// Records are only handed out once the cursor is durably advanced; on a
	// save failure the file keeps its old cursor and is retried next run.
	if err := cursor.Save(path, cur); err != nil {
		return nil, fmt.Errorf("save cursor: %w", err)
	}

	return records, nil
}

// settledSessions returns the sessions that are safe to extract. Every
// session but the last is settled; the last settles only once its final
// message is at least the quiet period old. A final message with no
// parseable timestamp keeps the session pending.
func (r *Runner) settledSessions(sessions []transcript.Session) []transcript.Session {
	if len(sessions) == 0 {
		return nil
	}

	settled := sessions[:len(sessions)-1]
	last := sessions[len(sessions)-1]
	lastTS := last[len(last)-1].Timestamp
	if !lastTS.IsZero() && !lastTS.After(r.now().Add(-r.cfg.QuietPeriod)) {
		settled = sessions
	}
	return settled
}

func (r *Runner) deliver(ctx context.Context, rec *journey.Record, sum *Summary) {
	if len(r.sinks) == 0 {
		r.logger.Info("record extracted (no sink configured)",
			"record_id", rec.ID.String(),
			"file", rec.File,
			"flow", string(rec.Flow),
		)
		return
	}

	for _, s := range r.sinks {
		dctx, cancel := context.WithTimeout(ctx, r.cfg.SinkTimeout)
		err := s.Deliver(dctx, rec)
		cancel()
		if err != nil {
			r.logger.Error("delivery failed",
				"sink", s.Name(),
				"record_id", rec.ID.String(),
				"file", rec.File,
				"error", err,
			)
			sum.DeliveryFailures++
			continue
		}
		sum.Delivered++
	}
}

// mobileFromPath recovers the conversation's phone number from the
// transcript file name, tolerating a ".done" marker suffix.
func mobileFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.ReplaceAll(base, ".done", "")
	return strings.TrimSuffix(base, ".txt")
}
