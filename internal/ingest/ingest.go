package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"scribe/internal/classify"
	"scribe/internal/config"
	"scribe/internal/journal"
	"scribe/internal/logging"
	"scribe/internal/scanner"
	"scribe/internal/store"
)

// Ingestor drains the watched drop locations into the store. It holds no
// durable state of its own: the processed-set is a per-run cache and the
// store is the source of truth for what was already recorded, so a restart
// with a fresh Ingestor never double-inserts.
type Ingestor struct {
	cfg     *config.Config
	store   *store.Store
	journal *journal.Journal
	logger  *slog.Logger

	mu        sync.Mutex
	processed map[string]struct{}
	lastTail  string
}

// New returns an ingestor over the configured drop locations and store.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		cfg:       cfg,
		store:     st,
		journal:   journal.New(cfg.JournalPath()),
		logger:    logging.WithComponent(logger, "ingest"),
		processed: make(map[string]struct{}),
	}
}

// Tick performs one full pass: camera frames first, then telemetry JSON, then
// the detection tail log. Per-artifact failures are reported in the summary
// and logged; only store connectivity loss is returned as an error, since no
// artifact can make progress without the store.
func (in *Ingestor) Tick(ctx context.Context) (TickSummary, error) {
	var summary TickSummary

	if err := in.store.Ping(ctx); err != nil {
		return summary, Wrap(ErrStore, "ping store", "", err)
	}

	for _, name := range scanner.List(in.cfg.Paths.FramesDir, scanner.HasExtension(".jpg"), in.alreadyProcessed) {
		in.observe(&summary, in.processImage(ctx, name))
	}

	reserved := in.reservedNames()
	for _, name := range scanner.List(in.cfg.Paths.TelemetryDir, scanner.HasExtension(".json"), func(name string) bool {
		if _, ok := reserved[strings.ToLower(name)]; ok {
			return true
		}
		return in.alreadyProcessed(name)
	}) {
		in.observe(&summary, in.processTelemetry(ctx, name))
	}

	if r := in.processDetectionLog(ctx); r != nil {
		in.observe(&summary, *r)
	}

	return summary, nil
}

// reservedNames lists files in the telemetry directory that scribe itself
// owns and must never ingest as artifacts.
func (in *Ingestor) reservedNames() map[string]struct{} {
	return map[string]struct{}{
		strings.ToLower(in.cfg.Ingest.SidecarFile):  {},
		strings.ToLower(in.cfg.Ingest.JournalFile):  {},
		strings.ToLower(in.cfg.Ingest.DetectionLog): {},
	}
}

func (in *Ingestor) alreadyProcessed(name string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	_, ok := in.processed[name]
	return ok
}

func (in *Ingestor) markProcessed(name string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.processed[name] = struct{}{}
}

func (in *Ingestor) processImage(ctx context.Context, name string) Result {
	result := Result{File: name, Kind: classify.KindImage}
	path := filepath.Join(in.cfg.Paths.FramesDir, name)

	recorded, err := in.store.HasImageFile(ctx, path)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrStore, "check image", name, err)
		return result
	}
	if recorded {
		// Seen in an earlier run; refresh the cache so the scanner skips
		// it next tick.
		in.markProcessed(name)
		result.Outcome = OutcomeSkipped
		result.Reason = "already recorded"
		return result
	}

	now := time.Now().UTC()
	img := store.Image{
		CapturedAt: now,
		Path:       path,
		LocationID: in.cfg.Ingest.LocationID,
		RobotID:    in.cfg.Ingest.RobotID,
		ObjectID:   in.cfg.Ingest.ObjectID,
	}
	var action string
	id, err := in.store.InsertImage(ctx, img, func(id int64) store.AuditEntry {
		action = fmt.Sprintf("image %s recorded with id=%d", name, id)
		return store.AuditEntry{
			LoggedAt: now,
			Action:   action,
			ActorID:  in.cfg.Ingest.ActorID,
			Source:   path,
		}
	})
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrStore, "insert image", name, err)
		return result
	}

	// The sidecar and journal are best-effort mirrors of the committed row;
	// a write failure is logged but never undoes the insert.
	if err := in.writeSidecar(id, name); err != nil {
		in.logger.Warn("sidecar update failed", logging.Args(
			logging.String(logging.FieldArtifact, name),
			logging.Error(err))...)
	}
	if err := in.journal.Append(now, action); err != nil {
		in.logger.Warn("journal append failed", logging.Args(
			logging.String(logging.FieldArtifact, name),
			logging.Error(err))...)
	}

	in.markProcessed(name)
	result.Outcome = OutcomePersisted
	result.Rows = 1
	return result
}

func (in *Ingestor) processTelemetry(ctx context.Context, name string) Result {
	kind := classify.Classify(name)
	result := Result{File: name, Kind: kind}
	path := filepath.Join(in.cfg.Paths.TelemetryDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrTransientIO, "read telemetry", name, err)
		return result
	}

	switch kind {
	case classify.KindSensorReading:
		return in.persistSensorFile(ctx, name, path, data)
	case classify.KindHostStats:
		return in.persistHostStats(ctx, name, path, data)
	default:
		return in.recordUnrecognized(ctx, name, path)
	}
}

func (in *Ingestor) persistSensorFile(ctx context.Context, name, path string, data []byte) Result {
	result := Result{File: name, Kind: classify.KindSensorReading}

	readings, err := classify.ParseSensorFile(name, data)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrParse, "parse sensor file", name, err)
		return result
	}

	// Element failures are isolated: one bad insert never blocks the rest
	// of the batch.
	inserted := 0
	for i, r := range readings {
		err := in.store.InsertSensorReading(ctx, store.SensorReading{
			RecordedAt:    r.RecordedAt,
			GyroX:         r.GyroX,
			GyroY:         r.GyroY,
			GyroZ:         r.GyroZ,
			NeckServo:     r.NeckServo,
			HeadServo:     r.HeadServo,
			FrontDistance: r.FrontDistance,
			LeftDistance:  r.LeftDistance,
			RightDistance: r.RightDistance,
			MotorState:    r.MotorState,
		})
		if err != nil {
			in.logger.Error("sensor element insert failed", logging.Args(
				logging.String(logging.FieldArtifact, name),
				logging.Int("element", i),
				logging.Error(err))...)
			continue
		}
		inserted++
	}

	if inserted == 0 && len(readings) > 0 {
		// Nothing committed; leave the file unprocessed so the next tick
		// retries the whole batch.
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrStore, "insert sensor batch", name, nil)
		return result
	}

	now := time.Now().UTC()
	action := fmt.Sprintf("sensor file %s recorded (%d/%d elements)", name, inserted, len(readings))
	in.recordAction(ctx, now, action, path)

	in.markProcessed(name)
	result.Outcome = OutcomePersisted
	result.Rows = inserted
	if inserted < len(readings) {
		result.Reason = fmt.Sprintf("%d elements failed", len(readings)-inserted)
	}
	return result
}

func (in *Ingestor) persistHostStats(ctx context.Context, name, path string, data []byte) Result {
	result := Result{File: name, Kind: classify.KindHostStats}

	stats, err := classify.ParseHostStatsFile(name, data)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrParse, "parse host stats", name, err)
		return result
	}

	err = in.store.InsertHostStats(ctx, store.HostStats{
		RecordedAt: stats.RecordedAt,
		CPU:        stats.CPU,
		RAM:        stats.RAM,
		CPUTemp:    stats.CPUTemp,
		GPUTemp:    stats.GPUTemp,
		Upload:     stats.Upload,
		Download:   stats.Download,
	})
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrStore, "insert host stats", name, err)
		return result
	}

	now := time.Now().UTC()
	in.recordAction(ctx, now, fmt.Sprintf("host stats file %s recorded", name), path)

	in.markProcessed(name)
	result.Outcome = OutcomePersisted
	result.Rows = 1
	return result
}

// recordUnrecognized marks an unknown JSON file as handled so it is not
// re-examined every tick, leaving an audit trail of the decision.
func (in *Ingestor) recordUnrecognized(ctx context.Context, name, path string) Result {
	now := time.Now().UTC()
	in.recordAction(ctx, now, fmt.Sprintf("unrecognized file %s ignored", name), path)
	in.markProcessed(name)
	return Result{
		File:    name,
		Kind:    classify.KindUnrecognized,
		Outcome: OutcomeSkipped,
		Reason:  "unrecognized",
	}
}

func (in *Ingestor) processDetectionLog(ctx context.Context) *Result {
	path := in.cfg.DetectionLogPath()
	name := in.cfg.Ingest.DetectionLog

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &Result{
			File:    name,
			Kind:    classify.KindDetectionRow,
			Outcome: OutcomeFailed,
			Err:     Wrap(ErrTransientIO, "read detection log", name, err),
		}
	}

	// The tail log only grows; remembering the raw last line avoids
	// re-handling (and re-journaling) the same row every tick.
	last := lastLine(data)
	if last == "" || last == in.tailSeen() {
		return nil
	}

	result := Result{File: name, Kind: classify.KindDetectionRow}

	row, ok, err := classify.LastDetectionRow(name, data)
	if err != nil {
		in.setTailSeen(last)
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrParse, "parse detection row", name, err)
		return &result
	}
	if !ok {
		in.setTailSeen(last)
		return nil
	}

	objects := make([]store.DetectedObject, 0, len(row.Objects))
	for _, class := range row.Objects {
		objects = append(objects, store.DetectedObject{
			Class:      class,
			RecordedAt: row.Timestamp,
		})
	}

	now := time.Now().UTC()
	det := store.Detection{
		ImageID:     row.ImageID,
		DetectedAt:  row.Timestamp,
		ErrorScore:  row.ErrorScore,
		Anomaly:     row.Anomaly,
		Description: "recorded from " + name,
	}
	action := fmt.Sprintf("detection recorded for image id=%d error_score=%.4f anomaly=%t objects=%d",
		row.ImageID, row.ErrorScore, row.Anomaly, len(objects))
	err = in.store.InsertDetection(ctx, det, objects, store.AuditEntry{
		LoggedAt: now,
		Action:   action,
		ActorID:  in.cfg.Ingest.ActorID,
		Source:   path,
	})
	switch {
	case errors.Is(err, store.ErrImageMissing):
		in.setTailSeen(last)
		in.recordAction(ctx, now, fmt.Sprintf("detection skipped: image id=%d not found", row.ImageID), path)
		result.Outcome = OutcomeSkipped
		result.Reason = "image reference not found"
	case errors.Is(err, store.ErrDetectionExists):
		in.setTailSeen(last)
		in.recordAction(ctx, now, fmt.Sprintf("detection skipped: image id=%d already has a detection", row.ImageID), path)
		result.Outcome = OutcomeSkipped
		result.Reason = "detection already exists"
	case err != nil:
		// Leave the tail unseen so the next tick retries.
		result.Outcome = OutcomeFailed
		result.Err = Wrap(ErrStore, "insert detection", name, err)
	default:
		in.setTailSeen(last)
		if err := in.journal.Append(now, action); err != nil {
			in.logger.Warn("journal append failed", logging.Args(
				logging.String(logging.FieldArtifact, name),
				logging.Error(err))...)
		}
		result.Outcome = OutcomePersisted
		result.Rows = 1 + len(objects)
	}
	return &result
}

// recordAction writes the audit row and journal line for actions that happen
// outside an artifact transaction. Failures are logged, never escalated.
func (in *Ingestor) recordAction(ctx context.Context, at time.Time, action, source string) {
	err := in.store.AppendAudit(ctx, store.AuditEntry{
		LoggedAt: at,
		Action:   action,
		ActorID:  in.cfg.Ingest.ActorID,
		Source:   source,
	})
	if err != nil {
		in.logger.Error("audit append failed", logging.Args(
			logging.String("action", action),
			logging.Error(err))...)
	}
	if err := in.journal.Append(at, action); err != nil {
		in.logger.Warn("journal append failed", logging.Args(
			logging.String("action", action),
			logging.Error(err))...)
	}
}

func (in *Ingestor) tailSeen() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lastTail
}

func (in *Ingestor) setTailSeen(line string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.lastTail = line
}

func lastLine(data []byte) string {
	var last string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			last = trimmed
		}
	}
	return last
}

func (in *Ingestor) observe(summary *TickSummary, r Result) {
	summary.observe(r)
	switch r.Outcome {
	case OutcomePersisted:
		in.logger.Info("artifact recorded", logging.Args(
			logging.String(logging.FieldArtifact, r.File),
			logging.String("kind", string(r.Kind)),
			logging.Int("rows", r.Rows))...)
	case OutcomeSkipped:
		in.logger.Debug("artifact skipped", logging.Args(
			logging.String(logging.FieldArtifact, r.File),
			logging.String("kind", string(r.Kind)),
			logging.String("reason", r.Reason))...)
	case OutcomeFailed:
		in.logger.Error("artifact processing failed", logging.Args(
			logging.String(logging.FieldArtifact, r.File),
			logging.String("kind", string(r.Kind)),
			logging.String(logging.FieldEventType, "ingest_failure"),
			logging.Error(r.Err))...)
	}
}
