package store

import (
	"context"
	"database/sql"
	"fmt"
)

// InsertImage records a camera frame and its audit entry in one transaction.
// The entry callback receives the generated image id so the audit action can
// reference it. Returns the assigned identifier.
func (s *Store) InsertImage(ctx context.Context, img Image, entry func(id int64) AuditEntry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin image tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO images (captured_at, path, location_id, robot_id, object_id)
         VALUES (?, ?, ?, ?, ?)`,
		formatTime(img.CapturedAt),
		img.Path,
		img.LocationID,
		img.RobotID,
		img.ObjectID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if entry != nil {
		if err := insertAudit(ctx, tx, entry(id)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit image: %w", err)
	}
	return id, nil
}

// InsertSensorReading records one telemetry sample.
func (s *Store) InsertSensorReading(ctx context.Context, r SensorReading) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO sensor_readings (
            recorded_at, gyro_x, gyro_y, gyro_z, neck_servo, head_servo,
            front_distance, left_distance, right_distance, motor_state
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(r.RecordedAt),
		r.GyroX,
		r.GyroY,
		r.GyroZ,
		r.NeckServo,
		r.HeadServo,
		r.FrontDistance,
		r.LeftDistance,
		r.RightDistance,
		r.MotorState,
	)
	if err != nil {
		return fmt.Errorf("insert sensor reading: %w", err)
	}
	return nil
}

// InsertHostStats records one host-resource snapshot.
func (s *Store) InsertHostStats(ctx context.Context, h HostStats) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO host_stats (recorded_at, cpu, ram, cpu_temp, gpu_temp, upload, download)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		formatTime(h.RecordedAt),
		h.CPU,
		h.RAM,
		h.CPUTemp,
		h.GPUTemp,
		h.Upload,
		h.Download,
	)
	if err != nil {
		return fmt.Errorf("insert host stats: %w", err)
	}
	return nil
}

// InsertDetection records a detection, its detected objects, and an audit
// entry atomically. The referenced image must already exist and must not have
// a detection yet; both conditions are re-checked inside the transaction so
// the at-most-one-detection-per-image invariant holds even with concurrent
// writers. Returns ErrImageMissing or ErrDetectionExists when the record
// should be skipped.
func (s *Store) InsertDetection(ctx context.Context, det Detection, objects []DetectedObject, entry AuditEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin detection tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM images WHERE id = ?`, det.ImageID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check image existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("image id %d: %w", det.ImageID, ErrImageMissing)
	}

	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM detections WHERE image_id = ?`, det.ImageID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check detection existence: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("image id %d: %w", det.ImageID, ErrDetectionExists)
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO detections (image_id, detected_at, error_score, anomaly, description)
         VALUES (?, ?, ?, ?, ?)`,
		det.ImageID,
		formatTime(det.DetectedAt),
		det.ErrorScore,
		boolToInt(det.Anomaly),
		det.Description,
	)
	if err != nil {
		return fmt.Errorf("insert detection: %w", err)
	}
	detectionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	for _, obj := range objects {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO detected_objects (detection_id, class, latitude, longitude, recorded_at)
             VALUES (?, ?, ?, ?, ?)`,
			detectionID,
			obj.Class,
			obj.Latitude,
			obj.Longitude,
			formatTime(obj.RecordedAt),
		); err != nil {
			return fmt.Errorf("insert detected object %q: %w", obj.Class, err)
		}
	}

	if err := insertAudit(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit detection: %w", err)
	}
	return nil
}

// AppendAudit records a standalone audit entry outside any artifact
// transaction (skips, parse failures, unrecognized files).
func (s *Store) AppendAudit(ctx context.Context, entry AuditEntry) error {
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO audit_log (logged_at, action, actor_id, source) VALUES (?, ?, ?, ?)`,
		formatTime(entry.LoggedAt),
		entry.Action,
		entry.ActorID,
		entry.Source,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func insertAudit(ctx context.Context, tx *sql.Tx, entry AuditEntry) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO audit_log (logged_at, action, actor_id, source) VALUES (?, ?, ?, ?)`,
		formatTime(entry.LoggedAt),
		entry.Action,
		entry.ActorID,
		entry.Source,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
