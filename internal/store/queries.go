package store

import (
	"context"
	"fmt"
)

// HasImageFile reports whether a frame with the given storage path has been
// recorded. The path is the natural key for image dedup, so restart safety
// does not depend on the in-memory processed-set.
func (s *Store) HasImageFile(ctx context.Context, path string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM images WHERE path = ?`, path).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check image path: %w", err)
	}
	return count > 0, nil
}

// ImageExists reports whether an image with the given identifier exists.
func (s *Store) ImageExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM images WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check image id: %w", err)
	}
	return count > 0, nil
}

// HasDetection reports whether a detection has been recorded for the image.
func (s *Store) HasDetection(ctx context.Context, imageID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM detections WHERE image_id = ?`, imageID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check detection: %w", err)
	}
	return count > 0, nil
}

// Stats returns row counts per table.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	var summary Summary
	counts := []struct {
		table string
		dest  *int
	}{
		{"images", &summary.Images},
		{"sensor_readings", &summary.SensorReadings},
		{"host_stats", &summary.HostStats},
		{"detections", &summary.Detections},
		{"detected_objects", &summary.DetectedObjects},
		{"audit_log", &summary.AuditEntries},
	}
	for _, c := range counts {
		row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+c.table)
		if err := row.Scan(c.dest); err != nil {
			return Summary{}, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return summary, nil
}

// RecentImages returns the newest images, most recent first.
func (s *Store) RecentImages(ctx context.Context, limit int) ([]Image, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, captured_at, path, location_id, robot_id, object_id
         FROM images ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent images: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var (
			img Image
			raw string
		)
		if err := rows.Scan(&img.ID, &raw, &img.Path, &img.LocationID, &img.RobotID, &img.ObjectID); err != nil {
			return nil, err
		}
		if t, err := parseTimeString(raw); err == nil {
			img.CapturedAt = t
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DetectionView joins a detection with its object classes for presentation.
type DetectionView struct {
	Detection
	ObjectClasses []string
}

// RecentDetections returns the newest detections with their object classes,
// most recent first.
func (s *Store) RecentDetections(ctx context.Context, limit int) ([]DetectionView, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, image_id, detected_at, error_score, anomaly, description
         FROM detections ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent detections: %w", err)
	}
	defer rows.Close()

	var views []DetectionView
	for rows.Next() {
		var (
			view    DetectionView
			raw     string
			anomaly int
		)
		if err := rows.Scan(&view.ID, &view.ImageID, &raw, &view.ErrorScore, &anomaly, &view.Description); err != nil {
			return nil, err
		}
		view.Anomaly = anomaly != 0
		if t, err := parseTimeString(raw); err == nil {
			view.DetectedAt = t
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range views {
		classes, err := s.objectClasses(ctx, views[i].ID)
		if err != nil {
			return nil, err
		}
		views[i].ObjectClasses = classes
	}
	return views, nil
}

func (s *Store) objectClasses(ctx context.Context, detectionID int64) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT class FROM detected_objects WHERE detection_id = ? ORDER BY id`,
		detectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query detected objects: %w", err)
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// RecentAudit returns the newest audit entries, most recent first.
func (s *Store) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, logged_at, action, actor_id, source
         FROM audit_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry AuditEntry
			raw   string
		)
		if err := rows.Scan(&entry.ID, &raw, &entry.Action, &entry.ActorID, &entry.Source); err != nil {
			return nil, err
		}
		if t, err := parseTimeString(raw); err == nil {
			entry.LoggedAt = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AuditActions returns the actions of all audit entries in insertion order.
// Used by tests to assert processing order determinism.
func (s *Store) AuditActions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT action FROM audit_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query audit actions: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var action string
		if err := rows.Scan(&action); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}
