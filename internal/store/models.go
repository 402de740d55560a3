package store

import "time"

// Image is a recorded camera frame. Rows are immutable after insertion; the
// id is assigned by the store and handed to downstream consumers through the
// sidecar file.
type Image struct {
	ID         int64
	CapturedAt time.Time
	Path       string
	LocationID int64
	RobotID    int64
	ObjectID   int64
}

// SensorReading is one inertial/servo/distance telemetry sample. A batch file
// produces one row per element.
type SensorReading struct {
	ID            int64
	RecordedAt    time.Time
	GyroX         float64
	GyroY         float64
	GyroZ         float64
	NeckServo     float64
	HeadServo     float64
	FrontDistance float64
	LeftDistance  float64
	RightDistance float64
	MotorState    string
}

// HostStats is one host-resource telemetry snapshot. Values are stored
// verbatim as the producer formats them ("42.1%", "512.0 MB").
type HostStats struct {
	ID         int64
	RecordedAt time.Time
	CPU        string
	RAM        string
	CPUTemp    string
	GPUTemp    string
	Upload     string
	Download   string
}

// Detection is an anomaly-detection result referencing exactly one image.
// At most one detection exists per image.
type Detection struct {
	ID          int64
	ImageID     int64
	DetectedAt  time.Time
	ErrorScore  float64
	Anomaly     bool
	Description string
}

// DetectedObject names one object class found by a detection. Positions
// default to zero until measured.
type DetectedObject struct {
	ID          int64
	DetectionID int64
	Class       string
	Latitude    float64
	Longitude   float64
	RecordedAt  time.Time
}

// AuditEntry is one append-only record of a processing attempt.
type AuditEntry struct {
	ID       int64
	LoggedAt time.Time
	Action   string
	ActorID  int64
	Source   string
}

// Summary aggregates row counts per table for diagnostic output.
type Summary struct {
	Images          int
	SensorReadings  int
	HostStats       int
	Detections      int
	DetectedObjects int
	AuditEntries    int
}
