package classify

import (
	"path/filepath"
	"strings"
)

// Kind identifies what a dropped file contains, decided purely by filename
// convention.
type Kind string

const (
	KindImage         Kind = "image"
	KindSensorReading Kind = "sensor_reading"
	KindHostStats     Kind = "host_stats"
	KindDetectionRow  Kind = "detection_row"
	KindUnrecognized  Kind = "unrecognized"
)

// sensorPrefix marks inertial/servo/distance telemetry files written by the
// sensor bridge.
const sensorPrefix = "arduino_"

// hostStatsNames are the exact filenames the host-stats producer writes.
var hostStatsNames = map[string]struct{}{
	"pi5_latest.json": {},
	"pi5_status.json": {},
}

// Classify maps a filename to its artifact kind. Matching is
// case-insensitive. Only .jpg and .json files are ever classified; the
// detection tail log is addressed by its configured path, not discovered
// here.
func Classify(name string) Kind {
	lowered := strings.ToLower(name)
	switch filepath.Ext(lowered) {
	case ".jpg":
		return KindImage
	case ".json":
		if strings.HasPrefix(lowered, sensorPrefix) {
			return KindSensorReading
		}
		if _, ok := hostStatsNames[lowered]; ok {
			return KindHostStats
		}
		return KindUnrecognized
	default:
		return KindUnrecognized
	}
}
