package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SensorReading is a normalized inertial/servo/distance telemetry sample.
type SensorReading struct {
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

// HostStats is a normalized host-resource telemetry snapshot. Field values
// keep the producer's human-readable formatting.
type HostStats struct {
	RecordedAt time.Time
	CPU        string
	RAM        string
	CPUTemp    string
	GPUTemp    string
	Upload     string
	Download   string
}

// flexFloat accepts a JSON number or a numeric string; the sensor bridge
// emits strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}
		*f = flexFloat(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*f = flexFloat(value)
	return nil
}

type sensorPayload struct {
	Gyro struct {
		X flexFloat `json:"X"`
		Y flexFloat `json:"Y"`
		Z flexFloat `json:"Z"`
	} `json:"Gyro"`
	ServoAngles struct {
		Neck flexFloat `json:"Neck"`
		Head flexFloat `json:"Head"`
	} `json:"ServoAngles"`
	Distances struct {
		Front flexFloat `json:"Front"`
		Left  flexFloat `json:"Left"`
		Right flexFloat `json:"Right"`
	} `json:"Distances"`
	MotorState string `json:"MotorState"`
	Timestamp  string `json:"Timestamp"`
}

type hostStatsPayload struct {
	CPU       string `json:"CPU"`
	RAM       string `json:"RAM"`
	CPUTemp   string `json:"CPU Temp"`
	GPUTemp   string `json:"GPU Temp"`
	Upload    string `json:"Upload (KB/s)"`
	Download  string `json:"Download (KB/s)"`
	Timestamp string `json:"Timestamp"`
}

// ParseSensorFile parses a sensor JSON body into one reading per element.
// The body may be a single object or an array of objects; every element is
// parsed independently by the caller's contract, but a malformed document is
// a single ParseError for the whole file.
func ParseSensorFile(name string, data []byte) ([]SensorReading, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, parseError(KindSensorReading, name, fmt.Errorf("empty body"))
	}

	var payloads []sensorPayload
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return nil, parseError(KindSensorReading, name, err)
		}
	} else {
		var single sensorPayload
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, parseError(KindSensorReading, name, err)
		}
		payloads = []sensorPayload{single}
	}

	readings := make([]SensorReading, 0, len(payloads))
	for i, p := range payloads {
		recordedAt, err := parseTimestamp(p.Timestamp)
		if err != nil {
			return nil, parseError(KindSensorReading, name, fmt.Errorf("element %d: %w", i, err))
		}
		readings = append(readings, SensorReading{
			RecordedAt:    recordedAt,
			GyroX:         float64(p.Gyro.X),
			GyroY:         float64(p.Gyro.Y),
			GyroZ:         float64(p.Gyro.Z),
			NeckServo:     float64(p.ServoAngles.Neck),
			HeadServo:     float64(p.ServoAngles.Head),
			FrontDistance: float64(p.Distances.Front),
			LeftDistance:  float64(p.Distances.Left),
			RightDistance: float64(p.Distances.Right),
			MotorState:    strings.TrimSpace(p.MotorState),
		})
	}
	return readings, nil
}

// ParseHostStatsFile parses a host-resource snapshot. Single object only.
func ParseHostStatsFile(name string, data []byte) (HostStats, error) {
	var payload hostStatsPayload
	if err := json.Unmarshal(bytes.TrimSpace(data), &payload); err != nil {
		return HostStats{}, parseError(KindHostStats, name, err)
	}
	recordedAt, err := parseTimestamp(payload.Timestamp)
	if err != nil {
		return HostStats{}, parseError(KindHostStats, name, err)
	}
	return HostStats{
		RecordedAt: recordedAt,
		CPU:        payload.CPU,
		RAM:        payload.RAM,
		CPUTemp:    payload.CPUTemp,
		GPUTemp:    payload.GPUTemp,
		Upload:     payload.Upload,
		Download:   payload.Download,
	}, nil
}

// timestampLayouts covers the producer formats: the sensor bridge writes
// "2006-01-02 15:04:05", the inference service writes ISO-8601.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", trimmed)
}
