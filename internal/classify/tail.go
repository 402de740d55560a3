package classify

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// detectionFieldCount is the required column count of a detection row:
// image_id, timestamp, error_score, anomaly_flag, detected_objects.
const detectionFieldCount = 5

// DetectionRow is a normalized anomaly-detection record parsed from the tail
// log.
type DetectionRow struct {
	ImageID    int64
	Timestamp  time.Time
	ErrorScore float64
	Anomaly    bool
	Objects    []string
}

// LastDetectionRow extracts the newest row of the detection tail log. The
// log is a live tail: a header line followed by CSV rows, of which only the
// last is considered per tick. Returns (nil, false, nil) when the log holds
// no data row yet or the last row is too short to use; both are normal
// states, not errors. A malformed last row is a ParseError.
func LastDetectionRow(name string, data []byte) (*DetectionRow, bool, error) {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	// First line is the header.
	if len(lines) < 2 {
		return nil, false, nil
	}

	reader := csv.NewReader(strings.NewReader(lines[len(lines)-1]))
	record, err := reader.Read()
	if err != nil {
		return nil, false, parseError(KindDetectionRow, name, err)
	}
	// Short rows are dropped without error; the producer may still be
	// writing the line.
	if len(record) < detectionFieldCount {
		return nil, false, nil
	}

	imageID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return nil, false, parseError(KindDetectionRow, name, fmt.Errorf("image reference: %w", err))
	}
	timestamp, err := parseTimestamp(record[1])
	if err != nil {
		return nil, false, parseError(KindDetectionRow, name, err)
	}
	errorScore, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return nil, false, parseError(KindDetectionRow, name, fmt.Errorf("error score: %w", err))
	}
	anomaly := strings.EqualFold(strings.TrimSpace(record[3]), "true")

	// The object list is normally one quoted CSV field; tolerate producers
	// that forget the quoting by rejoining the overflow columns.
	objectField := strings.Join(record[4:], ",")
	var objects []string
	for _, segment := range strings.Split(objectField, ",") {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			objects = append(objects, trimmed)
		}
	}

	return &DetectionRow{
		ImageID:    imageID,
		Timestamp:  timestamp,
		ErrorScore: errorScore,
		Anomaly:    anomaly,
		Objects:    objects,
	}, true, nil
}
