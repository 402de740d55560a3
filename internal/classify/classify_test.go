package classify_test

import (
	"errors"
	"testing"

	"scribe/internal/classify"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want classify.Kind
	}{
		{"photo_20250605_120000_123.jpg", classify.KindImage},
		{"FRAME.JPG", classify.KindImage},
		{"arduino_20250605_120000.json", classify.KindSensorReading},
		{"Arduino_20250605_120000.json", classify.KindSensorReading},
		{"pi5_latest.json", classify.KindHostStats},
		{"PI5_STATUS.JSON", classify.KindHostStats},
		{"random.json", classify.KindUnrecognized},
		{"notes.txt", classify.KindUnrecognized},
		{"frame.jpeg", classify.KindUnrecognized},
	}
	for _, tc := range cases {
		if got := classify.Classify(tc.name); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseSensorFileSingleObject(t *testing.T) {
	body := `{
		"Gyro": {"X": "0.12", "Y": "-0.5", "Z": "1.0"},
		"ServoAngles": {"Neck": "90", "Head": "45"},
		"Distances": {"Front": "102.5", "Left": "30", "Right": "28"},
		"MotorState": "FORWARD",
		"Timestamp": "2025-06-05 12:00:00"
	}`

	readings, err := classify.ParseSensorFile("arduino_1.json", []byte(body))
	if err != nil {
		t.Fatalf("ParseSensorFile failed: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected one reading, got %d", len(readings))
	}
	r := readings[0]
	if r.GyroX != 0.12 || r.GyroY != -0.5 || r.GyroZ != 1.0 {
		t.Fatalf("unexpected gyro values: %+v", r)
	}
	if r.NeckServo != 90 || r.HeadServo != 45 {
		t.Fatalf("unexpected servo values: %+v", r)
	}
	if r.FrontDistance != 102.5 {
		t.Fatalf("unexpected distance: %+v", r)
	}
	if r.MotorState != "FORWARD" {
		t.Fatalf("unexpected motor state: %q", r.MotorState)
	}
	if r.RecordedAt.IsZero() {
		t.Fatal("expected parsed timestamp")
	}
}

func TestParseSensorFileBatch(t *testing.T) {
	body := `[
		{"Gyro": {"X": 1, "Y": 2, "Z": 3}, "MotorState": "STOP", "Timestamp": "2025-06-05 12:00:00"},
		{"Gyro": {"X": 4, "Y": 5, "Z": 6}, "MotorState": "STOP", "Timestamp": "2025-06-05 12:00:01"},
		{"Gyro": {"X": 7, "Y": 8, "Z": 9}, "MotorState": "STOP", "Timestamp": "2025-06-05 12:00:02"}
	]`

	readings, err := classify.ParseSensorFile("arduino_batch.json", []byte(body))
	if err != nil {
		t.Fatalf("ParseSensorFile failed: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("expected three readings, got %d", len(readings))
	}
	if readings[2].GyroZ != 9 {
		t.Fatalf("unexpected last element: %+v", readings[2])
	}
}

func TestParseSensorFileMalformed(t *testing.T) {
	_, err := classify.ParseSensorFile("arduino_bad.json", []byte(`{"Gyro": `))
	var parseErr *classify.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Kind != classify.KindSensorReading || parseErr.File != "arduino_bad.json" {
		t.Fatalf("unexpected ParseError contents: %+v", parseErr)
	}
}

func TestParseHostStatsFile(t *testing.T) {
	body := `{
		"CPU": "12.3%",
		"RAM": "512.0 MB",
		"CPU Temp": "48.2°C",
		"GPU Temp": "N/A",
		"Upload (KB/s)": "10.50",
		"Download (KB/s)": "220.75",
		"Timestamp": "2025-06-05 12:00:00"
	}`

	stats, err := classify.ParseHostStatsFile("pi5_latest.json", []byte(body))
	if err != nil {
		t.Fatalf("ParseHostStatsFile failed: %v", err)
	}
	if stats.CPU != "12.3%" || stats.RAM != "512.0 MB" || stats.GPUTemp != "N/A" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLastDetectionRowTakesOnlyLast(t *testing.T) {
	data := "image_id,timestamp,error_score,anomaly,objects\n" +
		"1,2025-06-05T12:00:00,0.10,false,\n" +
		"2,2025-06-05T12:00:05,0.90,TRUE,\"person, dog\"\n"

	row, ok, err := classify.LastDetectionRow("ai_log.txt", []byte(data))
	if err != nil {
		t.Fatalf("LastDetectionRow failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a row")
	}
	if row.ImageID != 2 {
		t.Fatalf("expected newest row (image 2), got %d", row.ImageID)
	}
	if !row.Anomaly {
		t.Fatal("expected anomaly flag from case-insensitive TRUE")
	}
	if len(row.Objects) != 2 || row.Objects[0] != "person" || row.Objects[1] != "dog" {
		t.Fatalf("unexpected objects: %v", row.Objects)
	}
}

func TestLastDetectionRowHeaderOnly(t *testing.T) {
	data := "image_id,timestamp,error_score,anomaly,objects\n"
	row, ok, err := classify.LastDetectionRow("ai_log.txt", []byte(data))
	if err != nil || ok || row != nil {
		t.Fatalf("expected no row for header-only log, got row=%v ok=%v err=%v", row, ok, err)
	}
}

func TestLastDetectionRowShortRowDropped(t *testing.T) {
	data := "image_id,timestamp,error_score,anomaly,objects\n" +
		"5,2025-06-05T12:00:00,0.5\n"
	row, ok, err := classify.LastDetectionRow("ai_log.txt", []byte(data))
	if err != nil || ok || row != nil {
		t.Fatalf("short row must be dropped silently, got row=%v ok=%v err=%v", row, ok, err)
	}
}

func TestLastDetectionRowMalformed(t *testing.T) {
	data := "image_id,timestamp,error_score,anomaly,objects\n" +
		"not-a-number,2025-06-05T12:00:00,0.5,false,\n"
	_, _, err := classify.LastDetectionRow("ai_log.txt", []byte(data))
	var parseErr *classify.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLastDetectionRowEmptyObjectSegmentsDiscarded(t *testing.T) {
	data := "image_id,timestamp,error_score,anomaly,objects\n" +
		"3,2025-06-05T12:00:00,0.2,false,\"person,, ,dog,\"\n"
	row, ok, err := classify.LastDetectionRow("ai_log.txt", []byte(data))
	if err != nil || !ok {
		t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
	}
	if len(row.Objects) != 2 {
		t.Fatalf("expected empty segments discarded, got %v", row.Objects)
	}
}
