package hoststats

import "testing"

func TestParseCPUSample(t *testing.T) {
	data := "cpu  100 0 50 800 50 0 0 0 0 0\ncpu0 50 0 25 400 25 0 0 0 0 0\n"
	sample, err := parseCPUSample(data)
	if err != nil {
		t.Fatalf("parseCPUSample failed: %v", err)
	}
	if sample.total != 1000 {
		t.Fatalf("expected total 1000, got %d", sample.total)
	}
	if sample.idle != 850 {
		t.Fatalf("expected idle 850 (idle+iowait), got %d", sample.idle)
	}
}

func TestParseCPUSampleNoAggregateLine(t *testing.T) {
	if _, err := parseCPUSample("intr 12345\n"); err == nil {
		t.Fatal("expected error for missing cpu line")
	}
}

func TestFormatCPUPercent(t *testing.T) {
	prev := cpuSample{idle: 800, total: 1000}
	cur := cpuSample{idle: 850, total: 1100}
	if got := formatCPUPercent(prev, cur); got != "50.0%" {
		t.Fatalf("expected 50.0%%, got %q", got)
	}
	// Counter reset must not divide by a negative delta.
	if got := formatCPUPercent(cur, prev); got != "0.0%" {
		t.Fatalf("expected 0.0%% on reset, got %q", got)
	}
}

func TestParseNetSampleSkipsLoopback(t *testing.T) {
	data := `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:  999999     100    0    0    0     0          0         0   999999     100    0    0    0     0       0          0
  eth0: 2048000    2000    0    0    0     0          0         0  1024000    1000    0    0    0     0       0          0
 wlan0: 1024000    1000    0    0    0     0          0         0   512000     500    0    0    0     0       0          0
`
	sample, err := parseNetSample(data)
	if err != nil {
		t.Fatalf("parseNetSample failed: %v", err)
	}
	if sample.rx != 3072000 {
		t.Fatalf("unexpected rx total: %d", sample.rx)
	}
	if sample.tx != 1536000 {
		t.Fatalf("unexpected tx total: %d", sample.tx)
	}
}

func TestParseGPUTemp(t *testing.T) {
	if got := parseGPUTemp("temp=48.2'C\n"); got != "48.2C" {
		t.Fatalf("unexpected gpu temp: %q", got)
	}
	if got := parseGPUTemp(""); got != "N/A" {
		t.Fatalf("expected N/A for empty output, got %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := formatRate(10240, 2); got != "5.00" {
		t.Fatalf("unexpected rate: %q", got)
	}
	if got := formatRate(100, 0); got != "0.00" {
		t.Fatalf("expected zero rate for zero elapsed, got %q", got)
	}
}

func TestCounterDeltaClampsOnReset(t *testing.T) {
	if got := counterDelta(5, 10); got != 0 {
		t.Fatalf("expected clamp to zero, got %d", got)
	}
}
