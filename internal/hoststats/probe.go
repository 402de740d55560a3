package hoststats

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// hostProber samples Linux host metrics from procfs and sysfs. CPU and
// network figures are deltas, so the first sample after start reports zero
// rates.
type hostProber struct {
	prevCPU cpuSample
	prevNet netSample
	prevAt  time.Time
}

func newHostProber() *hostProber {
	p := &hostProber{}
	p.prevCPU, _ = readCPUSample()
	p.prevNet, _ = readNetSample()
	p.prevAt = time.Now()
	return p
}

func (p *hostProber) Snapshot(ctx context.Context) (Snapshot, error) {
	now := time.Now()
	snap := Snapshot{At: now}

	cpu, err := readCPUSample()
	if err == nil {
		snap.CPU = formatCPUPercent(p.prevCPU, cpu)
		p.prevCPU = cpu
	} else {
		snap.CPU = "N/A"
	}

	snap.RAM = formatRAM()

	snap.CPUTemp = readCPUTemp()
	snap.GPUTemp = readGPUTemp(ctx)

	elapsed := now.Sub(p.prevAt).Seconds()
	net, err := readNetSample()
	if err == nil && elapsed > 0 {
		snap.Upload = formatRate(counterDelta(net.tx, p.prevNet.tx), elapsed)
		snap.Download = formatRate(counterDelta(net.rx, p.prevNet.rx), elapsed)
		p.prevNet = net
	} else {
		snap.Upload = "0.00"
		snap.Download = "0.00"
	}
	p.prevAt = now

	return snap, nil
}

type cpuSample struct {
	idle  uint64
	total uint64
}

func readCPUSample() (cpuSample, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return cpuSample{}, err
	}
	return parseCPUSample(string(data))
}

// parseCPUSample extracts the aggregate cpu line; idle includes iowait.
func parseCPUSample(data string) (cpuSample, error) {
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}
		var sample cpuSample
		for i, field := range fields[1:] {
			value, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return cpuSample{}, fmt.Errorf("cpu counter %q: %w", field, err)
			}
			sample.total += value
			if i == 3 || i == 4 {
				sample.idle += value
			}
		}
		return sample, nil
	}
	return cpuSample{}, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

func formatCPUPercent(prev, cur cpuSample) string {
	totalDelta := cur.total - prev.total
	if cur.total <= prev.total || totalDelta == 0 {
		return "0.0%"
	}
	idleDelta := cur.idle - prev.idle
	busy := 100 * float64(totalDelta-idleDelta) / float64(totalDelta)
	return fmt.Sprintf("%.1f%%", busy)
}

func formatRAM() string {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return "N/A"
	}
	usedBytes := float64(info.Totalram-info.Freeram) * float64(info.Unit)
	return fmt.Sprintf("%.1f MB", usedBytes/(1024*1024))
}

func readCPUTemp() string {
	data, err := os.ReadFile("/sys/class/thermal/thermal_zone0/temp")
	if err != nil {
		return "N/A"
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1fC", milli/1000)
}

// readGPUTemp shells out to the firmware tool on Raspberry Pi class
// hardware; anywhere else it degrades to "N/A".
func readGPUTemp(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "vcgencmd", "measure_temp").Output()
	if err != nil {
		return "N/A"
	}
	return parseGPUTemp(string(out))
}

// parseGPUTemp extracts "48.2C" from the firmware output "temp=48.2'C".
func parseGPUTemp(out string) string {
	trimmed := strings.TrimSpace(out)
	trimmed = strings.TrimPrefix(trimmed, "temp=")
	trimmed = strings.ReplaceAll(trimmed, "'", "")
	if trimmed == "" {
		return "N/A"
	}
	return trimmed
}

type netSample struct {
	rx uint64
	tx uint64
}

func readNetSample() (netSample, error) {
	data, err := os.ReadFile("/proc/net/dev")
	if err != nil {
		return netSample{}, err
	}
	return parseNetSample(string(data))
}

// parseNetSample sums receive/transmit byte counters over all interfaces
// except loopback.
func parseNetSample(data string) (netSample, error) {
	var sample netSample
	for _, line := range strings.Split(data, "\n") {
		name, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(name) == "lo" {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 9 {
			continue
		}
		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			continue
		}
		sample.rx += rx
		sample.tx += tx
	}
	return sample, nil
}

// counterDelta tolerates counter resets by clamping to zero.
func counterDelta(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func formatRate(deltaBytes uint64, elapsedSeconds float64) string {
	if elapsedSeconds <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(deltaBytes)/1024/elapsedSeconds)
}
