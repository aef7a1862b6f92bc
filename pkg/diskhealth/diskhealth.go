// Package diskhealth checks SMART health verdicts through smartctl.
package diskhealth

import (
	"context"
	"strings"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/system"
)

// Verdict is the parsed overall-health self-assessment.
type Verdict string

const (
	Passed  Verdict = "PASSED"
	Failed  Verdict = "FAILED"
	Unknown Verdict = "UNKNOWN"
)

// Result is the health verdict for one device.
type Result struct {
	Device  string
	Verdict Verdict
	// Detail carries the raw verdict line for the report.
	Detail string
}

// smartctl exit status is a bitmask; bit 3 (value 8) means a failing disk,
// which is a valid answer rather than a command error. See smartctl(8).
const failingDiskBit = 8

// Available reports whether smartctl is installed.
func Available(r system.Runner) bool {
	return system.Available(r, "smartctl")
}

// Scan lists SMART-capable devices via smartctl --scan. Each line looks
// like "/dev/sda -d sat # ...", and only the device path matters here.
func Scan(ctx context.Context, r system.Runner) ([]string, error) {
	out, err := r.SudoOutput(ctx, "smartctl", "--scan")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDiskScan, "smartctl --scan failed")
	}

	var devices []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		devices = append(devices, fields[0])
	}
	return devices, nil
}

// Check runs the SMART overall-health test for a device.
func Check(ctx context.Context, r system.Runner, device string) (Result, error) {
	log := logging.GetLogger("diskhealth")

	out, err := r.SudoOutput(ctx, "smartctl", "-H", device)
	if err != nil && system.ExitCode(err)&failingDiskBit == 0 {
		return Result{}, errors.Wrapf(err, errors.ErrDiskHealth,
			"smartctl -H failed for %s", device)
	}

	result := parseVerdict(device, out)
	log.Info().Str("device", device).Str("verdict", string(result.Verdict)).Msg("SMART health checked")
	return result, nil
}

func parseVerdict(device, out string) Result {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		// ATA: "SMART overall-health self-assessment test result: PASSED"
		// NVMe: "SMART Health Status: OK"
		var verdict string
		switch {
		case strings.Contains(line, "self-assessment test result:"):
			parts := strings.SplitN(line, ":", 2)
			verdict = strings.TrimSpace(parts[1])
		case strings.HasPrefix(line, "SMART Health Status:"):
			verdict = strings.TrimSpace(strings.TrimPrefix(line, "SMART Health Status:"))
		default:
			continue
		}

		result := Result{Device: device, Detail: line}
		switch strings.ToUpper(verdict) {
		case "PASSED", "OK":
			result.Verdict = Passed
		default:
			result.Verdict = Failed
		}
		return result
	}

	return Result{Device: device, Verdict: Unknown, Detail: "no health verdict in smartctl output"}
}
