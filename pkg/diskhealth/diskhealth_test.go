package diskhealth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/testutil"
)

func TestScan(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("smartctl --scan",
		"/dev/sda -d sat # /dev/sda [SAT], ATA device\n/dev/nvme0 -d nvme # /dev/nvme0, NVMe device\n", nil)

	devices, err := Scan(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/sda", "/dev/nvme0"}, devices)
}

func TestScanFailure(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("smartctl --scan", 1, "permission denied")

	_, err := Scan(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDiskScan))
}

func TestCheckPassed(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("smartctl -H /dev/sda",
		"=== START OF READ SMART DATA SECTION ===\nSMART overall-health self-assessment test result: PASSED\n", nil)

	result, err := Check(context.Background(), r, "/dev/sda")
	require.NoError(t, err)
	assert.Equal(t, Passed, result.Verdict)
	assert.Equal(t, "/dev/sda", result.Device)
}

func TestCheckNVMeOK(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("smartctl -H /dev/nvme0", "SMART Health Status: OK\n", nil)

	result, err := Check(context.Background(), r, "/dev/nvme0")
	require.NoError(t, err)
	assert.Equal(t, Passed, result.Verdict)
}

func TestCheckFailingDiskIsAVerdictNotAnError(t *testing.T) {
	r := testutil.NewFakeRunner()
	// smartctl signals failing health via exit bit 3 while still printing
	// the verdict.
	err := errors.New(errors.ErrCommandFailed, "smartctl failed").WithDetail("exitCode", 8)
	r.Respond("smartctl -H /dev/sdb",
		"SMART overall-health self-assessment test result: FAILED!\n", err)

	result, checkErr := Check(context.Background(), r, "/dev/sdb")
	require.NoError(t, checkErr)
	assert.Equal(t, Failed, result.Verdict)
}

func TestCheckCommandError(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.FailWith("smartctl -H /dev/sdc", 1, "device open failed")

	_, err := Check(context.Background(), r, "/dev/sdc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDiskHealth))
}

func TestCheckNoVerdict(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Respond("smartctl -H /dev/sdd", "some unrelated output\n", nil)

	result, err := Check(context.Background(), r, "/dev/sdd")
	require.NoError(t, err)
	assert.Equal(t, Unknown, result.Verdict)
}
