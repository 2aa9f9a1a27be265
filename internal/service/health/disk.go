package health

import (
	"context"
	"errors"
	"os"
)

var errDiskUsageUnsupported = errors.New("disk usage is not supported on this platform")

// DiskSpace reports DOWN when free space on the filesystem holding Path
// falls below Threshold bytes.
type DiskSpace struct {
	Path      string
	Threshold uint64

	// usage is swapped in tests; nil means the platform implementation.
	usage func(path string) (total, free uint64, err error)
}

// NewDiskSpace returns a disk space indicator for path.
func NewDiskSpace(path string, threshold uint64) *DiskSpace {
	return &DiskSpace{Path: path, Threshold: threshold}
}

// Name implements Indicator.
func (d *DiskSpace) Name() string { return "diskSpace" }

// Health implements Indicator.
func (d *DiskSpace) Health(context.Context) Component {
	details := map[string]any{
		"path":      d.Path,
		"threshold": d.Threshold,
		"exists":    false,
	}
	if _, err := os.Stat(d.Path); err == nil {
		details["exists"] = true
	}

	usage := d.usage
	if usage == nil {
		usage = diskUsage
	}
	total, free, err := usage(d.Path)
	if err != nil {
		details["error"] = err.Error()
		return Component{Status: StatusDown, Details: details}
	}
	details["total"] = total
	details["free"] = free

	status := StatusUp
	if free < d.Threshold {
		status = StatusDown
	}
	return Component{Status: status, Details: details}
}
