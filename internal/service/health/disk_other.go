//go:build !(linux || darwin || freebsd)

package health

func diskUsage(string) (total, free uint64, err error) {
	return 0, 0, errDiskUsageUnsupported
}
