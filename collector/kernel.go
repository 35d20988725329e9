package collector

import (
	"github.com/shirou/gopsutil/v3/host"
	log "github.com/sirupsen/logrus"
)

// KernelRelease returns the running kernel's release string, or "" when it
// cannot be determined. The tcpstat column set varies by kernel release, so
// it is logged next to the discovered schema.
func KernelRelease() string {
	release, err := host.KernelVersion()
	if err != nil {
		log.WithError(err).Debug("kernel release unavailable")
		return ""
	}
	return release
}
