//go:build darwin

package serial

import "golang.org/x/sys/unix"

// sysctlSource reads a string sysctl. kern.uuid carries the hardware UUID
// without invoking ioreg or system_profiler.
type sysctlSource struct {
	name string
	key  string
}

func (s sysctlSource) Name() string { return s.name }

func (s sysctlSource) Read() (string, error) {
	return unix.Sysctl(s.key)
}

func platformSources() []Source {
	return []Source{
		sysctlSource{name: "platform-uuid", key: "kern.uuid"},
	}
}
