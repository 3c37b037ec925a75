//go:build !linux && !darwin && !windows

package serial

func platformSources() []Source {
	return nil
}
