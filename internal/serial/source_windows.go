//go:build windows

package serial

import "golang.org/x/sys/windows/registry"

type registrySource struct {
	name  string
	path  string
	value string
}

func (r registrySource) Name() string { return r.name }

func (r registrySource) Read() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, r.path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(r.value)
	return value, err
}

func platformSources() []Source {
	return []Source{
		registrySource{name: "machine-guid", path: `SOFTWARE\Microsoft\Cryptography`, value: "MachineGuid"},
	}
}
