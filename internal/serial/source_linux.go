//go:build linux

package serial

// dmi-serial comes first: it is the identifier existing store files were encrypted with.
func platformSources() []Source {
	return []Source{
		fileSource{name: "dmi-serial", path: "/sys/class/dmi/id/product_serial"},
		fileSource{name: "dmi-uuid", path: "/sys/class/dmi/id/product_uuid"},
		fileSource{name: "machine-id", path: "/etc/machine-id"},
	}
}
