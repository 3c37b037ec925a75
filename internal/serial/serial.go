package serial

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

// Resolver yields the passphrase used to derive encryption keys.
type Resolver interface {
	Resolve() (string, error)
}

// Source is one platform-specific way of reading a hardware identifier.
type Source interface {
	// Name identifies the source in configuration, e.g. "dmi-serial".
	Name() string
	// Read returns the raw identifier.
	Read() (string, error)
}

// Static is a Resolver that always returns the same value.
type Static string

// Resolve returns the static value, or ErrSerialUnavailable when it is empty.
func (s Static) Resolve() (string, error) {
	if s == "" {
		return "", fmt.Errorf("static serial is empty: %w", kerrors.ErrSerialUnavailable)
	}
	return string(s), nil
}

// Cached resolves a Source at most once per process.
type Cached struct {
	source Source

	once   sync.Once
	serial string
	err    error
}

// NewCached returns a Resolver backed by source. A nil source always fails.
func NewCached(source Source) *Cached {
	return &Cached{source: source}
}

// Resolve reads the source on first use and returns the remembered result afterwards.
func (c *Cached) Resolve() (string, error) {
	c.once.Do(func() {
		c.serial, c.err = resolve(c.source)
	})
	return c.serial, c.err
}

// SourceName reports which source backs the resolver, or "" for none.
func (c *Cached) SourceName() string {
	if c.source == nil {
		return ""
	}
	return c.source.Name()
}

func resolve(source Source) (string, error) {
	if source == nil {
		return "", fmt.Errorf("no serial source for this platform: %w", kerrors.ErrSerialUnavailable)
	}

	raw, err := source.Read()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w: %w", source.Name(), kerrors.ErrSerialUnavailable, err)
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%s returned an empty value: %w", source.Name(), kerrors.ErrSerialUnavailable)
	}
	return value, nil
}

// DefaultSource returns the preferred source for the running platform, or nil when unsupported.
func DefaultSource() Source {
	sources := platformSources()
	if len(sources) == 0 {
		return nil
	}
	return sources[0]
}

// SourceByName returns the named source for the running platform. An empty
// name selects DefaultSource.
func SourceByName(name string) (Source, error) {
	if name == "" {
		if src := DefaultSource(); src != nil {
			return src, nil
		}
		return nil, fmt.Errorf("no serial source for this platform: %w", kerrors.ErrSerialUnavailable)
	}

	for _, src := range platformSources() {
		if src.Name() == name {
			return src, nil
		}
	}
	return nil, fmt.Errorf("unknown serial source %q (available: %s): %w",
		name, strings.Join(SourceNames(), ", "), kerrors.ErrSerialUnavailable)
}

// SourceNames lists the sources available on the running platform, default first.
func SourceNames() []string {
	sources := platformSources()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())
	}
	if len(names) > 1 {
		sort.Strings(names[1:])
	}
	return names
}

// fileSource reads an identifier exposed by the OS as a file.
type fileSource struct {
	name string
	path string
}

func (f fileSource) Name() string { return f.name }

func (f fileSource) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
