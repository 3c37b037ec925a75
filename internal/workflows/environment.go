package workflows

import (
	"fmt"
	"sync"

	"github.com/neo-th/iot-cache/internal/audit"
	"github.com/neo-th/iot-cache/internal/configs"
	"github.com/neo-th/iot-cache/internal/serial"
	"github.com/neo-th/iot-cache/internal/store"
	"github.com/neo-th/iot-cache/internal/vault"
)

var (
	resolverMu       sync.Mutex
	resolverOverride serial.Resolver
	resolverCache    = map[string]*serial.Cached{}
)

// SetResolver replaces hardware serial resolution for every workflow until
// the returned restore func is called. Used by tests and embedders.
func SetResolver(r serial.Resolver) (restore func()) {
	resolverMu.Lock()
	defer resolverMu.Unlock()

	previous := resolverOverride
	resolverOverride = r
	return func() {
		resolverMu.Lock()
		defer resolverMu.Unlock()
		resolverOverride = previous
	}
}

// resolverFor returns the resolver for the configured source. Real sources
// are read at most once per process.
func resolverFor(config *configs.Config) (serial.Resolver, error) {
	resolverMu.Lock()
	defer resolverMu.Unlock()

	if resolverOverride != nil {
		return resolverOverride, nil
	}

	if cached, ok := resolverCache[config.Serial.Source]; ok {
		return cached, nil
	}

	source, err := serial.SourceByName(config.Serial.Source)
	if err != nil {
		return nil, err
	}

	cached := serial.NewCached(source)
	resolverCache[config.Serial.Source] = cached
	return cached, nil
}

func loadConfig() (*configs.Config, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}

func newManager(config *configs.Config) (*store.Manager, error) {
	resolver, err := resolverFor(config)
	if err != nil {
		return nil, err
	}
	return store.NewManager(vault.New(resolver)), nil
}

// record appends entry to the audit trail when auditing is enabled.
func record(config *configs.Config, entry audit.Entry, err error) {
	if config == nil || !config.Audit.Enabled {
		return
	}
	audit.Log(entry.Finish(err))
}
