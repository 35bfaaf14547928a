package config

import (
	"errors"
	"os"

	"github.com/lc/umbra/internal/codec"
	"github.com/lc/umbra/internal/filesys"
	"github.com/lc/umbra/internal/log"
	"github.com/lc/umbra/internal/registry"
)

// ErrNoConfig is returned when none of the searched configuration files
// exist.
var ErrNoConfig = errors.New("configuration file not found")

const (
	// LocalStructuredPath is the working-directory structured config file.
	LocalStructuredPath = "umbra.toml"
	// SystemStructuredPath is the system-wide structured config file.
	SystemStructuredPath = "/etc/umbra/umbra.toml"
	// LocalLegacyPath is the working-directory legacy config file.
	LocalLegacyPath = "pihole-FTL.conf"
	// SystemLegacyPath is the system-wide legacy config file.
	SystemLegacyPath = "/etc/pihole/pihole-FTL.conf"
)

// Provider defines the interface for loading the effective configuration.
type Provider interface {
	Load() (*registry.Registry, error)
}

// FSProvider implements Provider using the local filesystem. It probes its
// path lists in order and uses the first file of each format that exists.
type FSProvider struct {
	fs              filesys.FS
	structuredPaths []string
	legacyPaths     []string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a provider with the default search order for both formats.
func New() *FSProvider {
	return NewWithFS(filesys.OS(),
		[]string{LocalStructuredPath, SystemStructuredPath},
		[]string{LocalLegacyPath, SystemLegacyPath})
}

// NewWithFS creates a provider with a specific filesystem and path lists.
func NewWithFS(fsys filesys.FS, structuredPaths, legacyPaths []string) *FSProvider {
	return &FSProvider{
		fs:              fsys,
		structuredPaths: structuredPaths,
		legacyPaths:     legacyPaths,
	}
}

// Load builds the effective configuration: registry defaults, then the
// structured document, then the legacy file for whatever the structured
// document left untouched. The returned registry is usable even when the
// error is non-nil; the error aggregates per-item diagnostics.
func (p *FSProvider) Load() (*registry.Registry, error) {
	reg := registry.New()
	var errs error

	if data, path, ok := p.readFirst(p.structuredPaths); ok {
		st, err := codec.ParseStructured(data)
		if err != nil {
			// a document that does not parse must not half-apply
			log.Warnf("ignoring %s: %v", path, err)
		} else {
			log.Debugf("reading structured config from %s", path)
			errs = st.Apply(reg)
		}
	}

	if f, path, ok := p.openFirst(p.legacyPaths); ok {
		log.Debugf("reading legacy config from %s", path)
		sc := codec.NewScanner(f)
		if err := codec.NewLegacy(sc).Apply(reg); err != nil {
			errs = errors.Join(errs, err)
		}
		sc.Close()
		f.Close()
	}

	if reg.RecomputeDebug() != 0 {
		log.EnableDebug()
		reportDebug(reg)
	}
	return reg, errs
}

// readFirst returns the contents of the first existing path.
func (p *FSProvider) readFirst(paths []string) (data []byte, path string, ok bool) {
	for _, path := range paths {
		data, err := p.fs.ReadFile(path)
		if err == nil {
			return data, path, true
		}
		if !os.IsNotExist(err) {
			log.Warnf("could not read %s: %v", path, err)
		}
	}
	return nil, "", false
}

// openFirst opens the first existing path. The caller closes the file.
func (p *FSProvider) openFirst(paths []string) (f *os.File, path string, ok bool) {
	for _, path := range paths {
		f, err := p.fs.Open(path)
		if err == nil {
			return f, path, true
		}
		if !os.IsNotExist(err) {
			log.Warnf("could not open %s: %v", path, err)
		}
	}
	return nil, "", false
}

// reportDebug lists every debug category once verbose logging has been
// switched on, so the log records which subsystems will trace.
func reportDebug(reg *registry.Registry) {
	log.Debugf("debug flags (%d categories):", registry.DebugCategoryCount)
	for _, it := range reg.DebugItems() {
		state := "no"
		if it.Value.B {
			state = "yes"
		}
		log.Debugf("  %-27s %s", it.Name(), state)
	}
}
