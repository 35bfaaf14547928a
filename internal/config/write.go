package config

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/lc/umbra/internal/codec"
	"github.com/lc/umbra/internal/filesys"
	"github.com/lc/umbra/internal/log"
	"github.com/lc/umbra/internal/registry"
)

// Write persists the registry as a structured document at path. The file is
// replaced atomically; a crash mid-write leaves the previous version intact.
func Write(fsys filesys.FS, path string, reg *registry.Registry) error {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, reg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := filesys.AtomicWrite(fsys, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Migrate reads the first legacy file found into a fresh registry and
// writes it out as a structured document at target. It returns the
// migrated registry and the legacy path it read. ErrNoConfig means no
// legacy file exists.
func (p *FSProvider) Migrate(target string) (*registry.Registry, string, error) {
	f, path, ok := p.openFirst(p.legacyPaths)
	if !ok {
		return nil, "", fmt.Errorf("%w: no legacy configuration to migrate", ErrNoConfig)
	}
	defer f.Close()

	reg := registry.New()
	sc := codec.NewScanner(f)
	if err := codec.NewLegacy(sc).Apply(reg); err != nil {
		// per-item diagnostics; migrate what was readable
		log.Debugf("migrating %s with diagnostics: %v", path, err)
	}
	sc.Close()
	return reg, path, Write(p.fs, target, reg)
}
