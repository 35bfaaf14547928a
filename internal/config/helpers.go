package config

import (
	"strconv"

	"github.com/lc/umbra/internal/codec"
	"github.com/lc/umbra/internal/registry"
)

// Targeted reads for the handful of settings needed before the full load
// runs, such as deciding how much a crash report may contain. They read
// only the one value and never mutate a registry.

// PrivacyLevel returns the configured privacy level, consulting the
// structured document first and the legacy file second. The strictest
// level found wins; absence means show-everything.
func (p *FSProvider) PrivacyLevel() registry.PrivacyLevel {
	lvl := registry.PrivacyShowAll

	if st := p.parseStructured(); st != nil {
		if raw, ok := st.Lookup("misc", "privacylevel"); ok {
			if v, okT := raw.(int64); okT {
				if parsed, okP := registry.ParsePrivacyLevel(v); okP && parsed > lvl {
					lvl = parsed
				}
			}
		}
	}
	if raw, ok := p.lookupLegacy("PRIVACYLEVEL"); ok {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if parsed, okP := registry.ParsePrivacyLevel(v); okP && parsed > lvl {
				lvl = parsed
			}
		}
	}
	return lvl
}

// BlockingMode returns the configured blocking mode from the structured
// document, falling back to the default when unset or invalid. The legacy
// file is not consulted; callers needing full precedence use Load.
func (p *FSProvider) BlockingMode() registry.BlockingMode {
	if st := p.parseStructured(); st != nil {
		if raw, ok := st.Lookup("dns", "blockingmode"); ok {
			if s, okT := raw.(string); okT {
				if m, okP := registry.ParseBlockingMode(s); okP {
					return m
				}
			}
		}
	}
	return registry.BlockingIP
}

// LegacyLogFilePath returns the log file path named by the legacy file,
// for reading logs of an installation that has not migrated yet.
func (p *FSProvider) LegacyLogFilePath() (string, bool) {
	raw, ok := p.lookupLegacy("LOGFILE")
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func (p *FSProvider) parseStructured() *codec.Structured {
	data, _, ok := p.readFirst(p.structuredPaths)
	if !ok {
		return nil
	}
	st, err := codec.ParseStructured(data)
	if err != nil {
		return nil
	}
	return st
}

func (p *FSProvider) lookupLegacy(key string) (string, bool) {
	f, _, ok := p.openFirst(p.legacyPaths)
	if !ok {
		return "", false
	}
	defer f.Close()
	sc := codec.NewScanner(f)
	defer sc.Close()
	return sc.Lookup(key)
}
