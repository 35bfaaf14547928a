package codec

import (
	"fmt"
	"net/netip"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/lc/umbra/internal/log"
	"github.com/lc/umbra/internal/registry"
)

// Structured decodes the canonical nested TOML document.
type Structured struct {
	root map[string]any
}

var _ Codec = (*Structured)(nil)

// ParseStructured parses the whole document up front, so a syntax error
// fails the load before any registry value has been touched. A broken
// document is never partially applied.
func ParseStructured(data []byte) (*Structured, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing structured config: %w", err)
	}
	return &Structured{root: root}, nil
}

// Apply decodes every registry item present in the document. The debug
// toggle for config tracing is read first so the rest of the walk can
// already log verbosely.
func (s *Structured) Apply(reg *registry.Registry) error {
	if it, ok := reg.ByName("debug.config"); ok {
		s.decode(it)
		if it.Value.B {
			log.EnableDebug()
		}
	}

	var errs error
	for _, it := range reg.Items() {
		errs = multierr.Append(errs, s.decode(it))
	}
	reg.RecomputeDebug()
	return errs
}

// Lookup returns the raw document value at a path, for targeted reads that
// avoid a full registry walk.
func (s *Structured) Lookup(path ...string) (any, bool) {
	tbl, ok := s.table(path[:len(path)-1])
	if !ok {
		return nil, false
	}
	raw, ok := tbl[path[len(path)-1]]
	return raw, ok
}

// table walks the nested tables leading to a leaf. A missing or mistyped
// intermediate table aborts resolution for that item only.
func (s *Structured) table(path []string) (map[string]any, bool) {
	cur := s.root
	for _, seg := range path {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// decode reads one item from its table. Absence and type mismatches keep
// the current value and log at debug level; values that are present but
// invalid warn with the accepted option set and count as diagnostics.
func (s *Structured) decode(it *registry.Item) error {
	tbl, ok := s.table(it.Path[:it.Depth()-1])
	if !ok {
		log.Debugf("%s: parent table does not exist", it.Name())
		return nil
	}
	raw, ok := tbl[it.Leaf()]
	if !ok {
		log.Debugf("%s does not exist, keeping %s", it.Name(), it.Value.String())
		return nil
	}

	switch it.Kind {
	case registry.KindBool:
		v, ok := raw.(bool)
		if !ok {
			return mistyped(it, "bool")
		}
		it.Set(registry.Bool(v), registry.OriginStructured)

	case registry.KindInt:
		v, ok := raw.(int64)
		if !ok {
			return mistyped(it, "integer")
		}
		it.Set(registry.Int(v), registry.OriginStructured)

	case registry.KindLong:
		v, ok := raw.(int64)
		if !ok {
			return mistyped(it, "integer")
		}
		it.Set(registry.Long(v), registry.OriginStructured)

	case registry.KindUInt:
		v, ok := raw.(int64)
		if !ok || v < 0 {
			return mistyped(it, "unsigned integer")
		}
		it.Set(registry.UInt(uint64(v)), registry.OriginStructured)

	case registry.KindULong:
		v, ok := raw.(int64)
		if !ok || v < 0 {
			return mistyped(it, "unsigned integer")
		}
		it.Set(registry.ULong(uint64(v)), registry.OriginStructured)

	case registry.KindString:
		v, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		it.Set(registry.String(v), registry.OriginStructured)

	case registry.KindIPv4:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		addr, err := netip.ParseAddr(str)
		if err != nil || !addr.Is4() {
			return invalid(it, str, "a dotted IPv4 address")
		}
		it.Set(registry.IPv4(addr), registry.OriginStructured)

	case registry.KindIPv6:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		addr, err := netip.ParseAddr(str)
		if err != nil || !addr.Is6() || addr.Is4In6() {
			return invalid(it, str, "an IPv6 address")
		}
		it.Set(registry.IPv6(addr), registry.OriginStructured)

	case registry.KindPTRMode:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		m, ok := registry.ParsePTRMode(str)
		if !ok {
			return invalid(it, str, it.Help)
		}
		it.Set(registry.PTR(m), registry.OriginStructured)

	case registry.KindBusyReply:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		r, ok := registry.ParseBusyReply(str)
		if !ok {
			return invalid(it, str, it.Help)
		}
		it.Set(registry.Busy(r), registry.OriginStructured)

	case registry.KindBlockingMode:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		m, ok := registry.ParseBlockingMode(str)
		if !ok {
			return invalid(it, str, it.Help)
		}
		it.Set(registry.Blocking(m), registry.OriginStructured)

	case registry.KindRefreshMode:
		str, ok := raw.(string)
		if !ok {
			return mistyped(it, "string")
		}
		m, ok := registry.ParseRefreshMode(str)
		if !ok {
			return invalid(it, str, it.Help)
		}
		it.Set(registry.Refresh(m), registry.OriginStructured)

	case registry.KindPrivacyLevel:
		v, ok := raw.(int64)
		if !ok {
			return mistyped(it, "integer")
		}
		lvl, ok := registry.ParsePrivacyLevel(v)
		if !ok {
			return invalid(it, fmt.Sprint(v), it.Help)
		}
		it.Set(registry.Privacy(lvl), registry.OriginStructured)
	}
	return nil
}

// mistyped covers present-but-wrongly-typed values. The original treats
// these the same as absence, so they only log at debug level.
func mistyped(it *registry.Item, want string) error {
	log.Debugf("%s is not of type %s, keeping %s", it.Name(), want, it.Value.String())
	return nil
}

// invalid covers values of the right shape whose content is rejected.
func invalid(it *registry.Item, got, allowed string) error {
	log.Warnf("config setting %s is invalid (%q), allowed options are: %s", it.Name(), got, allowed)
	return fmt.Errorf("%s: invalid value %q", it.Name(), got)
}
