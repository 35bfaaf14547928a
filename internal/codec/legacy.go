package codec

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/lc/umbra/internal/log"
	"github.com/lc/umbra/internal/registry"
)

// maxDBDays caps MAXDBDAYS so that days expressed in seconds cannot
// overflow a 32-bit counter.
const maxDBDays = math.MaxInt32 / 86400

// Legacy decodes the flat KEY=value migration format through a Scanner.
// The structured document is authoritative: items it has already set are
// left alone, except the privacy level, which only ever ratchets upward.
type Legacy struct {
	sc  *Scanner
	reg *registry.Registry
}

var _ Codec = (*Legacy)(nil)

// NewLegacy wraps an open scanner. The caller owns the scanner and releases
// it after Apply.
func NewLegacy(sc *Scanner) *Legacy {
	return &Legacy{sc: sc}
}

// Apply runs the full legacy read: the plain item walk, then the debug pass
// (blanket DEBUG_ALL first, per-flag overrides after, in bit order), then
// the deprecated alias pass.
func (l *Legacy) Apply(reg *registry.Registry) error {
	l.reg = reg

	var errs error
	for _, it := range reg.Items() {
		if it.LegacyKey == "" || it.Path[0] == "debug" {
			continue
		}
		errs = multierr.Append(errs, l.decode(it))
	}
	l.applyDebug(reg)
	l.applyDeprecated()
	reg.RecomputeDebug()
	return errs
}

// ParseBool interprets legacy boolean tokens case-insensitively: yes/true
// and no/false. Anything else reports ok=false and the caller keeps the
// previous value.
func ParseBool(s string) (value, ok bool) {
	switch {
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "yes"):
		return true, true
	case strings.EqualFold(s, "false"), strings.EqualFold(s, "no"):
		return false, true
	}
	return false, false
}

// decode reads one item through its legacy key, applying the per-key
// coercion and clamping rules of the flat format.
func (l *Legacy) decode(it *registry.Item) error {
	if it.Origin() == registry.OriginStructured && it.LegacyKey != "PRIVACYLEVEL" {
		// structured document already provided this value
		return nil
	}
	raw, ok := l.sc.Lookup(it.LegacyKey)
	if !ok {
		return nil
	}

	switch it.LegacyKey {
	case "MAXDBDAYS":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		if v > maxDBDays {
			v = maxDBDays
		}
		// -1 keeps everything, 0 disables; anything below -1 is nonsense
		if v >= -1 {
			it.Set(registry.Int(v), registry.OriginLegacy)
		}

	case "DBINTERVAL":
		// the flat format takes float minutes, the registry stores seconds
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		if f >= 0.1 && f <= 1440.0 {
			it.Set(registry.UInt(uint64(f*60)), registry.OriginLegacy)
		}

	case "MAXLOGAGE":
		// float hours, stored as seconds, at most one day
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		if f >= 0.0 && f <= 24.0 {
			it.Set(registry.UInt(uint64(f*3600)), registry.OriginLegacy)
		}

	case "MAXNETAGE":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		if v > 0 && v <= 8760 {
			it.Set(registry.UInt(uint64(v)), registry.OriginLegacy)
		}

	case "DELAY_STARTUP":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil
		}
		if v > 0 && v <= 300 {
			it.Set(registry.UInt(v), registry.OriginLegacy)
		}

	case "CHECK_SHMEM", "CHECK_DISK":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		if v < 0 || v > 100 {
			log.Debugf("%s=%d is out of range, keeping %s", it.LegacyKey, v, it.Value.String())
			return nil
		}
		it.Set(registry.UInt(uint64(v)), registry.OriginLegacy)

	case "API_SESSION_TIMEOUT":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return nil
		}
		it.Set(registry.UInt(uint64(v)), registry.OriginLegacy)

	case "RATE_LIMIT":
		return l.decodeRateLimit(it, raw)

	case "PRIVACYLEVEL":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		lvl, ok := registry.ParsePrivacyLevel(v)
		if !ok {
			return l.invalid(it, raw)
		}
		// monotonic ratchet: the level may only grow automatically
		if lvl > it.Value.Privacy {
			it.Set(registry.Privacy(lvl), registry.OriginLegacy)
		}

	case "LOCAL_IPV4", "BLOCK_IPV4":
		addr, err := netip.ParseAddr(raw)
		if err != nil || !addr.Is4() {
			return l.invalid(it, raw)
		}
		it.Set(registry.IPv4(addr), registry.OriginLegacy)
		l.setSibling(it, "force4", registry.Bool(true))

	case "LOCAL_IPV6", "BLOCK_IPV6":
		addr, err := netip.ParseAddr(raw)
		if err != nil || !addr.Is6() || addr.Is4In6() {
			return l.invalid(it, raw)
		}
		it.Set(registry.IPv6(addr), registry.OriginLegacy)
		l.setSibling(it, "force6", registry.Bool(true))

	case "PIHOLE_PTR":
		// the old reader accepted "false" as a synonym for NONE
		if strings.EqualFold(raw, "false") {
			it.Set(registry.PTR(registry.PTRNone), registry.OriginLegacy)
			return nil
		}
		m, ok := registry.ParsePTRModeFold(raw)
		if !ok {
			return l.invalid(it, raw)
		}
		it.Set(registry.PTR(m), registry.OriginLegacy)

	default:
		return l.generic(it, raw)
	}
	return nil
}

// generic coerces a value by item kind when the key has no special rule.
func (l *Legacy) generic(it *registry.Item, raw string) error {
	switch it.Kind {
	case registry.KindBool:
		if v, ok := ParseBool(raw); ok {
			it.Set(registry.Bool(v), registry.OriginLegacy)
		}

	case registry.KindInt, registry.KindLong:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil
		}
		val := registry.Int(v)
		if it.Kind == registry.KindLong {
			val = registry.Long(v)
		}
		it.Set(val, registry.OriginLegacy)

	case registry.KindUInt, registry.KindULong:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil
		}
		val := registry.UInt(v)
		if it.Kind == registry.KindULong {
			val = registry.ULong(v)
		}
		it.Set(val, registry.OriginLegacy)

	case registry.KindString:
		if raw != "" {
			it.Set(registry.String(raw), registry.OriginLegacy)
		}

	case registry.KindBlockingMode:
		m, ok := registry.ParseBlockingModeFold(raw)
		if !ok {
			return l.invalid(it, raw)
		}
		it.Set(registry.Blocking(m), registry.OriginLegacy)

	case registry.KindBusyReply:
		r, ok := registry.ParseBusyReplyFold(raw)
		if !ok {
			return l.invalid(it, raw)
		}
		it.Set(registry.Busy(r), registry.OriginLegacy)

	case registry.KindRefreshMode:
		m, ok := registry.ParseRefreshModeFold(raw)
		if !ok {
			return l.invalid(it, raw)
		}
		it.Set(registry.Refresh(m), registry.OriginLegacy)

	case registry.KindIPv4, registry.KindIPv6, registry.KindPTRMode, registry.KindPrivacyLevel:
		// all carry per-key rules and never reach the generic path
	}
	return nil
}

// decodeRateLimit splits the combined count/interval pair carried by the
// single RATE_LIMIT key onto the two registry items. A malformed pair
// leaves both at their defaults.
func (l *Legacy) decodeRateLimit(count *registry.Item, raw string) error {
	var c, iv uint64
	if n, err := fmt.Sscanf(raw, "%d/%d", &c, &iv); err != nil || n != 2 {
		log.Debugf("RATE_LIMIT=%q is not a count/interval pair, keeping defaults", raw)
		return nil
	}
	count.Set(registry.UInt(c), registry.OriginLegacy)
	if interval, ok := l.reg.ByName("dns.rateLimit.interval"); ok &&
		interval.Origin() != registry.OriginStructured {
		interval.Set(registry.UInt(iv), registry.OriginLegacy)
	}
	return nil
}

// applyDebug implements the flat-format debug directives: reset, the
// blanket DEBUG_ALL, then the per-flag overrides in bit order. Per-flag
// settings always win over the blanket directive.
func (l *Legacy) applyDebug(reg *registry.Registry) {
	items := reg.DebugItems()

	for _, it := range items {
		if it.Origin() == registry.OriginStructured {
			continue
		}
		it.Set(registry.Bool(false), registry.OriginDefault)
	}

	if raw, ok := l.sc.Lookup("DEBUG_ALL"); ok {
		if v, okb := ParseBool(raw); okb && v {
			for _, it := range items {
				if it.Origin() == registry.OriginStructured {
					continue
				}
				it.Set(registry.Bool(true), registry.OriginLegacy)
			}
		}
	}

	for _, it := range items {
		if it.Origin() == registry.OriginStructured {
			continue
		}
		raw, ok := l.sc.Lookup(it.LegacyKey)
		if !ok {
			continue
		}
		if v, okb := ParseBool(raw); okb {
			it.Set(registry.Bool(v), registry.OriginLegacy)
		}
	}
}

// applyDeprecated handles REPLY_ADDR4/6, which used to set both the host
// and the blocking reply address at once. They only apply when neither
// replacement key was given; otherwise they are ignored with a warning.
func (l *Legacy) applyDeprecated() {
	l.replyAddr("REPLY_ADDR4", "LOCAL_IPV4 or BLOCK_IPV4", "IPv4", "force4", false)
	l.replyAddr("REPLY_ADDR6", "LOCAL_IPV6 or BLOCK_IPV6", "IPv6", "force6", true)
}

func (l *Legacy) replyAddr(key, supersededBy, addrLeaf, forceLeaf string, want6 bool) {
	raw, ok := l.sc.Lookup(key)
	if !ok {
		return
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil || (want6 && (!addr.Is6() || addr.Is4In6())) || (!want6 && !addr.Is4()) {
		return
	}

	hostForce, _ := l.reg.ByName("dns.reply.host." + forceLeaf)
	blockForce, _ := l.reg.ByName("dns.reply.blocking." + forceLeaf)
	if hostForce.Value.B || blockForce.Value.B ||
		hostForce.Origin() == registry.OriginStructured ||
		blockForce.Origin() == registry.OriginStructured {
		log.Warnf("ignoring deprecated %s as %s has been specified", key, supersededBy)
		return
	}

	val := registry.IPv4(addr)
	if want6 {
		val = registry.IPv6(addr)
	}
	hostAddr, _ := l.reg.ByName("dns.reply.host." + addrLeaf)
	blockAddr, _ := l.reg.ByName("dns.reply.blocking." + addrLeaf)
	hostAddr.Set(val, registry.OriginLegacy)
	blockAddr.Set(val, registry.OriginLegacy)
	hostForce.Set(registry.Bool(true), registry.OriginLegacy)
	blockForce.Set(registry.Bool(true), registry.OriginLegacy)
}

// setSibling updates the item next to it (same table, different leaf).
func (l *Legacy) setSibling(it *registry.Item, leaf string, v registry.Value) {
	name := strings.Join(it.Path[:it.Depth()-1], ".") + "." + leaf
	if sib, ok := l.reg.ByName(name); ok {
		sib.Set(v, registry.OriginLegacy)
	}
}

// invalid logs a malformed value with the accepted option set.
func (l *Legacy) invalid(it *registry.Item, got string) error {
	log.Warnf("config setting %s (%s) is invalid (%q), allowed options are: %s",
		it.LegacyKey, it.Name(), got, it.Help)
	return fmt.Errorf("%s: invalid value %q", it.LegacyKey, got)
}
