package registry

import (
	"net/netip"
	"strconv"
)

// Value is the tagged payload of a configuration item. Kind selects which
// field is meaningful; the remaining fields are zero. Values are plain
// structs and copy cheaply, so defaults stay immutable once declared.
type Value struct {
	Kind Kind

	B        bool
	I        int64  // KindInt, KindLong
	U        uint64 // KindUInt, KindULong
	S        string
	Addr     netip.Addr // KindIPv4, KindIPv6
	PTR      PTRMode
	Busy     BusyReply
	Blocking BlockingMode
	Refresh  RefreshMode
	Privacy  PrivacyLevel
}

func Bool(v bool) Value     { return Value{Kind: KindBool, B: v} }
func Int(v int64) Value     { return Value{Kind: KindInt, I: v} }
func UInt(v uint64) Value   { return Value{Kind: KindUInt, U: v} }
func Long(v int64) Value    { return Value{Kind: KindLong, I: v} }
func ULong(v uint64) Value  { return Value{Kind: KindULong, U: v} }
func String(v string) Value { return Value{Kind: KindString, S: v} }

// IPv4 and IPv6 wrap an address; the unspecified address is the natural
// zero ("0.0.0.0" / "::") since netip.Addr's zero value is invalid.
func IPv4(a netip.Addr) Value { return Value{Kind: KindIPv4, Addr: a} }
func IPv6(a netip.Addr) Value { return Value{Kind: KindIPv6, Addr: a} }

func PTR(m PTRMode) Value        { return Value{Kind: KindPTRMode, PTR: m} }
func Busy(r BusyReply) Value     { return Value{Kind: KindBusyReply, Busy: r} }
func Blocking(m BlockingMode) Value {
	return Value{Kind: KindBlockingMode, Blocking: m}
}
func Refresh(m RefreshMode) Value {
	return Value{Kind: KindRefreshMode, Refresh: m}
}
func Privacy(p PrivacyLevel) Value {
	return Value{Kind: KindPrivacyLevel, Privacy: p}
}

// Equal reports whether two values hold the same kind and the same payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.B == o.B
	case KindInt, KindLong:
		return v.I == o.I
	case KindUInt, KindULong:
		return v.U == o.U
	case KindString:
		return v.S == o.S
	case KindIPv4, KindIPv6:
		return v.Addr == o.Addr
	case KindPTRMode:
		return v.PTR == o.PTR
	case KindBusyReply:
		return v.Busy == o.Busy
	case KindBlockingMode:
		return v.Blocking == o.Blocking
	case KindRefreshMode:
		return v.Refresh == o.Refresh
	case KindPrivacyLevel:
		return v.Privacy == o.Privacy
	}
	return false
}

// String renders the payload in its canonical textual form: the same tokens
// the structured document uses, minus the quoting.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt, KindLong:
		return strconv.FormatInt(v.I, 10)
	case KindUInt, KindULong:
		return strconv.FormatUint(v.U, 10)
	case KindString:
		return v.S
	case KindIPv4, KindIPv6:
		return v.Addr.String()
	case KindPTRMode:
		return v.PTR.String()
	case KindBusyReply:
		return v.Busy.String()
	case KindBlockingMode:
		return v.Blocking.String()
	case KindRefreshMode:
		return v.Refresh.String()
	case KindPrivacyLevel:
		return strconv.Itoa(int(v.Privacy))
	}
	return ""
}
