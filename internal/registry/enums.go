package registry

import "strings"

// BlockingMode is the strategy used to answer a blocked DNS query.
type BlockingMode uint8

const (
	BlockingIP           BlockingMode = iota // answer with our own address
	BlockingNull                             // answer with the unspecified address
	BlockingIPNodataAAAA                     // IP for A, NODATA for AAAA
	BlockingNX                               // answer NXDOMAIN
	BlockingNodata                           // answer NODATA
)

var blockingModes = [...]struct {
	tok  string
	mode BlockingMode
}{
	{"NXDOMAIN", BlockingNX},
	{"NULL", BlockingNull},
	{"IP-NODATA-AAAA", BlockingIPNodataAAAA},
	{"IP", BlockingIP},
	{"NODATA", BlockingNodata},
}

func (m BlockingMode) String() string {
	for _, e := range blockingModes {
		if e.mode == m {
			return e.tok
		}
	}
	return "IP"
}

// ParseBlockingMode maps a token with an exact, case-sensitive comparison.
// The structured format is strict; the legacy reader uses the Fold variant.
func ParseBlockingMode(s string) (BlockingMode, bool) {
	for _, e := range blockingModes {
		if s == e.tok {
			return e.mode, true
		}
	}
	return BlockingIP, false
}

// ParseBlockingModeFold is the case-insensitive variant for the legacy reader.
func ParseBlockingModeFold(s string) (BlockingMode, bool) {
	for _, e := range blockingModes {
		if strings.EqualFold(s, e.tok) {
			return e.mode, true
		}
	}
	return BlockingIP, false
}

// BlockingModeTokens lists the accepted tokens for diagnostics.
func BlockingModeTokens() string { return "[ NXDOMAIN, NULL, IP-NODATA-AAAA, IP, NODATA ]" }

// BusyReply is how a query is answered while the block lists are unavailable.
type BusyReply uint8

const (
	BusyBlock  BusyReply = iota // treat the query as blocked
	BusyDrop                    // drop the query without an answer
	BusyRefuse                  // answer REFUSED
)

var busyReplies = [...]struct {
	tok   string
	reply BusyReply
}{
	{"DROP", BusyDrop},
	{"REFUSE", BusyRefuse},
	{"BLOCK", BusyBlock},
}

func (r BusyReply) String() string {
	for _, e := range busyReplies {
		if e.reply == r {
			return e.tok
		}
	}
	return "BLOCK"
}

func ParseBusyReply(s string) (BusyReply, bool) {
	for _, e := range busyReplies {
		if s == e.tok {
			return e.reply, true
		}
	}
	return BusyBlock, false
}

func ParseBusyReplyFold(s string) (BusyReply, bool) {
	for _, e := range busyReplies {
		if strings.EqualFold(s, e.tok) {
			return e.reply, true
		}
	}
	return BusyBlock, false
}

func BusyReplyTokens() string { return "[ DROP, REFUSE, BLOCK ]" }

// PTRMode controls what name is returned for PTR queries against the
// daemon's own addresses.
type PTRMode uint8

const (
	PTRHostname     PTRMode = iota // bare host name
	PTRHostnameFQDN                // fully qualified host name
	PTRNone                        // no special handling
)

var ptrModes = [...]struct {
	tok  string
	mode PTRMode
}{
	{"NONE", PTRNone},
	{"HOSTNAME", PTRHostname},
	{"HOSTNAMEFQDN", PTRHostnameFQDN},
}

func (m PTRMode) String() string {
	for _, e := range ptrModes {
		if e.mode == m {
			return e.tok
		}
	}
	return "HOSTNAME"
}

func ParsePTRMode(s string) (PTRMode, bool) {
	for _, e := range ptrModes {
		if s == e.tok {
			return e.mode, true
		}
	}
	return PTRHostname, false
}

func ParsePTRModeFold(s string) (PTRMode, bool) {
	for _, e := range ptrModes {
		if strings.EqualFold(s, e.tok) {
			return e.mode, true
		}
	}
	return PTRHostname, false
}

func PTRModeTokens() string { return "[ NONE, HOSTNAME, HOSTNAMEFQDN ]" }

// RefreshMode selects which client host names are periodically re-resolved.
type RefreshMode uint8

const (
	RefreshIPv4    RefreshMode = iota // IPv4 clients only
	RefreshAll                        // every client
	RefreshUnknown                    // only clients without a name
	RefreshNone                       // never refresh
)

var refreshModes = [...]struct {
	tok  string
	mode RefreshMode
}{
	{"IPV4", RefreshIPv4},
	{"ALL", RefreshAll},
	{"UNKNOWN", RefreshUnknown},
	{"NONE", RefreshNone},
}

func (m RefreshMode) String() string {
	for _, e := range refreshModes {
		if e.mode == m {
			return e.tok
		}
	}
	return "IPV4"
}

func ParseRefreshMode(s string) (RefreshMode, bool) {
	for _, e := range refreshModes {
		if s == e.tok {
			return e.mode, true
		}
	}
	return RefreshIPv4, false
}

func ParseRefreshModeFold(s string) (RefreshMode, bool) {
	for _, e := range refreshModes {
		if strings.EqualFold(s, e.tok) {
			return e.mode, true
		}
	}
	return RefreshIPv4, false
}

func RefreshModeTokens() string { return "[ IPV4, ALL, UNKNOWN, NONE ]" }

// PrivacyLevel is an ordinal setting controlling how much query and client
// detail is retained. Higher levels retain less; the loader only ever
// ratchets it upward automatically.
type PrivacyLevel uint8

const (
	PrivacyShowAll PrivacyLevel = iota
	PrivacyHideDomains
	PrivacyHideDomainsClients
	PrivacyMaximum
	PrivacyNoStats
)

// ParsePrivacyLevel validates the numeric representation. Anything outside
// [0, 4] is rejected.
func ParsePrivacyLevel(v int64) (PrivacyLevel, bool) {
	if v < int64(PrivacyShowAll) || v > int64(PrivacyNoStats) {
		return PrivacyShowAll, false
	}
	return PrivacyLevel(v), true
}

func PrivacyLevelTokens() string { return "integer from 0 (show everything) to 4 (no statistics)" }
