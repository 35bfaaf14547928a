package registry

import "strings"

// DebugFlag is one bit in the debug category bitmask. The bit order is the
// canonical iteration order for the per-flag legacy directives.
type DebugFlag uint32

const (
	DebugDatabase DebugFlag = 1 << iota
	DebugNetworking
	DebugLocks
	DebugQueries
	DebugFlags
	DebugShmem
	DebugGC
	DebugARP
	DebugRegex
	DebugAPI
	DebugOvertime
	DebugStatus
	DebugCaps
	DebugDNSSEC
	DebugVectors
	DebugResolver
	DebugEDNS0
	DebugClients
	DebugAliasclients
	DebugEvents
	DebugHelper
	DebugConfig
	DebugExtra
)

// debugCategories lists every flag with its table leaf, in bit order.
var debugCategories = [...]struct {
	Flag DebugFlag
	Leaf string
}{
	{DebugDatabase, "database"},
	{DebugNetworking, "networking"},
	{DebugLocks, "locks"},
	{DebugQueries, "queries"},
	{DebugFlags, "flags"},
	{DebugShmem, "shmem"},
	{DebugGC, "gc"},
	{DebugARP, "arp"},
	{DebugRegex, "regex"},
	{DebugAPI, "api"},
	{DebugOvertime, "overtime"},
	{DebugStatus, "status"},
	{DebugCaps, "caps"},
	{DebugDNSSEC, "dnssec"},
	{DebugVectors, "vectors"},
	{DebugResolver, "resolver"},
	{DebugEDNS0, "edns0"},
	{DebugClients, "clients"},
	{DebugAliasclients, "aliasclients"},
	{DebugEvents, "events"},
	{DebugHelper, "helper"},
	{DebugConfig, "config"},
	{DebugExtra, "extra"},
}

// DebugCategoryCount is the number of named debug categories.
const DebugCategoryCount = len(debugCategories)

// LegacyDebugKey derives the flat-format key for a category leaf, e.g.
// "database" becomes "DEBUG_DATABASE".
func LegacyDebugKey(leaf string) string { return "DEBUG_" + strings.ToUpper(leaf) }

// DebugItems returns the debug items in bit order (powers of two, ascending).
func (r *Registry) DebugItems() []*Item {
	out := make([]*Item, 0, DebugCategoryCount)
	for _, c := range debugCategories {
		if it, ok := r.byName["debug."+c.Leaf]; ok {
			out = append(out, it)
		}
	}
	return out
}

// DebugFlags ORs the bits of every enabled debug category.
func (r *Registry) DebugFlags() DebugFlag {
	var mask DebugFlag
	for _, c := range debugCategories {
		if it, ok := r.byName["debug."+c.Leaf]; ok && it.Value.B {
			mask |= c.Flag
		}
	}
	return mask
}

// RecomputeDebug refreshes the derived any-flag-set bit from the current
// item values and returns the mask. Call it after every read pass.
func (r *Registry) RecomputeDebug() DebugFlag {
	mask := r.DebugFlags()
	r.debugAny.Store(mask != 0)
	return mask
}

// AnyDebug reports whether any debug category is enabled, without walking
// the items. Safe for concurrent use.
func (r *Registry) AnyDebug() bool { return r.debugAny.Load() }
