package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	reg := New()
	require.NotZero(t, reg.Len())

	for _, it := range reg.Items() {
		assert.Equal(t, it.Kind, it.Value.Kind, "%s: value kind", it.Name())
		assert.Equal(t, it.Kind, it.Default.Kind, "%s: default kind", it.Name())
		assert.True(t, it.IsDefault(), "%s: should start at its default", it.Name())
		assert.Equal(t, OriginDefault, it.Origin(), "%s: origin", it.Name())
		assert.LessOrEqual(t, it.Depth(), MaxPathDepth, "%s: depth", it.Name())
	}
}

func TestUniqueNamesAndLegacyKeys(t *testing.T) {
	reg := New()

	names := map[string]bool{}
	legacy := map[string]bool{}
	for _, it := range reg.Items() {
		assert.False(t, names[it.Name()], "duplicate name %s", it.Name())
		names[it.Name()] = true
		if it.LegacyKey == "" {
			continue
		}
		assert.False(t, legacy[it.LegacyKey], "duplicate legacy key %s", it.LegacyKey)
		legacy[it.LegacyKey] = true
	}
}

func TestIndexAddressing(t *testing.T) {
	reg := New()
	for i := 0; i < reg.Len(); i++ {
		it := reg.Get(i)
		byName, ok := reg.ByName(it.Name())
		require.True(t, ok)
		assert.Same(t, it, byName)
	}

	_, ok := reg.ByName("no.such.setting")
	assert.False(t, ok)
}

func TestSetTracksOrigin(t *testing.T) {
	reg := New()
	it, ok := reg.ByName("dns.blockingmode")
	require.True(t, ok)

	it.Set(Blocking(BlockingNX), OriginStructured)
	assert.Equal(t, BlockingNX, it.Value.Blocking)
	assert.Equal(t, OriginStructured, it.Origin())
	assert.False(t, it.IsDefault())
}

func TestEnumParsing(t *testing.T) {
	testCases := []struct {
		name  string
		exact func(string) bool
		fold  func(string) bool
	}{
		{
			name:  "blocking mode",
			exact: func(s string) bool { _, ok := ParseBlockingMode(s); return ok },
			fold:  func(s string) bool { _, ok := ParseBlockingModeFold(s); return ok },
		},
		{
			name:  "busy reply",
			exact: func(s string) bool { _, ok := ParseBusyReply(s); return ok },
			fold:  func(s string) bool { _, ok := ParseBusyReplyFold(s); return ok },
		},
		{
			name:  "ptr mode",
			exact: func(s string) bool { _, ok := ParsePTRMode(s); return ok },
			fold:  func(s string) bool { _, ok := ParsePTRModeFold(s); return ok },
		},
		{
			name:  "refresh mode",
			exact: func(s string) bool { _, ok := ParseRefreshMode(s); return ok },
			fold:  func(s string) bool { _, ok := ParseRefreshModeFold(s); return ok },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.exact("NONE") || tc.exact("BLOCK") || tc.exact("IP") || tc.exact("IPV4"),
				"at least one canonical token parses exactly")
			assert.False(t, tc.exact("bogus"))
			assert.False(t, tc.fold("bogus"))
		})
	}

	// canonical tokens are upper-case; the exact parser rejects other casings
	if _, ok := ParseBlockingMode("nxdomain"); ok {
		t.Error("exact parser accepted lower-case token")
	}
	m, ok := ParseBlockingModeFold("nxdomain")
	require.True(t, ok)
	assert.Equal(t, BlockingNX, m)

	r, ok := ParseBusyReplyFold("refuse")
	require.True(t, ok)
	assert.Equal(t, BusyRefuse, r)
}

func TestParsePrivacyLevel(t *testing.T) {
	testCases := []struct {
		in   int64
		want PrivacyLevel
		ok   bool
	}{
		{0, PrivacyShowAll, true},
		{1, PrivacyHideDomains, true},
		{2, PrivacyHideDomainsClients, true},
		{3, PrivacyMaximum, true},
		{4, PrivacyNoStats, true},
		{-1, 0, false},
		{5, 0, false},
		{42, 0, false},
	}
	for _, tc := range testCases {
		got, ok := ParsePrivacyLevel(tc.in)
		assert.Equal(t, tc.ok, ok, "level %d", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "level %d", tc.in)
		}
	}
}

func TestDebugItemsBitOrder(t *testing.T) {
	reg := New()
	items := reg.DebugItems()
	require.Len(t, items, DebugCategoryCount)

	// item i must correspond to bit i
	assert.Equal(t, "debug.database", items[0].Name())
	assert.Equal(t, "debug.networking", items[1].Name())
	assert.Equal(t, "debug.extra", items[DebugCategoryCount-1].Name())

	for _, it := range items {
		assert.Equal(t, KindBool, it.Kind, it.Name())
		assert.Equal(t, LegacyDebugKey(it.Leaf()), it.LegacyKey, it.Name())
	}
}

func TestRecomputeDebug(t *testing.T) {
	reg := New()
	assert.Zero(t, reg.RecomputeDebug())
	assert.False(t, reg.AnyDebug())

	db, ok := reg.ByName("debug.database")
	require.True(t, ok)
	db.Set(Bool(true), OriginStructured)

	mask := reg.RecomputeDebug()
	assert.Equal(t, uint32(DebugDatabase), uint32(mask))
	assert.True(t, reg.AnyDebug())

	db.Set(Bool(false), OriginDefault)
	assert.Zero(t, reg.RecomputeDebug())
	assert.False(t, reg.AnyDebug())
}

func TestValueString(t *testing.T) {
	testCases := []struct {
		name string
		v    Value
		want string
	}{
		{"bool", Bool(true), "true"},
		{"int", Int(-10), "-10"},
		{"uint", UInt(300), "300"},
		{"string", String("/var/log/umbra"), "/var/log/umbra"},
		{"blocking", Blocking(BlockingNX), "NXDOMAIN"},
		{"busy", Busy(BusyDrop), "DROP"},
		{"ptr", PTR(PTRHostnameFQDN), "HOSTNAMEFQDN"},
		{"refresh", Refresh(RefreshNone), "NONE"},
		{"privacy", Privacy(PrivacyMaximum), "3"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.String())
		})
	}
}
