package codec

import (
	"bufio"
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc/umbra/internal/registry"
)

func encodeToString(t *testing.T, reg *registry.Registry) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, reg))
	return buf.String()
}

func TestEncodeStructure(t *testing.T) {
	reg := registry.New()
	out := encodeToString(t, reg)

	assert.True(t, strings.HasPrefix(out, "# Umbra configuration file"))
	assert.Contains(t, out, "\n[dns]\n")
	assert.Contains(t, out, "  [dns.rateLimit]\n")
	assert.Contains(t, out, "    [dns.reply.host]\n")
	assert.Contains(t, out, "\n[debug]\n")
	assert.Contains(t, out, `blockingmode = "IP"`)
	assert.Contains(t, out, "privacylevel = 0")
	assert.Contains(t, out, `IPv4 = "0.0.0.0"`)
	assert.Contains(t, out, `IPv6 = "::"`)

	// each table header appears exactly once
	assert.Equal(t, 1, strings.Count(out, "[dns]"))
	assert.Equal(t, 1, strings.Count(out, "[database]"))
}

func TestEncodeDeterministic(t *testing.T) {
	reg := registry.New()
	assert.Equal(t, encodeToString(t, reg), encodeToString(t, reg))
}

func TestEncodeRoundTripDefaults(t *testing.T) {
	reg := registry.New()
	out := encodeToString(t, reg)

	st, err := ParseStructured([]byte(out))
	require.NoError(t, err)
	decoded := registry.New()
	require.NoError(t, st.Apply(decoded))

	for i, it := range reg.Items() {
		got := decoded.Get(i)
		assert.True(t, it.Value.Equal(got.Value), "%s: %s != %s", it.Name(), it.Value.String(), got.Value.String())
	}
}

func TestEncodeRoundTripModified(t *testing.T) {
	reg := registry.New()
	set := func(name string, v registry.Value) {
		it, ok := reg.ByName(name)
		require.True(t, ok, name)
		it.Set(v, registry.OriginStructured)
	}
	set("dns.blockingmode", registry.Blocking(registry.BlockingNX))
	set("dns.replyWhenBusy", registry.Busy(registry.BusyRefuse))
	set("dns.blockTTL", registry.UInt(600))
	set("dns.reply.blocking.IPv4", registry.IPv4(netip.MustParseAddr("192.0.2.1")))
	set("dns.reply.blocking.IPv6", registry.IPv6(netip.MustParseAddr("2001:db8::1")))
	set("database.maxDBdays", registry.Int(-1))
	set("files.log", registry.String(`C:\logs\"umbra".log`))
	set("misc.nice", registry.Int(-999))
	set("misc.privacylevel", registry.Privacy(registry.PrivacyMaximum))
	set("debug.queries", registry.Bool(true))

	out := encodeToString(t, reg)
	st, err := ParseStructured([]byte(out))
	require.NoError(t, err)
	decoded := registry.New()
	require.NoError(t, st.Apply(decoded))

	for i, it := range reg.Items() {
		got := decoded.Get(i)
		assert.True(t, it.Value.Equal(got.Value), "%s: %s != %s", it.Name(), it.Value.String(), got.Value.String())
	}
}

func TestWriteString(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"empty", "", `""`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"tab and newline", "a\tb\nc", `"a\tb\nc"`},
		{"backspace and formfeed", "\b\f\r", `"\b\f\r"`},
		{"control byte", "\x07", `"\0x07"`},
		{"high byte", "caf\xe9", `"caf\0xe9"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			writeString(w, tc.in)
			require.NoError(t, w.Flush())
			assert.Equal(t, tc.want, buf.String())
		})
	}
}
