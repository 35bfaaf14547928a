package blockreply

import (
	"net/netip"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc/umbra/internal/registry"
)

func query(qtype uint16) *dns.Msg {
	req := new(dns.Msg)
	req.SetQuestion("ads.example.com.", qtype)
	return req
}

func configured(t *testing.T, set map[string]registry.Value) *Synthesizer {
	t.Helper()
	reg := registry.New()
	for name, v := range set {
		it, ok := reg.ByName(name)
		require.True(t, ok, name)
		it.Set(v, registry.OriginStructured)
	}
	return New(reg)
}

func TestBlockedModes(t *testing.T) {
	testCases := []struct {
		name    string
		mode    registry.BlockingMode
		qtype   uint16
		rcode   int
		answers int
		addr    string
	}{
		{"nxdomain", registry.BlockingNX, dns.TypeA, dns.RcodeNameError, 0, ""},
		{"nodata", registry.BlockingNodata, dns.TypeA, dns.RcodeSuccess, 0, ""},
		{"null A", registry.BlockingNull, dns.TypeA, dns.RcodeSuccess, 1, "0.0.0.0"},
		{"null AAAA", registry.BlockingNull, dns.TypeAAAA, dns.RcodeSuccess, 1, "::"},
		{"ip unforced A", registry.BlockingIP, dns.TypeA, dns.RcodeSuccess, 1, "0.0.0.0"},
		{"ip-nodata-aaaa A", registry.BlockingIPNodataAAAA, dns.TypeA, dns.RcodeSuccess, 1, "0.0.0.0"},
		{"ip-nodata-aaaa AAAA", registry.BlockingIPNodataAAAA, dns.TypeAAAA, dns.RcodeSuccess, 0, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := configured(t, map[string]registry.Value{
				"dns.blockingmode": registry.Blocking(tc.mode),
			})
			reply := s.Blocked(query(tc.qtype))
			assert.Equal(t, tc.rcode, reply.Rcode)
			require.Len(t, reply.Answer, tc.answers)
			if tc.answers == 0 {
				return
			}
			switch rr := reply.Answer[0].(type) {
			case *dns.A:
				assert.Equal(t, tc.addr, rr.A.String())
			case *dns.AAAA:
				assert.Equal(t, tc.addr, rr.AAAA.String())
			default:
				t.Fatalf("unexpected record type %T", rr)
			}
		})
	}
}

func TestBlockedUsesConfiguredAddresses(t *testing.T) {
	s := configured(t, map[string]registry.Value{
		"dns.blockingmode":           registry.Blocking(registry.BlockingIP),
		"dns.reply.blocking.force4":  registry.Bool(true),
		"dns.reply.blocking.IPv4":    registry.IPv4(netip.MustParseAddr("192.0.2.7")),
		"dns.reply.blocking.force6":  registry.Bool(true),
		"dns.reply.blocking.IPv6":    registry.IPv6(netip.MustParseAddr("2001:db8::7")),
		"dns.blockTTL":               registry.UInt(300),
	})

	reply := s.Blocked(query(dns.TypeA))
	require.Len(t, reply.Answer, 1)
	a := reply.Answer[0].(*dns.A)
	assert.Equal(t, "192.0.2.7", a.A.String())
	assert.Equal(t, uint32(300), a.Hdr.Ttl)

	reply = s.Blocked(query(dns.TypeAAAA))
	require.Len(t, reply.Answer, 1)
	aaaa := reply.Answer[0].(*dns.AAAA)
	assert.Equal(t, "2001:db8::7", aaaa.AAAA.String())
}

func TestBusyReply(t *testing.T) {
	drop := configured(t, map[string]registry.Value{
		"dns.replyWhenBusy": registry.Busy(registry.BusyDrop),
	})
	reply, ok := drop.BusyReply(query(dns.TypeA))
	assert.False(t, ok)
	assert.Nil(t, reply)

	refuse := configured(t, map[string]registry.Value{
		"dns.replyWhenBusy": registry.Busy(registry.BusyRefuse),
	})
	reply, ok = refuse.BusyReply(query(dns.TypeA))
	require.True(t, ok)
	assert.Equal(t, dns.RcodeRefused, reply.Rcode)

	block := configured(t, map[string]registry.Value{
		"dns.replyWhenBusy": registry.Busy(registry.BusyBlock),
		"dns.blockingmode":  registry.Blocking(registry.BlockingNX),
	})
	reply, ok = block.BusyReply(query(dns.TypeA))
	require.True(t, ok)
	assert.Equal(t, dns.RcodeNameError, reply.Rcode)
}
