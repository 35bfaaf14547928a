package blockreply

import (
	"net"
	"net/netip"

	"github.com/miekg/dns"

	"github.com/lc/umbra/internal/registry"
)

// Synthesizer builds replies for blocked queries from a configuration
// snapshot. The snapshot is immutable; build a new Synthesizer after a
// reload.
type Synthesizer struct {
	Mode registry.BlockingMode
	Busy registry.BusyReply
	TTL  uint32

	blockV4 netip.Addr
	blockV6 netip.Addr
	forced4 bool
	forced6 bool
}

// New snapshots the reply-relevant settings out of a loaded registry.
func New(reg *registry.Registry) *Synthesizer {
	s := &Synthesizer{}
	if it, ok := reg.ByName("dns.blockingmode"); ok {
		s.Mode = it.Value.Blocking
	}
	if it, ok := reg.ByName("dns.replyWhenBusy"); ok {
		s.Busy = it.Value.Busy
	}
	if it, ok := reg.ByName("dns.blockTTL"); ok {
		s.TTL = uint32(it.Value.U)
	}
	if it, ok := reg.ByName("dns.reply.blocking.force4"); ok {
		s.forced4 = it.Value.B
	}
	if it, ok := reg.ByName("dns.reply.blocking.IPv4"); ok {
		s.blockV4 = it.Value.Addr
	}
	if it, ok := reg.ByName("dns.reply.blocking.force6"); ok {
		s.forced6 = it.Value.B
	}
	if it, ok := reg.ByName("dns.reply.blocking.IPv6"); ok {
		s.blockV6 = it.Value.Addr
	}
	return s
}

// Blocked builds the reply for a blocked query according to the blocking
// mode. The request is never mutated.
func (s *Synthesizer) Blocked(req *dns.Msg) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(req)
	if len(req.Question) == 0 {
		return m
	}
	q := req.Question[0]

	switch s.Mode {
	case registry.BlockingNX:
		m.SetRcode(req, dns.RcodeNameError)

	case registry.BlockingNodata:
		// NOERROR with an empty answer section

	case registry.BlockingNull:
		s.answer(m, q, netip.IPv4Unspecified(), netip.IPv6Unspecified())

	case registry.BlockingIPNodataAAAA:
		// address only for A queries, AAAA gets NODATA
		if q.Qtype == dns.TypeA {
			s.answer(m, q, s.effectiveV4(), netip.Addr{})
		}

	case registry.BlockingIP:
		s.answer(m, q, s.effectiveV4(), s.effectiveV6())
	}
	return m
}

// BusyReply builds the reply sent while the sinkhole is still starting up.
// ok is false when the policy is to drop the query without answering.
func (s *Synthesizer) BusyReply(req *dns.Msg) (reply *dns.Msg, ok bool) {
	switch s.Busy {
	case registry.BusyDrop:
		return nil, false
	case registry.BusyRefuse:
		m := new(dns.Msg)
		m.SetRcode(req, dns.RcodeRefused)
		return m, true
	default:
		return s.Blocked(req), true
	}
}

// effectiveV4 is the blocking address when one was configured, otherwise
// the unspecified address.
func (s *Synthesizer) effectiveV4() netip.Addr {
	if s.forced4 {
		return s.blockV4
	}
	return netip.IPv4Unspecified()
}

func (s *Synthesizer) effectiveV6() netip.Addr {
	if s.forced6 {
		return s.blockV6
	}
	return netip.IPv6Unspecified()
}

// answer appends the address record matching the question type, when the
// corresponding address is usable.
func (s *Synthesizer) answer(m *dns.Msg, q dns.Question, v4, v6 netip.Addr) {
	hdr := dns.RR_Header{
		Name:   q.Name,
		Rrtype: q.Qtype,
		Class:  dns.ClassINET,
		Ttl:    s.TTL,
	}
	switch q.Qtype {
	case dns.TypeA:
		if v4.IsValid() {
			m.Answer = append(m.Answer, &dns.A{Hdr: hdr, A: net.IP(v4.AsSlice())})
		}
	case dns.TypeAAAA:
		if v6.IsValid() {
			m.Answer = append(m.Answer, &dns.AAAA{Hdr: hdr, AAAA: net.IP(v6.AsSlice())})
		}
	}
}
