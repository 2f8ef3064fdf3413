package resolve

import (
	"context"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/miekg/dns"
)

// startStubDNS serves canned A answers on a loopback UDP port and returns
// the server address. Names absent from answers get NXDOMAIN.
func startStubDNS(t *testing.T, answers map[string][]string, queries *atomic.Int64) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		if queries != nil {
			queries.Add(1)
		}

		reply := new(dns.Msg)
		reply.SetReply(req)

		name := strings.ToLower(strings.TrimSuffix(req.Question[0].Name, "."))
		addrs, ok := answers[name]
		if !ok {
			reply.Rcode = dns.RcodeNameError
		} else {
			for _, addr := range addrs {
				reply.Answer = append(reply.Answer, &dns.A{
					Hdr: dns.RR_Header{
						Name:   req.Question[0].Name,
						Rrtype: dns.TypeA,
						Class:  dns.ClassINET,
						Ttl:    60,
					},
					A: net.ParseIP(addr),
				})
			}
		}
		_ = w.WriteMsg(reply)
	})

	server := &dns.Server{PacketConn: pc, Handler: mux}
	go func() { _ = server.ActivateAndServe() }()
	t.Cleanup(func() { _ = server.Shutdown() })

	return pc.LocalAddr().String()
}

func TestLookupAReturnsSortedAddresses(t *testing.T) {
	t.Parallel()

	addr := startStubDNS(t, map[string][]string{
		"multi.example.com": {"9.9.9.9", "1.2.3.4", "5.6.7.8"},
	}, nil)

	resolver := NewResolver(Options{Nameserver: addr, Timeout: 2 * time.Second})

	got := resolver.LookupA(context.Background(), "multi.example.com")
	want := []string{"1.2.3.4", "5.6.7.8", "9.9.9.9"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupANXDomainCollapsesToNil(t *testing.T) {
	t.Parallel()

	addr := startStubDNS(t, nil, nil)
	resolver := NewResolver(Options{Nameserver: addr, Timeout: 2 * time.Second})

	if got := resolver.LookupA(context.Background(), "missing.example.com"); got != nil {
		t.Errorf("LookupA = %v, want nil", got)
	}
}

func TestLookupAMemoizesPerName(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64
	addr := startStubDNS(t, map[string][]string{
		"cached.example.com": {"1.2.3.4"},
	}, &queries)

	resolver := NewResolver(Options{Nameserver: addr, Timeout: 2 * time.Second})

	for i := 0; i < 3; i++ {
		if got := resolver.LookupA(context.Background(), "cached.example.com"); len(got) != 1 {
			t.Fatalf("lookup %d returned %v", i, got)
		}
	}
	if n := queries.Load(); n != 1 {
		t.Errorf("server saw %d queries, want 1", n)
	}
}

func TestLookupAMemoizesMisses(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64
	addr := startStubDNS(t, nil, &queries)

	resolver := NewResolver(Options{Nameserver: addr, Timeout: 2 * time.Second, Retries: 1})

	resolver.LookupA(context.Background(), "missing.example.com")
	resolver.LookupA(context.Background(), "missing.example.com")

	if n := queries.Load(); n != 1 {
		t.Errorf("server saw %d queries, want 1", n)
	}
}

func TestNewResolverNameserverDefaults(t *testing.T) {
	t.Parallel()

	if got := NewResolver(Options{}).nameserver; got != "8.8.8.8:53" {
		t.Errorf("default nameserver = %q, want 8.8.8.8:53", got)
	}
	if got := NewResolver(Options{Nameserver: "9.9.9.9"}).nameserver; got != "9.9.9.9:53" {
		t.Errorf("bare-IP nameserver = %q, want 9.9.9.9:53", got)
	}
}

func TestLookupAUnreachableServer(t *testing.T) {
	t.Parallel()

	// Reserved TEST-NET address; nothing answers there.
	resolver := NewResolver(Options{
		Nameserver: "192.0.2.1:53",
		Timeout:    200 * time.Millisecond,
		Retries:    1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if got := resolver.LookupA(ctx, "example.com"); got != nil {
		t.Errorf("LookupA against dead server = %v, want nil", got)
	}
}
