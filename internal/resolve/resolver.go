// =============================================================================
// internal/resolve/resolver.go - Live DNS lookups for the audit engine
// =============================================================================
package resolve

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/bryanCE/zoneaudit/pkg/nameservers"
)

// Options configures lookup behavior.
type Options struct {
	// Nameserver is the server to query, as IP or ip:port. Empty selects
	// the default public nameserver.
	Nameserver string
	// Timeout bounds a single exchange.
	Timeout time.Duration
	// Retries is the number of attempts per lookup.
	Retries int
}

// Resolver performs live A-record lookups against a single nameserver.
// Results are memoized per name for the resolver's lifetime, so a name
// visited both as a chain terminus and as a standalone record costs one
// query. Safe for concurrent use.
type Resolver struct {
	client     *dns.Client
	nameserver string
	retries    int

	mu    sync.Mutex
	cache map[string][]string
}

// NewResolver creates a resolver with defaults filled in for unset options.
func NewResolver(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}

	nameserver := opts.Nameserver
	if nameserver == "" {
		nameserver = nameservers.Default()[0].Addr()
	}
	if !strings.Contains(nameserver, ":") {
		nameserver += ":53"
	}

	return &Resolver{
		client:     &dns.Client{Timeout: opts.Timeout},
		nameserver: nameserver,
		retries:    opts.Retries,
		cache:      make(map[string][]string),
	}
}

// LookupA resolves the A records for name. Addresses come back sorted; nil
// means the name did not resolve, whatever the cause. Timeouts, NXDOMAIN,
// SERVFAIL and transport errors all collapse to nil because every caller
// handles them identically.
func (r *Resolver) LookupA(ctx context.Context, name string) []string {
	r.mu.Lock()
	if addrs, ok := r.cache[name]; ok {
		r.mu.Unlock()
		return addrs
	}
	r.mu.Unlock()

	addrs := r.lookup(ctx, name)

	r.mu.Lock()
	r.cache[name] = addrs
	r.mu.Unlock()

	return addrs
}

func (r *Resolver) lookup(ctx context.Context, name string) []string {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	msg.RecursionDesired = true

	var response *dns.Msg
	var err error

	for attempt := 0; attempt < r.retries; attempt++ {
		response, _, err = r.client.ExchangeContext(ctx, msg, r.nameserver)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil
		}
		if attempt < r.retries-1 {
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
		}
	}

	if err != nil || response == nil || response.Rcode != dns.RcodeSuccess {
		return nil
	}

	var addrs []string
	for _, answer := range response.Answer {
		if a, ok := answer.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}
	if len(addrs) == 0 {
		return nil
	}

	sort.Strings(addrs)
	return addrs
}
