// Package discovery locates Neptune nodes through DNS. Operators publish
// their RPC endpoints as SRV records at _neptune._tcp.{domain} and pin the
// public key their node attests with in a TXT record at _neptune.{domain},
// so a client can bootstrap from nothing but a domain name.
package discovery

import (
	"encoding/hex"
	"fmt"
	"net"
	"sort"
	"strings"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// DNSResolver defines the interface for DNS lookups.
// This allows tests to mock DNS resolution.
type DNSResolver interface {
	// LookupSRV looks up SRV records for the given service, proto, and name.
	LookupSRV(service, proto, name string) (string, []*net.SRV, error)

	// LookupTXT looks up TXT records for the given name.
	LookupTXT(name string) ([]string, error)
}

// defaultDNSResolver wraps the standard net package DNS functions.
type defaultDNSResolver struct{}

func (d *defaultDNSResolver) LookupSRV(service, proto, name string) (string, []*net.SRV, error) {
	return net.LookupSRV(service, proto, name)
}

func (d *defaultDNSResolver) LookupTXT(name string) ([]string, error) {
	return net.LookupTXT(name)
}

// DefaultDNSResolver is the production DNS resolver using the net package.
var DefaultDNSResolver DNSResolver = &defaultDNSResolver{}

// SRVService is the SRV service label under which node endpoints are
// published: _neptune._tcp.{domain}.
const SRVService = "neptune"

// ResolveEndpoints resolves _neptune._tcp.{domain} SRV records.
// Returns endpoint addresses (host:port) sorted by priority then weight.
func ResolveEndpoints(domain string) ([]string, error) {
	return ResolveEndpointsWithResolver(domain, DefaultDNSResolver)
}

// ResolveEndpointsWithResolver resolves SRV records using the provided DNS resolver.
func ResolveEndpointsWithResolver(domain string, resolver DNSResolver) ([]string, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	_, addrs, err := resolver.LookupSRV(SRVService, "tcp", domain)
	if err != nil {
		return nil, fmt.Errorf("%w: SRV lookup for _%s._tcp.%s: %w", ErrDNSLookupFailed, SRVService, domain, err)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for _%s._tcp.%s", ErrNoEndpoints, SRVService, domain)
	}

	// Sort by priority (ascending), then by weight (descending)
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Priority != addrs[j].Priority {
			return addrs[i].Priority < addrs[j].Priority
		}
		return addrs[i].Weight > addrs[j].Weight
	})

	endpoints := make([]string, len(addrs))
	for i, srv := range addrs {
		host := strings.TrimSuffix(srv.Target, ".")
		endpoints[i] = fmt.Sprintf("%s:%d", host, srv.Port)
	}

	return endpoints, nil
}

// ResolveOperatorKey resolves the _neptune.{domain} TXT record with the
// neptune= prefix. Returns the operator's compressed public key.
func ResolveOperatorKey(domain string) (*ec.PublicKey, error) {
	return ResolveOperatorKeyWithResolver(domain, DefaultDNSResolver)
}

// ResolveOperatorKeyWithResolver resolves the operator key using the provided
// DNS resolver. It looks up _neptune.{domain} TXT records and extracts the
// key from records with the "neptune=" prefix (e.g., "neptune=02a1b2c3...").
// The key must parse as a valid compressed secp256k1 point.
func ResolveOperatorKeyWithResolver(domain string, resolver DNSResolver) (*ec.PublicKey, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrDNSLookupFailed)
	}

	name := "_neptune." + domain
	txts, err := resolver.LookupTXT(name)
	if err != nil {
		return nil, fmt.Errorf("%w: TXT lookup for %s: %w", ErrDNSLookupFailed, name, err)
	}

	if len(txts) == 0 {
		return nil, fmt.Errorf("%w: no TXT records for %s", ErrDNSLookupFailed, name)
	}

	// Find the first TXT record with the "neptune=" prefix.
	const prefix = "neptune="
	var pubKeyHex string
	for _, txt := range txts {
		txt = strings.TrimSpace(txt)
		if strings.HasPrefix(txt, prefix) {
			pubKeyHex = strings.TrimSpace(strings.TrimPrefix(txt, prefix))
			break
		}
	}

	if pubKeyHex == "" {
		return nil, fmt.Errorf("%w: no neptune= TXT record for %s", ErrDNSLookupFailed, name)
	}

	if len(pubKeyHex) != 66 {
		return nil, fmt.Errorf("%w: expected 66 hex chars, got %d", ErrInvalidPubKey, len(pubKeyHex))
	}

	pubKeyBytes, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex in TXT record: %w", ErrInvalidPubKey, err)
	}

	if pubKeyBytes[0] != 0x02 && pubKeyBytes[0] != 0x03 {
		return nil, fmt.Errorf("%w: invalid prefix byte 0x%02x", ErrInvalidPubKey, pubKeyBytes[0])
	}

	pub, err := ec.PublicKeyFromBytes(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPubKey, err)
	}

	return pub, nil
}
