package discovery

import "errors"

var (
	// ErrDNSLookupFailed indicates a DNS SRV/TXT lookup failed.
	ErrDNSLookupFailed = errors.New("discovery: DNS lookup failed")

	// ErrNoEndpoints indicates no SRV records were found for the domain.
	ErrNoEndpoints = errors.New("discovery: no endpoints found")

	// ErrInvalidPubKey indicates an advertised operator key is not a valid
	// compressed secp256k1 public key.
	ErrInvalidPubKey = errors.New("discovery: invalid compressed public key")

	// ErrDNSSECValidationFailed indicates the upstream resolver did not
	// authenticate the response.
	ErrDNSSECValidationFailed = errors.New("discovery: DNSSEC validation failed")
)
