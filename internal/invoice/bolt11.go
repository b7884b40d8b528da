// Package invoice parses BOLT11 Lightning invoices and performs the semantic
// checks a withdrawal must pass before it is safe to pay.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// DefaultExpiry applies when an invoice carries no expiry tagged field.
const DefaultExpiry = time.Hour

const signatureGroups = 104 // 65-byte recoverable signature in 5-bit groups

// chainPrefixes maps hrp prefixes to chain names. Longer prefixes must be
// checked first: lnbcrt would otherwise match lnbc.
var chainPrefixes = []struct {
	prefix string
	chain  string
}{
	{"lnbcrt", "regtest"},
	{"lntbs", "signet"},
	{"lntb", "testnet"},
	{"lnbc", "mainnet"},
}

// Invoice is the structurally-parsed form of a BOLT11 payment request.
type Invoice struct {
	Timestamp   time.Time
	Raw         string
	Chain       string
	Description string
	Expiry      time.Duration
	AmountMsat  int64
	PaymentHash [32]byte
}

// IsExpired reports whether the invoice can no longer be paid at the given
// instant.
func (inv *Invoice) IsExpired(now time.Time) bool {
	return now.After(inv.Timestamp.Add(inv.Expiry))
}

// Parse decodes a BOLT11 invoice string. It validates structure only;
// semantic checks (expiry, chain, duplicates) are the Checker's job.
// The signature field is carried but not verified: the payment engine
// re-validates the invoice before dispatch.
func Parse(raw string) (*Invoice, error) {
	bech := raw
	if strings.ToUpper(bech) == bech {
		bech = strings.ToLower(bech)
	}

	hrp, data, err := bech32.DecodeNoLimit(bech)
	if err != nil {
		return nil, fmt.Errorf("bech32 decode: %w", err)
	}

	chain, amountPart, err := splitHRP(hrp)
	if err != nil {
		return nil, err
	}

	amountMsat, err := parseAmount(amountPart)
	if err != nil {
		return nil, err
	}

	if len(data) < 7+signatureGroups {
		return nil, fmt.Errorf("invoice data too short: %d groups", len(data))
	}

	inv := &Invoice{
		Raw:        raw,
		Chain:      chain,
		AmountMsat: amountMsat,
		Timestamp:  time.Unix(groupsToInt(data[:7]), 0),
		Expiry:     DefaultExpiry,
	}

	if err := parseTaggedFields(inv, data[7:len(data)-signatureGroups]); err != nil {
		return nil, err
	}

	return inv, nil
}

func splitHRP(hrp string) (chain, amountPart string, err error) {
	for _, cp := range chainPrefixes {
		if strings.HasPrefix(hrp, cp.prefix) {
			return cp.chain, strings.TrimPrefix(hrp, cp.prefix), nil
		}
	}
	return "", "", fmt.Errorf("unknown invoice prefix: %q", hrp)
}

// parseAmount converts the hrp amount part to msat. An empty part means the
// invoice carries no amount.
func parseAmount(part string) (int64, error) {
	if part == "" {
		return 0, nil
	}

	multiplier := part[len(part)-1]
	digits := part
	if multiplier == 'm' || multiplier == 'u' || multiplier == 'n' || multiplier == 'p' {
		digits = part[:len(part)-1]
	} else {
		multiplier = 0
	}

	if digits == "" {
		return 0, fmt.Errorf("invalid amount: %q", part)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid amount: %q", part)
	}

	switch multiplier {
	case 0:
		return n * 100_000_000_000, nil // whole bitcoin
	case 'm':
		return n * 100_000_000, nil
	case 'u':
		return n * 100_000, nil
	case 'n':
		return n * 100, nil
	case 'p':
		if n%10 != 0 {
			return 0, fmt.Errorf("sub-millisatoshi amount: %q", part)
		}
		return n / 10, nil
	}
	return 0, fmt.Errorf("invalid amount multiplier: %q", part)
}

func parseTaggedFields(inv *Invoice, fields []byte) error {
	i := 0
	for i+3 <= len(fields) {
		typ := fields[i]
		length := int(fields[i+1])<<5 | int(fields[i+2])
		i += 3
		if i+length > len(fields) {
			return fmt.Errorf("truncated tagged field %d", typ)
		}
		field := fields[i : i+length]
		i += length

		switch typ {
		case 1: // p: payment hash
			if length != 52 {
				continue // skip malformed field, per BOLT11
			}
			decoded, err := groupsToBytes(field)
			if err != nil {
				return fmt.Errorf("payment hash field: %w", err)
			}
			copy(inv.PaymentHash[:], decoded)
		case 6: // x: expiry
			inv.Expiry = time.Duration(groupsToInt(field)) * time.Second
		case 13: // d: description
			decoded, err := groupsToBytes(field)
			if err != nil {
				return fmt.Errorf("description field: %w", err)
			}
			inv.Description = string(decoded)
		}
	}
	return nil
}

// groupsToInt interprets 5-bit groups as a big-endian integer.
func groupsToInt(groups []byte) int64 {
	var v int64
	for _, g := range groups {
		v = v<<5 | int64(g)
	}
	return v
}

// groupsToBytes repacks 5-bit groups into bytes, discarding padding bits.
func groupsToBytes(groups []byte) ([]byte, error) {
	converted, err := bech32.ConvertBits(groups, 5, 8, true)
	if err != nil {
		return nil, err
	}
	full := len(groups) * 5 / 8
	return converted[:full], nil
}
