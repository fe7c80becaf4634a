// Package identity canonicalizes the opaque actor strings supplied by the
// host into validated addresses. The engine never trusts a raw string: every
// actor or subject passes through Canonicalize before it touches state.
package identity

import (
	"strings"

	"skillexify/pkg/domainerrors"
)

// Address is a canonical, validated actor identifier.
type Address string

func (a Address) String() string { return string(a) }

const (
	minAddressLen = 3
	maxAddressLen = 90
)

// Canonicalize trims and lowercases raw and validates the result. The charset
// mirrors bech32-style account identifiers: lowercase alphanumerics only,
// no separators beyond the length bounds the host enforces upstream.
func Canonicalize(raw string) (Address, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) < minAddressLen || len(s) > maxAddressLen {
		return "", domainerrors.Newf(domainerrors.CodeInvalidAddress,
			"address length must be between %d and %d", minAddressLen, maxAddressLen)
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", domainerrors.Newf(domainerrors.CodeInvalidAddress,
				"address contains invalid character %q", r)
		}
	}
	return Address(s), nil
}
