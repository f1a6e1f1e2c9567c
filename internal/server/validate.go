package server

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// solanaKeyLen is the decoded length of a Solana address.
const solanaKeyLen = 32

// validateAddress checks that an address is base58 and decodes to 32
// bytes. When requireOnCurve is set the decoded key must also be a
// valid ed25519 point: wallet addresses are real public keys, while
// token mints may be off-curve program-derived addresses.
func validateAddress(addr string, requireOnCurve bool) error {
	if addr == "" {
		return fmt.Errorf("address is empty")
	}

	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("not base58: %w", err)
	}
	if len(decoded) != solanaKeyLen {
		return fmt.Errorf("decodes to %d bytes, want %d", len(decoded), solanaKeyLen)
	}

	if requireOnCurve {
		if _, err := new(edwards25519.Point).SetBytes(decoded); err != nil {
			return fmt.Errorf("not an ed25519 public key")
		}
	}

	return nil
}
