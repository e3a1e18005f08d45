// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

// InterfaceID identifies a capability exposed by the ledger.
type InterfaceID [4]byte

var (
	// IntrospectionInterfaceID is the base introspection capability
	// (supportsInterface itself).
	IntrospectionInterfaceID = InterfaceID{0x01, 0xff, 0xc9, 0xa7}

	// TokenLedgerInterfaceID is the non-fungible token ledger capability.
	TokenLedgerInterfaceID = InterfaceID{0x80, 0xac, 0x58, 0xcd}
)

// SupportsInterface reports whether [id] names a capability of the ledger.
// It is a static classification: unknown identifiers return false, never an
// error, and no ledger state is consulted.
func SupportsInterface(id InterfaceID) bool {
	switch id {
	case IntrospectionInterfaceID, TokenLedgerInterfaceID:
		return true
	default:
		return false
	}
}
