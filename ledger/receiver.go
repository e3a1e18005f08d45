// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/ava-labs/hypersdk/codec"
)

// TokenReceiver is consulted before a safe transfer is committed. A non-nil
// error rejects the transfer and none of its effects are applied.
type TokenReceiver interface {
	AcceptToken(ctx context.Context, operator codec.Address, from codec.Address, tokenID uint64, data []byte) error
}

// TokenReceiverFunc allows a plain function to act as a TokenReceiver.
type TokenReceiverFunc func(ctx context.Context, operator codec.Address, from codec.Address, tokenID uint64, data []byte) error

func (f TokenReceiverFunc) AcceptToken(ctx context.Context, operator codec.Address, from codec.Address, tokenID uint64, data []byte) error {
	return f(ctx, operator, from, tokenID, data)
}

// ReceiverResolver maps an account to its acceptance check. Accounts that
// resolve to false are plain accounts and always accept.
type ReceiverResolver func(codec.Address) (TokenReceiver, bool)

// AlwaysAccept is the plain-account behavior: every transfer is accepted.
var AlwaysAccept TokenReceiver = TokenReceiverFunc(
	func(context.Context, codec.Address, codec.Address, uint64, []byte) error {
		return nil
	},
)
