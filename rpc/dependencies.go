// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/hypersdk/codec"

	"github.com/hypersdk-labs/nftledgervm/genesis"
	"github.com/hypersdk-labs/nftledgervm/ledger"
)

const JSONRPCEndpoint = "/nftledgerapi"

type Controller interface {
	Genesis() *genesis.Genesis
	Tracer() trace.Tracer
	GetTokenFromState(context.Context, uint64) (bool, codec.Address, codec.Address, error)
	GetBalanceFromState(context.Context, codec.Address) (uint64, error)
	IsOperatorFromState(context.Context, codec.Address, codec.Address) (bool, error)
	SupportsInterface(ledger.InterfaceID) bool
}

var _ Controller = (*ledger.Ledger)(nil)
