// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	hconsts "github.com/ava-labs/hypersdk/consts"

	"github.com/hypersdk-labs/nftledgervm/consts"
	"github.com/hypersdk-labs/nftledgervm/storage"
)

var _ chain.Action = (*MintToken)(nil)

type MintToken struct {
	To codec.Address `json:"to"`

	TokenID uint64 `json:"tokenID"`
}

// GetTypeID implements chain.Action.
func (*MintToken) GetTypeID() uint8 {
	return consts.MintTokenID
}

// StateKeys implements chain.Action.
func (m *MintToken) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenKey(m.TokenID)): state.All,
		string(storage.BalanceKey(m.To)):    state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*MintToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenChunks, storage.BalanceChunks}
}

// Execute implements chain.Action.
func (m *MintToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if err := storage.MintToken(ctx, mu, m.To, m.TokenID); err != nil {
		return nil, err
	}
	balance, err := storage.GetBalance(ctx, mu, m.To)
	if err != nil {
		return nil, err
	}
	return &MintTokenResult{Balance: balance}, nil
}

// ComputeUnits implements chain.Action.
func (*MintToken) ComputeUnits(chain.Rules) uint64 {
	return MintTokenComputeUnits
}

// Size implements chain.Action.
func (*MintToken) Size() int {
	return codec.AddressLen + hconsts.Uint64Len
}

// Marshal implements chain.Action.
func (m *MintToken) Marshal(p *codec.Packer) {
	p.PackAddress(m.To)
	p.PackUint64(m.TokenID)
}

// ValidRange implements chain.Action.
func (*MintToken) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func UnmarshalMintToken(p *codec.Packer) (chain.Action, error) {
	var mint MintToken
	p.UnpackAddress(&mint.To)
	mint.TokenID = p.UnpackUint64(false)
	return &mint, p.Err()
}

var _ codec.Typed = (*MintTokenResult)(nil)

type MintTokenResult struct {
	// Balance is the recipient's balance after the mint.
	Balance uint64 `json:"balance"`
}

func (*MintTokenResult) GetTypeID() uint8 {
	return consts.MintTokenID // Common practice is to use the action ID
}
