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

var _ chain.Action = (*BurnToken)(nil)

type BurnToken struct {
	// From is the stated owner of [TokenID]. The burn fails if it does not
	// match the actual owner.
	From codec.Address `json:"from"`

	TokenID uint64 `json:"tokenID"`
}

// GetTypeID implements chain.Action.
func (*BurnToken) GetTypeID() uint8 {
	return consts.BurnTokenID
}

// StateKeys implements chain.Action.
func (b *BurnToken) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenKey(b.TokenID)):        state.All,
		string(storage.BalanceKey(b.From)):         state.Read | state.Write,
		string(storage.OperatorKey(b.From, actor)): state.Read,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*BurnToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenChunks, storage.BalanceChunks, storage.OperatorChunks}
}

// Execute implements chain.Action.
func (b *BurnToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	exists, owner, _, err := storage.GetToken(ctx, mu, b.TokenID)
	if err != nil {
		return nil, err
	}
	if exists && owner != b.From {
		return nil, storage.ErrWrongOwner
	}
	if err := storage.BurnToken(ctx, mu, actor, b.TokenID); err != nil {
		return nil, err
	}
	balance, err := storage.GetBalance(ctx, mu, b.From)
	if err != nil {
		return nil, err
	}
	return &BurnTokenResult{Balance: balance}, nil
}

// ComputeUnits implements chain.Action.
func (*BurnToken) ComputeUnits(chain.Rules) uint64 {
	return BurnTokenComputeUnits
}

// Size implements chain.Action.
func (*BurnToken) Size() int {
	return codec.AddressLen + hconsts.Uint64Len
}

// Marshal implements chain.Action.
func (b *BurnToken) Marshal(p *codec.Packer) {
	p.PackAddress(b.From)
	p.PackUint64(b.TokenID)
}

// ValidRange implements chain.Action.
func (*BurnToken) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func UnmarshalBurnToken(p *codec.Packer) (chain.Action, error) {
	var burn BurnToken
	p.UnpackAddress(&burn.From)
	burn.TokenID = p.UnpackUint64(false)
	return &burn, p.Err()
}

var _ codec.Typed = (*BurnTokenResult)(nil)

type BurnTokenResult struct {
	// Balance is the owner's balance after the burn.
	Balance uint64 `json:"balance"`
}

func (*BurnTokenResult) GetTypeID() uint8 {
	return consts.BurnTokenID
}
