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

var _ chain.Action = (*TransferToken)(nil)

type TransferToken struct {
	From codec.Address `json:"from"`

	To codec.Address `json:"to"`

	TokenID uint64 `json:"tokenID"`
}

// GetTypeID implements chain.Action.
func (*TransferToken) GetTypeID() uint8 {
	return consts.TransferTokenID
}

// StateKeys implements chain.Action.
func (t *TransferToken) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenKey(t.TokenID)):        state.All,
		string(storage.BalanceKey(t.From)):         state.Read | state.Write,
		string(storage.BalanceKey(t.To)):           state.All,
		string(storage.OperatorKey(t.From, actor)): state.Read,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*TransferToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenChunks, storage.BalanceChunks, storage.BalanceChunks, storage.OperatorChunks}
}

// Execute implements chain.Action.
func (t *TransferToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if err := storage.TransferToken(ctx, mu, actor, t.From, t.To, t.TokenID); err != nil {
		return nil, err
	}
	fromBalance, err := storage.GetBalance(ctx, mu, t.From)
	if err != nil {
		return nil, err
	}
	toBalance, err := storage.GetBalance(ctx, mu, t.To)
	if err != nil {
		return nil, err
	}
	return &TransferTokenResult{
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

// ComputeUnits implements chain.Action.
func (*TransferToken) ComputeUnits(chain.Rules) uint64 {
	return TransferTokenComputeUnits
}

// Size implements chain.Action.
func (*TransferToken) Size() int {
	return codec.AddressLen*2 + hconsts.Uint64Len
}

// Marshal implements chain.Action.
func (t *TransferToken) Marshal(p *codec.Packer) {
	p.PackAddress(t.From)
	p.PackAddress(t.To)
	p.PackUint64(t.TokenID)
}

// ValidRange implements chain.Action.
func (*TransferToken) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func UnmarshalTransferToken(p *codec.Packer) (chain.Action, error) {
	var transfer TransferToken
	p.UnpackAddress(&transfer.From)
	p.UnpackAddress(&transfer.To)
	transfer.TokenID = p.UnpackUint64(false)
	return &transfer, p.Err()
}

var _ codec.Typed = (*TransferTokenResult)(nil)

type TransferTokenResult struct {
	FromBalance uint64 `json:"fromBalance"`
	ToBalance   uint64 `json:"toBalance"`
}

func (*TransferTokenResult) GetTypeID() uint8 {
	return consts.TransferTokenID
}
