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

var _ chain.Action = (*ApproveToken)(nil)

type ApproveToken struct {
	// To is the account being granted transfer rights over [TokenID]. It may
	// be the empty address to clear an existing approval.
	To codec.Address `json:"to"`

	// Owner is the stated owner of [TokenID]; it anchors the operator state
	// key since the actual owner is only known at execution time.
	Owner codec.Address `json:"owner"`

	TokenID uint64 `json:"tokenID"`
}

// GetTypeID implements chain.Action.
func (*ApproveToken) GetTypeID() uint8 {
	return consts.ApproveTokenID
}

// StateKeys implements chain.Action.
func (a *ApproveToken) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenKey(a.TokenID)):         state.All,
		string(storage.OperatorKey(a.Owner, actor)): state.Read,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ApproveToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenChunks, storage.OperatorChunks}
}

// Execute implements chain.Action.
func (a *ApproveToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	exists, owner, _, err := storage.GetToken(ctx, mu, a.TokenID)
	if err != nil {
		return nil, err
	}
	if exists && owner != a.Owner {
		return nil, storage.ErrWrongOwner
	}
	if err := storage.ApproveToken(ctx, mu, actor, a.To, a.TokenID); err != nil {
		return nil, err
	}
	return &ApproveTokenResult{Approved: a.To}, nil
}

// ComputeUnits implements chain.Action.
func (*ApproveToken) ComputeUnits(chain.Rules) uint64 {
	return ApproveTokenComputeUnits
}

// Size implements chain.Action.
func (*ApproveToken) Size() int {
	return codec.AddressLen*2 + hconsts.Uint64Len
}

// Marshal implements chain.Action.
func (a *ApproveToken) Marshal(p *codec.Packer) {
	p.PackAddress(a.To)
	p.PackAddress(a.Owner)
	p.PackUint64(a.TokenID)
}

// ValidRange implements chain.Action.
func (*ApproveToken) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func UnmarshalApproveToken(p *codec.Packer) (chain.Action, error) {
	var approve ApproveToken
	p.UnpackAddress(&approve.To)
	p.UnpackAddress(&approve.Owner)
	approve.TokenID = p.UnpackUint64(false)
	return &approve, p.Err()
}

var _ codec.Typed = (*ApproveTokenResult)(nil)

type ApproveTokenResult struct {
	// Approved is the account now holding the approval (the empty address if
	// the approval was cleared).
	Approved codec.Address `json:"approved"`
}

func (*ApproveTokenResult) GetTypeID() uint8 {
	return consts.ApproveTokenID
}
