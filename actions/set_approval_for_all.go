// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/hypersdk-labs/nftledgervm/consts"
	"github.com/hypersdk-labs/nftledgervm/storage"
)

var _ chain.Action = (*SetApprovalForAll)(nil)

type SetApprovalForAll struct {
	// Operator is granted (or stripped of) transfer rights over all of the
	// actor's tokens.
	Operator codec.Address `json:"operator"`

	Approved bool `json:"approved"`
}

// GetTypeID implements chain.Action.
func (*SetApprovalForAll) GetTypeID() uint8 {
	return consts.SetApprovalForAllID
}

// StateKeys implements chain.Action.
func (s *SetApprovalForAll) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.OperatorKey(actor, s.Operator)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*SetApprovalForAll) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.OperatorChunks}
}

// Execute implements chain.Action.
func (s *SetApprovalForAll) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if err := storage.SetOperator(ctx, mu, actor, s.Operator, s.Approved); err != nil {
		return nil, err
	}
	return &SetApprovalForAllResult{Approved: s.Approved}, nil
}

// ComputeUnits implements chain.Action.
func (*SetApprovalForAll) ComputeUnits(chain.Rules) uint64 {
	return SetApprovalForAllComputeUnits
}

// Size implements chain.Action.
func (*SetApprovalForAll) Size() int {
	return codec.AddressLen + 1
}

// Marshal implements chain.Action.
func (s *SetApprovalForAll) Marshal(p *codec.Packer) {
	p.PackAddress(s.Operator)
	p.PackBool(s.Approved)
}

// ValidRange implements chain.Action.
func (*SetApprovalForAll) ValidRange(chain.Rules) (int64, int64) {
	// Returning -1, -1 means that the action is always valid.
	return -1, -1
}

func UnmarshalSetApprovalForAll(p *codec.Packer) (chain.Action, error) {
	var set SetApprovalForAll
	p.UnpackAddress(&set.Operator)
	set.Approved = p.UnpackBool()
	return &set, p.Err()
}

var _ codec.Typed = (*SetApprovalForAllResult)(nil)

type SetApprovalForAllResult struct {
	Approved bool `json:"approved"`
}

func (*SetApprovalForAllResult) GetTypeID() uint8 {
	return consts.SetApprovalForAllID
}
