// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/hypersdk-labs/nftledgervm/storage"
)

type CustomAllocation struct {
	Address string `json:"address"` // hex address
	TokenID uint64 `json:"tokenID"`
}

type Genesis struct {
	// Allocations
	InitialTokens []*CustomAllocation `json:"initialTokens"`
}

func Default() *Genesis {
	return &Genesis{}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Load mints every initial allocation. Duplicate token IDs in the allocation
// list fail with [storage.ErrTokenExists].
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	for _, alloc := range g.InitialTokens {
		addr, err := codec.StringToAddress(alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: addr=%s", err, alloc.Address)
		}
		if err := storage.MintToken(ctx, mu, addr, alloc.TokenID); err != nil {
			return fmt.Errorf("%w: addr=%s, tokenID=%d", err, alloc.Address, alloc.TokenID)
		}
	}
	return nil
}
