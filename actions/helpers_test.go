// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/hypersdk-labs/nftledgervm/storage"
)

func createAddressWithSameDigits(num uint8) codec.Address {
	var addr codec.Address
	for i := range addr {
		addr[i] = num
	}
	return addr
}

// tokenStateKeys scopes every key a transfer or burn of [tokenID] between
// [from] and [to] may touch, with [actor] as the caller.
func tokenStateKeys(actor codec.Address, from codec.Address, to codec.Address, tokenID uint64) state.Keys {
	stateKeys := make(state.Keys)
	stateKeys.Add(string(storage.TokenKey(tokenID)), state.All)
	stateKeys.Add(string(storage.BalanceKey(from)), state.All)
	stateKeys.Add(string(storage.BalanceKey(to)), state.All)
	stateKeys.Add(string(storage.OperatorKey(from, actor)), state.Read)
	return stateKeys
}
