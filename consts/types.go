// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	MintTokenID         uint8 = 0
	BurnTokenID         uint8 = 1
	TransferTokenID     uint8 = 2
	ApproveTokenID      uint8 = 3
	SetApprovalForAllID uint8 = 4
)
