// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	MintTokenComputeUnits         = 1
	BurnTokenComputeUnits         = 1
	TransferTokenComputeUnits     = 1
	ApproveTokenComputeUnits      = 1
	SetApprovalForAllComputeUnits = 1
)
