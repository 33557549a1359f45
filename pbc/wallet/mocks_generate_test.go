// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wallet

//go:generate mockgen -package=${GOPACKAGE} -destination=mock_connected_wallet.go . ConnectedWallet
