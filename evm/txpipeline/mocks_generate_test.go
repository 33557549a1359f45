// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

//go:generate mockgen -package=${GOPACKAGE} -destination=mock_reader.go . Reader
//go:generate mockgen -package=${GOPACKAGE} -destination=mock_wallet.go . LocalSigner,ExternalSender
