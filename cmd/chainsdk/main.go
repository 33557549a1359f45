// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/config"
	"github.com/ava-labs/chainsdk/evm/batch"
	"github.com/ava-labs/chainsdk/evm/connection"
	"github.com/ava-labs/chainsdk/evm/contract/erc20"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/numeric"
)

const (
	TokenKey    = "token"
	AccountsKey = "accounts"
)

var (
	errNoToken    = errors.New("--token is required")
	errNoAccounts = errors.New("--accounts is required")
)

// chainsdk prints the balances of a set of accounts in one ERC-20 token,
// reading the decimals and every balance in a single batched request.
func main() {
	fs := config.BuildFlagSet()
	fs.String(TokenKey, "", "Address of the ERC-20 token")
	fs.StringSlice(AccountsKey, nil, "Accounts to read the balance of")

	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	c, err := config.GetConfig(v)
	if err != nil {
		fmt.Printf("couldn't load config: %s\n", err)
		os.Exit(1)
	}

	logFactory := logging.NewFactory(c.Logging)
	defer logFactory.Close()

	log, err := logFactory.Make("chainsdk")
	if err != nil {
		fmt.Printf("couldn't create logger: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, c, v.GetString(TokenKey), v.GetStringSlice(AccountsKey)); err != nil {
		log.Error("failed to read balances", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log logging.Logger, c config.Config, tokenStr string, accountStrs []string) error {
	if !common.IsHexAddress(tokenStr) {
		return errNoToken
	}
	if len(accountStrs) == 0 {
		return errNoAccounts
	}
	token := common.HexToAddress(tokenStr)
	accounts := make([]common.Address, len(accountStrs))
	for i, s := range accountStrs {
		if !common.IsHexAddress(s) {
			return fmt.Errorf("invalid account %q", s)
		}
		accounts[i] = common.HexToAddress(s)
	}

	manager := connection.NewManager(log, nil)
	defer manager.Close()

	client, err := manager.Client(ctx, c.Chain)
	if err != nil {
		return err
	}
	erc20Token, err := erc20.New(manager, log)
	if err != nil {
		return err
	}

	var (
		executor = batch.NewExecutor(client.RPC, log, c.Batch)
		decimals uint8
		balances = make([]decimal.Decimal, len(accounts))
	)
	executor.Add(func(req *batch.Request) error {
		return erc20Token.BatchDecimals(req, token, func(_ context.Context, d uint8) error {
			decimals = d
			return nil
		}, nil)
	})
	for i, account := range accounts {
		i, account := i, account
		executor.Add(func(req *batch.Request) error {
			return erc20Token.BatchBalanceOf(req, token, account, func(_ context.Context, balance decimal.Decimal) error {
				balances[i] = balance
				return nil
			}, nil)
		})
	}
	if err := executor.Execute(ctx); err != nil {
		return err
	}

	for i, account := range accounts {
		fmt.Printf("%s %s\n", account.Hex(), numeric.Scale(balances[i], int32(decimals)))
	}
	log.Info("read balances",
		zap.Stringer("token", token),
		zap.Uint64("chainID", c.Chain.ID),
		zap.Int("accounts", len(accounts)),
	)
	return nil
}
