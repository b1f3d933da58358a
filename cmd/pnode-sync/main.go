/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command pnode-sync discovers the pNode network, persists per-node state,
// and publishes change events and network snapshots.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/pnoderadar/pkg/config"
	"github.com/carverauto/pnoderadar/pkg/lifecycle"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/registry"
	pnodesync "github.com/carverauto/pnoderadar/pkg/sync"
	"github.com/carverauto/pnoderadar/pkg/version"
)

const (
	serviceName       = "pnode-sync"
	defaultConfigPath = "/etc/pnoderadar/pnode-sync.json"
	shutdownTimeout   = 30 * time.Second
)

var errNoRegistry = errors.New("registry lookup needs --rpc-url and --program-id or a registry config section")

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "pNode network state synchronization and aggregation engine",
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the config file")

	root.AddCommand(
		newRunCmd(&configPath),
		newSyncOnceCmd(&configPath),
		newRegistryLookupCmd(&configPath),
		newVersionCmd(),
	)

	return root
}

func loadConfig(ctx context.Context, path string) (*pnodesync.Config, logger.Logger, error) {
	var cfg pnodesync.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, path, &cfg); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := lifecycle.CreateComponentLogger(serviceName, cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return &cfg, log, nil
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync loop and the admin API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfig(ctx, *configPath)
			if err != nil {
				return err
			}

			log.Info().Str("version", version.GetFullVersion()).Msg("Starting " + serviceName)

			a, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}

			return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
				ServiceName:     serviceName,
				Service:         a,
				ShutdownTimeout: shutdownTimeout,
				Logger:          log,
			})
		},
	}
}

func newSyncOnceCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-once",
		Short: "Run a single sync cycle and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfig(ctx, *configPath)
			if err != nil {
				return err
			}

			a, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			return runOnce(ctx, a.service, cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
		},
	}
}

type cycleRunner interface {
	RunSyncCycle(ctx context.Context) pnodesync.CycleResult
}

func runOnce(ctx context.Context, runner cycleRunner, out io.Writer) error {
	result := runner.RunSyncCycle(ctx)

	fmt.Fprintln(out, result.Message())

	return result.Err
}

func newRegistryLookupCmd(configPath *string) *cobra.Command {
	var regCfg models.RegistryConfig

	cmd := &cobra.Command{
		Use:   "registry-lookup <node-pubkey>...",
		Short: "Print the on-chain registry record of one or more pNodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.NewTestLogger()

			if regCfg.RPCURL == "" || regCfg.ProgramID == "" {
				cfg, cfgLog, err := loadConfig(ctx, *configPath)
				if err != nil {
					return err
				}

				if cfg.Registry == nil {
					return errNoRegistry
				}

				regCfg, log = *cfg.Registry, cfgLog
			}

			client, err := registry.NewClient(&regCfg, nil, log)
			if err != nil {
				return err
			}

			return lookupAll(ctx, client, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&regCfg.RPCURL, "rpc-url", "", "registry chain RPC URL")
	cmd.Flags().StringVar(&regCfg.ProgramID, "program-id", "", "registry program id (base58)")

	return cmd
}

type accountLookup interface {
	Lookup(ctx context.Context, nodeID string) (*models.RegistryAccount, error)
}

// lookupResult is one line of registry-lookup output.
type lookupResult struct {
	NodeID  string                  `json:"node_id"`
	Found   bool                    `json:"found"`
	Account *models.RegistryAccount `json:"account,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func lookupAll(ctx context.Context, client accountLookup, nodeIDs []string, out io.Writer) error {
	enc := json.NewEncoder(out)

	var failed int

	for _, id := range nodeIDs {
		res := lookupResult{NodeID: id}

		account, err := client.Lookup(ctx, id)
		switch {
		case err != nil:
			res.Error = err.Error()
			failed++
		case account != nil:
			res.Found = true
			res.Account = account
		}

		if err := enc.Encode(res); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(nodeIDs))
	}

	return nil
}
