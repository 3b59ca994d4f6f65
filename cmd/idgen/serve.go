/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/fogfish/idflow/clock"
	"github.com/fogfish/idflow/entropy"
	"github.com/fogfish/idflow/generator"
	"github.com/fogfish/idflow/idgrpc"
	"github.com/fogfish/idflow/internal/config"
	"github.com/fogfish/idflow/layout"
	"github.com/fogfish/idflow/schema"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a gRPC server streaming ids from a configured generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel(cfg.LogLevel),
			}))
			slog.SetDefault(logger)

			l, ok := presetByName(cfg.Preset)
			if !ok {
				return fmt.Errorf("idgen: unknown preset %q", cfg.Preset)
			}
			epoch := uint64(schema.Epoch(l).UnixMilli())
			src := clock.NewMonotonic(time.UnixMilli(0))

			srv := idgrpc.NewServer()
			name := cfg.Preset

			if l.Kind == layout.ULID && l.TotalBits == 128 {
				srv.Register128(name, generator.NewMutexULID128(l, epoch, src, entropy.CryptoRand{}))
			} else {
				g, err := newSnowflakeShell(cfg.Shell, l, epoch, cfg.MachineID, src)
				if err != nil {
					return err
				}
				srv.Register64(name, g)
			}

			lis, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}

			grpcServer := grpc.NewServer()
			grpcServer.RegisterService(&idgrpc.ServiceDesc, srv)

			logger.Info("idgen server listening", "addr", cfg.Addr, "preset", cfg.Preset, "shell", cfg.Shell)
			return grpcServer.Serve(lis)
		},
	}
	return cmd
}

func newSnowflakeShell(shell string, l layout.Layout, epoch, machineID uint64, src clock.Source) (idgrpc.Snowflake64, error) {
	switch shell {
	case "basic":
		return generator.NewBasicSnowflake(l, epoch, machineID, src)
	case "atomic":
		return generator.NewAtomicSnowflake(l, epoch, machineID, src)
	default:
		return generator.NewMutexSnowflake(l, epoch, machineID, src)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
