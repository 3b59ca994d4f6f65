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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fogfish/idflow/asyncid"
	"github.com/fogfish/idflow/base32"
	"github.com/fogfish/idflow/clock"
	"github.com/fogfish/idflow/entropy"
	"github.com/fogfish/idflow/generator"
	"github.com/fogfish/idflow/layout"
	"github.com/fogfish/idflow/schema"
	"github.com/spf13/cobra"
)

func nextCmd() *cobra.Command {
	var preset string
	var machineID uint64
	var encode bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Mint a single id and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := presetByName(preset)
			if !ok {
				return fmt.Errorf("idgen: unknown preset %q", preset)
			}

			epoch := uint64(schema.Epoch(l).UnixMilli())
			src := clock.NewMonotonic(time.UnixMilli(0))
			ctx := context.Background()

			if l.Kind == layout.ULID && l.TotalBits == 128 {
				g := generator.NewBasicULID128(l, epoch, src, entropy.CryptoRand{})
				id, err := asyncid.Await128(ctx, asyncid.TimeSleeper{}, g.TryNext, generator.Status128.ID)
				if err != nil {
					return err
				}
				if encode {
					fmt.Println(base32.Encode128(id))
				} else {
					fmt.Printf("%x%016x\n", id.Hi, id.Lo)
				}
				return nil
			}

			g, err := generator.NewMutexSnowflake(l, epoch, machineID, src)
			if err != nil {
				return err
			}
			id, err := asyncid.Await64(ctx, asyncid.TimeSleeper{}, g.TryNext, generator.Status.ID)
			if err != nil {
				return err
			}
			if encode {
				fmt.Println(base32.Encode64(id))
			} else {
				fmt.Println(id)
			}

			slog.Debug("minted id", "preset", preset, "id", id, "at", time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "twitter", "layout preset: twitter, discord, instagram, mastodon, ulid")
	cmd.Flags().Uint64Var(&machineID, "machine-id", 0, "machine_id to tag minted snowflake ids with")
	cmd.Flags().BoolVar(&encode, "encode", false, "print the id base32-encoded instead of numerically")
	return cmd
}
