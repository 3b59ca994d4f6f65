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

	"github.com/fogfish/idflow/base32"
	"github.com/fogfish/idflow/layout"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Decode a base32-encoded id into its component fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := presetByName(preset)
			if !ok {
				return fmt.Errorf("idgen: unknown preset %q", preset)
			}

			if l.Kind == layout.ULID && l.TotalBits == 128 {
				id, err := base32.Decode128(args[0])
				if err != nil {
					return err
				}
				ts, random := layout.UnpackULID128(l, id)
				fmt.Printf("timestamp=%d random=%x%016x\n", ts, random.Hi, random.Lo)
				return nil
			}

			id, err := base32.DecodeSnowflake(l, args[0])
			if err != nil {
				return err
			}
			ts, machineID, seq := layout.UnpackSnowflake(l, id)
			fmt.Printf("timestamp=%d machine_id=%d sequence=%d\n", ts, machineID, seq)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "twitter", "layout preset: twitter, discord, instagram, mastodon, ulid")
	return cmd
}
