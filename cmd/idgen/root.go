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

// Command idgen is a CLI front end over the idflow generator library: it
// can mint a single id from any preset layout, decode an encoded id back
// into its fields, or run a gRPC server that streams ids to clients.
package main

import (
	"fmt"
	"os"

	"github.com/fogfish/idflow/layout"
	"github.com/fogfish/idflow/schema"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idgen",
		Short: "Mint, decode and serve k-ordered identifiers",
	}

	cmd.AddCommand(nextCmd())
	cmd.AddCommand(decodeCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func presetByName(name string) (layout.Layout, bool) {
	switch name {
	case "twitter":
		return schema.Twitter, true
	case "discord":
		return schema.Discord, true
	case "instagram":
		return schema.Instagram, true
	case "mastodon":
		return schema.Mastodon, true
	case "ulid":
		return schema.ULID, true
	default:
		return layout.Layout{}, false
	}
}
