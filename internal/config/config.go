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

// Package config holds the environment-driven configuration for the
// cmd/idgen serve command, parsed with caarlos0/env the way a small Go
// service typically wires its runtime settings without a bespoke flags
// layer.
package config

import "github.com/caarlos0/env/v10"

// Config is the runtime configuration of the idgen gRPC server.
type Config struct {
	// Addr is the listen address for the gRPC server.
	Addr string `env:"IDFLOW_ADDR" envDefault:":8420"`
	// Preset selects which built-in layout the default generator uses:
	// twitter, discord, instagram, mastodon or ulid.
	Preset string `env:"IDFLOW_PRESET" envDefault:"twitter"`
	// MachineID tags every minted snowflake id; ignored for the ulid
	// preset.
	MachineID uint64 `env:"IDFLOW_MACHINE_ID" envDefault:"0"`
	// Shell selects the generator's concurrency strategy: basic, mutex
	// or atomic.
	Shell string `env:"IDFLOW_SHELL" envDefault:"mutex"`
	// LogLevel controls the verbosity of the server's structured log
	// output: debug, info, warn or error.
	LogLevel string `env:"IDFLOW_LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the process environment, applying the envDefault
// tags above for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
