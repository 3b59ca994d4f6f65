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

// Package schema collects the canonical, off-the-shelf identifier layouts
// and their epochs: the well known snowflake dialects used by Twitter,
// Discord, Instagram and Mastodon, and a default 128-bit ULID layout.
package schema

import (
	"time"

	"github.com/fogfish/idflow/layout"
)

// Epoch constants, in milliseconds since the Unix epoch, for each preset
// below. TwitterEpoch, DiscordEpoch and InstagramEpoch are the values each
// platform anchors its snowflake timestamp field to; MastodonEpoch and
// UlidEpoch are both the Unix epoch itself.
const (
	TwitterEpochMillis   = 1288834974657
	DiscordEpochMillis   = 1420070400000
	InstagramEpochMillis = 1293840000000
	MastodonEpochMillis  = 0
	UlidEpochMillis      = 0
)

// TwitterEpoch is 2010-11-04T01:42:54.657Z, the Snowflake epoch Twitter's
// original ID generator used.
var TwitterEpoch = time.UnixMilli(TwitterEpochMillis).UTC()

// DiscordEpoch is 2015-01-01T00:00:00Z, the "Discord Epoch".
var DiscordEpoch = time.UnixMilli(DiscordEpochMillis).UTC()

// InstagramEpoch is 2011-01-01T00:00:00Z, Instagram's sharded-ID epoch.
var InstagramEpoch = time.UnixMilli(InstagramEpochMillis).UTC()

// MastodonEpoch is the Unix epoch: Mastodon's snowflake ids carry a raw
// Unix millisecond timestamp with no offset.
var MastodonEpoch = time.UnixMilli(MastodonEpochMillis).UTC()

// UlidEpoch is the Unix epoch, as specified by the ULID standard.
var UlidEpoch = time.UnixMilli(UlidEpochMillis).UTC()

// Twitter is the 64-bit layout: 1 reserved (sign) bit, 41-bit timestamp,
// 10-bit machine_id, 12-bit sequence.
var Twitter = layout.MustNewSnowflake("twitter", 1, 41, 10, 12)

// Discord is the 64-bit layout: 1 reserved bit, 42-bit timestamp, 10-bit
// machine_id (5 worker + 5 process, treated here as one field), 11-bit
// sequence.
var Discord = layout.MustNewSnowflake("discord", 1, 42, 10, 11)

// Instagram is the 64-bit layout: no reserved bits, 41-bit timestamp,
// 13-bit machine_id (shard id), 10-bit sequence.
var Instagram = layout.MustNewSnowflake("instagram", 0, 41, 13, 10)

// Mastodon is the 64-bit layout: no reserved bits, 48-bit raw Unix
// millisecond timestamp, no machine_id field, 16-bit sequence.
var Mastodon = layout.MustNewSnowflake("mastodon", 0, 48, 0, 16)

// ULID is the default 128-bit layout: no reserved bits, 48-bit timestamp,
// 80-bit random tail.
var ULID = layout.MustNewULID("ulid", 128, 0, 48, 80)

// Epoch returns the canonical epoch associated with one of the preset
// layouts above. It panics if l is not one of the presets in this
// package, since arbitrary caller-defined layouts carry their own epoch.
func Epoch(l layout.Layout) time.Time {
	switch l.Name {
	case Twitter.Name:
		return TwitterEpoch
	case Discord.Name:
		return DiscordEpoch
	case Instagram.Name:
		return InstagramEpoch
	case Mastodon.Name:
		return MastodonEpoch
	case ULID.Name:
		return UlidEpoch
	default:
		panic("idflow: schema.Epoch called with a non-preset layout: " + l.Name)
	}
}
