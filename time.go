// Copyright 2026 The bsonkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bson

import "time"

func nowUnix() uint32 {
	return uint32(time.Now().Unix())
}

// MillisToTime converts a BSON Datetime value (milliseconds since the Unix
// epoch) to a time.Time in UTC.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// TimeToMillis converts a time.Time to the BSON Datetime wire
// representation: milliseconds since the Unix epoch.
func TimeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}
