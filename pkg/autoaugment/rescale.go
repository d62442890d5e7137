// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package autoaugment

// LevelMax is the top of the discrete magnitude scale policy tables are
// written in. Levels run over [0, LevelMax]; the canonical tables use the
// integers 0..9.
const LevelMax = 10

// RescaleFloat maps a level in [0, LevelMax] proportionally into [0, max].
// It is monotonic in level for a fixed max.
func RescaleFloat(level, max float64) float64 {
	return level * max / LevelMax
}

// RescaleInt is RescaleFloat truncated toward zero, for operations whose
// parameter is a whole number of pixels, degrees or counts.
func RescaleInt(level, max float64) int {
	return int(level * max / LevelMax)
}
