package game

import (
	"fmt"
	"math"
)

// BallType is one size tier of the merge ladder.
type BallType struct {
	Radius float64
	Color  RGB
}

// Mass assumes unit density, so mass equals volume.
func (b BallType) Mass() float64 {
	return 4.0 / 3.0 * math.Pi * b.Radius * b.Radius * b.Radius
}

// BallTypes is ordered by increasing radius. The last entry is the terminal tier.
var BallTypes = []BallType{
	{Radius: 0.3, Color: HSL(0.0, 0.7, 0.5)},
	{Radius: 0.4, Color: HSL(0.1, 0.7, 0.5)},
	{Radius: 0.5, Color: HSL(0.2, 0.7, 0.5)},
	{Radius: 0.6, Color: HSL(0.3, 0.7, 0.5)},
	{Radius: 0.7, Color: HSL(0.4, 0.7, 0.5)},
	{Radius: 0.8, Color: HSL(0.5, 0.7, 0.5)},
	{Radius: 0.9, Color: HSL(0.6, 0.7, 0.5)},
	{Radius: 1.2, Color: HSL(0.9, 0.7, 0.5)},
}

// TerminalTier is the highest tier; it never merges.
func TerminalTier() int { return len(BallTypes) - 1 }

// IsTerminal reports whether tier has no successor.
func IsTerminal(tier int) bool { return tier >= TerminalTier() }

// Ball returns the type for tier and panics on an out-of-range index.
func Ball(tier int) BallType {
	if tier < 0 || tier >= len(BallTypes) {
		panic(fmt.Sprintf("game: ball tier %d out of range [0,%d)", tier, len(BallTypes)))
	}
	return BallTypes[tier]
}
