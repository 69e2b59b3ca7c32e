package assistant

import "math/rand/v2"

// Picker chooses one of n canned variants. Pick must return a value in [0, n).
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

// Pick calls f(n).
func (f PickerFunc) Pick(n int) int { return f(n) }

// RandomPicker picks uniformly at random. Safe for concurrent use.
func RandomPicker() Picker {
	return PickerFunc(rand.IntN)
}

// First always picks the first variant.
var First Picker = PickerFunc(func(int) int { return 0 })
