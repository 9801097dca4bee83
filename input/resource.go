// Package input turns pointer gestures into control values for the basin.
package input

// AdjustableResource is anything a dial can drive.
// Implementations must tolerate any number of calls per tick.
type AdjustableResource interface {
	ApplyNormalizedValue(t float64)
}

// ResourceFunc adapts a plain function to AdjustableResource.
type ResourceFunc func(t float64)

// ApplyNormalizedValue calls f(t).
func (f ResourceFunc) ApplyNormalizedValue(t float64) { f(t) }
