package jpeg2000

import "fmt"

// AllocationMode selects how the engine distributes bits across quality
// layers. The two modes are mutually exclusive at the codec level.
type AllocationMode uint8

const (
	// RateAllocation targets a compressed-size ratio per layer.
	RateAllocation AllocationMode = 0x1
	// DistortionAllocation targets a signal-to-noise ratio per layer.
	DistortionAllocation AllocationMode = 0x2
)

func (m AllocationMode) String() string {
	switch m {
	case RateAllocation:
		return "rate"
	case DistortionAllocation:
		return "distortion"
	default:
		return "unknown"
	}
}

// LayerSpec describes the quality layers of one encode call: an allocation
// mode plus one target value per layer. Only values of the active mode are
// ever populated. The spec is lossless when its final layer value is exactly
// zero.
type LayerSpec struct {
	mode     AllocationMode
	values   []float64
	lossless bool
}

// LayersFromRatio builds a single-layer spec in rate-allocation mode. The
// value is the N-fold compression ratio interpreted by the engine as
// "target size = original/ratio". A ratio of exactly zero means lossless.
func LayersFromRatio(ratio float64) LayerSpec {
	return LayerSpec{
		mode:     RateAllocation,
		values:   []float64{ratio},
		lossless: ratio == 0,
	}
}

// LayersFromSNR builds a single-layer spec in distortion-allocation mode with
// the target signal-to-noise ratio in dB. A value of exactly zero means
// lossless.
func LayersFromSNR(db float64) LayerSpec {
	return LayerSpec{
		mode:     DistortionAllocation,
		values:   []float64{db},
		lossless: db == 0,
	}
}

// LosslessLayers builds the lossless spec: a single rate layer of zero.
func LosslessLayers() LayerSpec {
	return LayersFromRatio(0)
}

// LayersFromRatios builds a progressive multi-layer spec in rate-allocation
// mode. Ratios should decrease across layers; a trailing zero marks the final
// layer as lossless.
func LayersFromRatios(ratios []float64) (LayerSpec, error) {
	if len(ratios) == 0 {
		return LayerSpec{}, fmt.Errorf("at least one rate layer is required")
	}

	return LayerSpec{
		mode:     RateAllocation,
		values:   append([]float64(nil), ratios...),
		lossless: ratios[len(ratios)-1] == 0,
	}, nil
}

// LayersFromSNRs builds a progressive multi-layer spec in
// distortion-allocation mode. SNR values should increase across layers; a
// trailing zero marks the final layer as lossless.
func LayersFromSNRs(dbs []float64) (LayerSpec, error) {
	if len(dbs) == 0 {
		return LayerSpec{}, fmt.Errorf("at least one distortion layer is required")
	}

	return LayerSpec{
		mode:     DistortionAllocation,
		values:   append([]float64(nil), dbs...),
		lossless: dbs[len(dbs)-1] == 0,
	}, nil
}

// Mode returns the active allocation mode.
func (s LayerSpec) Mode() AllocationMode {
	return s.mode
}

// Values returns the per-layer target values for the active mode.
func (s LayerSpec) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// NumLayers returns the number of quality layers.
func (s LayerSpec) NumLayers() int {
	return len(s.values)
}

// Lossless reports whether the final layer reconstructs the input exactly.
func (s LayerSpec) Lossless() bool {
	return s.lossless
}
