// Package gesture classifies short-term motion patterns from a window of
// acceleration readings. Classification is a fixed heuristic: no model,
// no randomness, recomputed fresh on every call.
package gesture

import (
	"math"

	"github.com/arvela/motion-bridge/internal/motion"
	"github.com/arvela/motion-bridge/internal/ring"
)

// #region types

// Type is the gesture classification.
type Type string

const (
	TypeIdle  Type = "idle"
	TypePoint Type = "point"
	TypeSwing Type = "swing"
)

// Sample is the reduced projection of a motion sample kept for analysis.
type Sample struct {
	Accel       motion.Vec3
	Rate        motion.Vec3 // pitch/roll/yaw; zero when the controller reports none
	TimestampMS float64
}

// Analysis is the classification output for one buffer window.
type Analysis struct {
	Type       Type
	Intensity  float32 // mean inter-sample acceleration delta
	Confidence float32 // fixed per classification tier
}

// #endregion types

// #region constants

// BufferSize is the per-player gesture buffer capacity.
const BufferSize = 32

const (
	minSamples = 3 // below this the analysis is degenerate

	swingThreshold = 0.8
	pointThreshold = 0.3

	swingConfidence = 0.8
	pointConfidence = 0.6
	idleConfidence  = 0.9
)

// #endregion constants

// #region project

// Project reduces a motion sample to the fields gesture analysis consumes.
func Project(s motion.Sample) Sample {
	out := Sample{
		Accel:       s.Accel,
		TimestampMS: s.TimestampMS,
	}
	if s.Gyro.Valid {
		out.Rate = motion.Vec3{X: s.Gyro.Pitch, Y: s.Gyro.Roll, Z: s.Gyro.Yaw}
	}
	return out
}

// #endregion project

// #region analyze

// Analyze classifies the buffer contents. With fewer than three samples it
// returns the degenerate idle analysis with zero confidence.
func Analyze(buf *ring.Buffer[Sample]) Analysis {
	if buf.Len() < minSamples {
		return Analysis{Type: TypeIdle}
	}

	samples := buf.Chronological()
	var total float32
	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].Accel
		curr := samples[i].Accel
		dx := float64(curr.X - prev.X)
		dy := float64(curr.Y - prev.Y)
		dz := float64(curr.Z - prev.Z)
		total += float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
	}
	intensity := total / float32(len(samples)-1)

	switch {
	case intensity > swingThreshold:
		return Analysis{Type: TypeSwing, Intensity: intensity, Confidence: swingConfidence}
	case intensity > pointThreshold:
		return Analysis{Type: TypePoint, Intensity: intensity, Confidence: pointConfidence}
	default:
		return Analysis{Type: TypeIdle, Intensity: intensity, Confidence: idleConfidence}
	}
}

// #endregion analyze
