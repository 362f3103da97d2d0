// Package motion defines the raw controller sample types shared across
// the bridge. Timestamps are monotonic milliseconds everywhere.
package motion

// #region vec3

// Vec3 is a three-axis reading (acceleration or angular rate).
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Scale returns the vector multiplied by f.
func (v Vec3) Scale(f float32) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// #endregion vec3

// #region optional-readings

// Pointer is an optional screen-pointer reading.
type Pointer struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Angle float32 `json:"angle"`
	Valid bool    `json:"valid"`
}

// AngularRate is an optional gyroscope reading.
type AngularRate struct {
	Pitch float32 `json:"pitch"`
	Roll  float32 `json:"roll"`
	Yaw   float32 `json:"yaw"`
	Valid bool    `json:"valid"`
}

// Buttons carries the three button bitsets reported per sample.
type Buttons struct {
	Held     uint32 `json:"held"`
	Pressed  uint32 `json:"pressed"`
	Released uint32 `json:"released"`
}

// #endregion optional-readings

// #region sample

// Sample is one motion-controller snapshot.
type Sample struct {
	Accel       Vec3        `json:"accel"`
	Pointer     Pointer     `json:"pointer"`
	Gyro        AngularRate `json:"gyro"`
	Buttons     Buttons     `json:"buttons"`
	TimestampMS float64     `json:"timestamp_ms"`
}

// #endregion sample
