package wire

import (
	"math"
	"testing"

	"github.com/arvela/motion-bridge/internal/game"
	"github.com/arvela/motion-bridge/internal/gesture"
	"github.com/arvela/motion-bridge/internal/motion"
	"github.com/arvela/motion-bridge/internal/profile"
	"github.com/arvela/motion-bridge/internal/ring"
	"github.com/arvela/motion-bridge/internal/tuning"
)

func fullRequest() tuning.Request {
	history := ring.New[motion.Sample](16)
	for i := 0; i < 8; i++ {
		history.Push(motion.Sample{
			Accel:       motion.Vec3{X: float32(i), Y: -1.5, Z: 9.81},
			Pointer:     motion.Pointer{X: 0.3, Y: 0.7, Angle: 12, Valid: i%2 == 0},
			Gyro:        motion.AngularRate{Pitch: 5, Roll: -2, Yaw: 0.5, Valid: true},
			Buttons:     motion.Buttons{Held: 0x8, Pressed: 0x1},
			TimestampMS: float64(i) * 16.67,
		})
	}
	params := game.NewParameters(4)
	params.GameType = game.TypeAdventure
	params.Tick = 4096
	params.Scores[1] = 150

	p := profile.New(2)
	p.Skill = 0.66

	return tuning.BuildRequest(p, gesture.Analysis{Type: gesture.TypeSwing, Intensity: 1.3, Confidence: 0.8}, params, history, 68266.1)
}

func TestEncodeRequestFitsDatagram(t *testing.T) {
	// The worst realistic request (full sample window, every optional
	// reading valid) must stay inside the datagram limit.
	b, err := EncodeRequest(fullRequest())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b) == 0 || len(b) > MaxRequestBytes {
		t.Fatalf("encoded size %d outside (0, %d]", len(b), MaxRequestBytes)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	in := tuning.Response{
		PlayerID:             3,
		TimestampMS:          12345.5,
		DifficultyAdjustment: -0.04,
		InputEnhancement:     tuning.InputEnhancement{Enabled: true, SensitivityMultiplier: 1.08},
		Opponent:             tuning.OpponentBehavior{Aggression: 0.52, Intelligence: 0.71},
	}

	b, err := EncodeResponse(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeResponse(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n in  %+v\n out %+v", in, out)
	}
	if out.LearningRateSet {
		t.Fatal("learning rate reported set without the field on the wire")
	}
}

func TestResponseLearningRatePresence(t *testing.T) {
	in := tuning.Response{PlayerID: 1, LearningRateAdjustment: 0.07, LearningRateSet: true}
	b, err := EncodeResponse(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeResponse(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.LearningRateSet {
		t.Fatal("learning rate presence lost")
	}
	if math.Abs(float64(out.LearningRateAdjustment)-0.07) > 1e-6 {
		t.Fatalf("learning rate = %f, want 0.07", out.LearningRateAdjustment)
	}
}

func TestDecodeResponseRejectsGarbage(t *testing.T) {
	if _, err := DecodeResponse([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("garbage datagram decoded without error")
	}

	oversized := make([]byte, MaxResponseBytes+1)
	if _, err := DecodeResponse(oversized); err == nil {
		t.Fatal("oversized datagram accepted")
	}
}

func TestDecodeResponseSkipsUnknownFields(t *testing.T) {
	in := tuning.Response{PlayerID: 2, DifficultyAdjustment: 0.02}
	b, err := EncodeResponse(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Append an unknown varint field (number 15) the way a newer service
	// revision might.
	b = append(b, 0x78, 0x2a)

	out, err := DecodeResponse(b)
	if err != nil {
		t.Fatalf("decode with unknown field: %v", err)
	}
	if out.PlayerID != 2 {
		t.Fatalf("player id = %d, want 2", out.PlayerID)
	}
}
