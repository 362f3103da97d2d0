// Package wire encodes tuning requests and responses for the datagram
// exchange with the tuning service. The encoding is protobuf wire format,
// hand-assembled with protowire: requests must fit in one 2048-byte
// datagram and responses arrive in at most 1024 bytes. Unknown fields are
// skipped so the service can extend the schema without breaking us.
package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arvela/motion-bridge/internal/game"
	"github.com/arvela/motion-bridge/internal/motion"
	"github.com/arvela/motion-bridge/internal/profile"
	"github.com/arvela/motion-bridge/internal/tuning"
)

// #region limits

const (
	// MaxRequestBytes bounds an encoded request datagram.
	MaxRequestBytes = 2048
	// MaxResponseBytes bounds a received response datagram.
	MaxResponseBytes = 1024
)

// #endregion limits

// #region field-numbers

// Request message fields.
const (
	reqFieldRequestID = 1
	reqFieldPlayerID  = 2
	reqFieldTimestamp = 3
	reqFieldGesture   = 4
	reqFieldSample    = 5 // repeated, most-recent-first
	reqFieldGame      = 6
	reqFieldProfile   = 7
)

// Gesture sub-message fields.
const (
	gestFieldType       = 1
	gestFieldIntensity  = 2
	gestFieldConfidence = 3
)

// Sample sub-message fields.
const (
	sampleFieldAccel     = 1
	sampleFieldPointer   = 2
	sampleFieldGyro      = 3
	sampleFieldButtons   = 4
	sampleFieldTimestamp = 5
)

// Vec3 / pointer / rate / buttons sub-message fields.
const (
	vecFieldX = 1
	vecFieldY = 2
	vecFieldZ = 3

	ptrFieldX     = 1
	ptrFieldY     = 2
	ptrFieldAngle = 3
	ptrFieldValid = 4

	rateFieldPitch = 1
	rateFieldRoll  = 2
	rateFieldYaw   = 3
	rateFieldValid = 4

	btnFieldHeld     = 1
	btnFieldPressed  = 2
	btnFieldReleased = 3
)

// Game sub-message fields.
const (
	gameFieldType       = 1
	gameFieldLevel      = 2
	gameFieldDifficulty = 3
	gameFieldAIEnabled  = 4
	gameFieldTick       = 5
	gameFieldScore      = 6 // repeated
)

// Profile sub-message fields.
const (
	profFieldID         = 1
	profFieldConnected  = 2
	profFieldSkill      = 3
	profFieldAssistance = 4
	profFieldLearning   = 5
	profFieldAdaptation = 6
	profFieldPlayStyle  = 7
)

// Response message fields.
const (
	respFieldPlayerID     = 1
	respFieldTimestamp    = 2
	respFieldDifficulty   = 3
	respFieldEnhancement  = 4
	respFieldOpponent     = 5
	respFieldLearningRate = 6 // presence means the service set it
)

// Enhancement / opponent sub-message fields.
const (
	enhFieldEnabled    = 1
	enhFieldMultiplier = 2

	oppFieldAggression   = 1
	oppFieldIntelligence = 2
)

// #endregion field-numbers

// #region append-helpers

func appendFloat32(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendFloat64(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	var u uint64
	if v {
		u = 1
	}
	return appendVarint(b, num, u)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// #endregion append-helpers

// #region encode-request

func appendVec3(b []byte, num protowire.Number, v motion.Vec3) []byte {
	var msg []byte
	msg = appendFloat32(msg, vecFieldX, v.X)
	msg = appendFloat32(msg, vecFieldY, v.Y)
	msg = appendFloat32(msg, vecFieldZ, v.Z)
	return appendMessage(b, num, msg)
}

func appendSample(b []byte, num protowire.Number, s motion.Sample) []byte {
	var msg []byte
	msg = appendVec3(msg, sampleFieldAccel, s.Accel)

	if s.Pointer.Valid {
		var ptr []byte
		ptr = appendFloat32(ptr, ptrFieldX, s.Pointer.X)
		ptr = appendFloat32(ptr, ptrFieldY, s.Pointer.Y)
		ptr = appendFloat32(ptr, ptrFieldAngle, s.Pointer.Angle)
		ptr = appendBool(ptr, ptrFieldValid, true)
		msg = appendMessage(msg, sampleFieldPointer, ptr)
	}
	if s.Gyro.Valid {
		var rate []byte
		rate = appendFloat32(rate, rateFieldPitch, s.Gyro.Pitch)
		rate = appendFloat32(rate, rateFieldRoll, s.Gyro.Roll)
		rate = appendFloat32(rate, rateFieldYaw, s.Gyro.Yaw)
		rate = appendBool(rate, rateFieldValid, true)
		msg = appendMessage(msg, sampleFieldGyro, rate)
	}

	var btn []byte
	btn = appendVarint(btn, btnFieldHeld, uint64(s.Buttons.Held))
	btn = appendVarint(btn, btnFieldPressed, uint64(s.Buttons.Pressed))
	btn = appendVarint(btn, btnFieldReleased, uint64(s.Buttons.Released))
	msg = appendMessage(msg, sampleFieldButtons, btn)

	msg = appendFloat64(msg, sampleFieldTimestamp, s.TimestampMS)
	return appendMessage(b, num, msg)
}

func appendGame(b []byte, num protowire.Number, p game.Parameters) []byte {
	var msg []byte
	msg = appendString(msg, gameFieldType, string(p.GameType))
	msg = appendVarint(msg, gameFieldLevel, uint64(p.CurrentLevel))
	msg = appendFloat32(msg, gameFieldDifficulty, p.Difficulty)
	msg = appendBool(msg, gameFieldAIEnabled, p.AIEnabled)
	msg = appendVarint(msg, gameFieldTick, p.Tick)
	for _, score := range p.Scores {
		msg = appendVarint(msg, gameFieldScore, uint64(int64(score)))
	}
	return appendMessage(b, num, msg)
}

func appendProfile(b []byte, num protowire.Number, p profile.Profile) []byte {
	var msg []byte
	msg = appendVarint(msg, profFieldID, uint64(p.ID))
	msg = appendBool(msg, profFieldConnected, p.Connected)
	msg = appendFloat32(msg, profFieldSkill, p.Skill)
	msg = appendFloat32(msg, profFieldAssistance, p.Assistance)
	msg = appendFloat32(msg, profFieldLearning, p.LearningRate)
	msg = appendFloat32(msg, profFieldAdaptation, p.AdaptationSpeed)
	msg = appendString(msg, profFieldPlayStyle, p.PlayStyle)
	return appendMessage(b, num, msg)
}

// EncodeRequest serializes a request, rejecting anything that would not
// fit in one datagram.
func EncodeRequest(req tuning.Request) ([]byte, error) {
	var b []byte
	b = appendString(b, reqFieldRequestID, req.RequestID)
	b = appendVarint(b, reqFieldPlayerID, uint64(req.PlayerID))
	b = appendFloat64(b, reqFieldTimestamp, req.TimestampMS)

	var gest []byte
	gest = appendString(gest, gestFieldType, string(req.Gesture.Type))
	gest = appendFloat32(gest, gestFieldIntensity, req.Gesture.Intensity)
	gest = appendFloat32(gest, gestFieldConfidence, req.Gesture.Confidence)
	b = appendMessage(b, reqFieldGesture, gest)

	for _, s := range req.RecentSamples {
		b = appendSample(b, reqFieldSample, s)
	}
	b = appendGame(b, reqFieldGame, req.Game)
	b = appendProfile(b, reqFieldProfile, req.Profile)

	if len(b) > MaxRequestBytes {
		return nil, fmt.Errorf("encoded request is %d bytes, limit %d", len(b), MaxRequestBytes)
	}
	return b, nil
}

// #endregion encode-request

// #region encode-response

// EncodeResponse serializes a response. Used by tests and service stubs;
// the bridge itself only decodes responses.
func EncodeResponse(resp tuning.Response) ([]byte, error) {
	var b []byte
	b = appendVarint(b, respFieldPlayerID, uint64(resp.PlayerID))
	b = appendFloat64(b, respFieldTimestamp, resp.TimestampMS)
	b = appendFloat32(b, respFieldDifficulty, resp.DifficultyAdjustment)

	var enh []byte
	enh = appendBool(enh, enhFieldEnabled, resp.InputEnhancement.Enabled)
	enh = appendFloat32(enh, enhFieldMultiplier, resp.InputEnhancement.SensitivityMultiplier)
	b = appendMessage(b, respFieldEnhancement, enh)

	var opp []byte
	opp = appendFloat32(opp, oppFieldAggression, resp.Opponent.Aggression)
	opp = appendFloat32(opp, oppFieldIntelligence, resp.Opponent.Intelligence)
	b = appendMessage(b, respFieldOpponent, opp)

	if resp.LearningRateSet {
		b = appendFloat32(b, respFieldLearningRate, resp.LearningRateAdjustment)
	}

	if len(b) > MaxResponseBytes {
		return nil, fmt.Errorf("encoded response is %d bytes, limit %d", len(b), MaxResponseBytes)
	}
	return b, nil
}

// #endregion encode-response

// #region decode-helpers

type fieldReader struct {
	buf []byte
	err error
}

// next yields the next field. ok is false at end of buffer or on error.
func (r *fieldReader) next() (num protowire.Number, typ protowire.Type, ok bool) {
	if r.err != nil || len(r.buf) == 0 {
		return 0, 0, false
	}
	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0, 0, false
	}
	r.buf = r.buf[n:]
	return num, typ, true
}

func (r *fieldReader) varint() uint64 {
	v, n := protowire.ConsumeVarint(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *fieldReader) float32() float32 {
	v, n := protowire.ConsumeFixed32(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0
	}
	r.buf = r.buf[n:]
	return math.Float32frombits(v)
}

func (r *fieldReader) float64() float64 {
	v, n := protowire.ConsumeFixed64(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0
	}
	r.buf = r.buf[n:]
	return math.Float64frombits(v)
}

func (r *fieldReader) bytes() []byte {
	v, n := protowire.ConsumeBytes(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return nil
	}
	r.buf = r.buf[n:]
	return v
}

func (r *fieldReader) skip(num protowire.Number, typ protowire.Type) {
	n := protowire.ConsumeFieldValue(num, typ, r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return
	}
	r.buf = r.buf[n:]
}

// #endregion decode-helpers

// #region decode-response

// DecodeResponse parses a received response datagram. Anything malformed
// is an error; the caller treats that like any other transport failure.
func DecodeResponse(b []byte) (tuning.Response, error) {
	if len(b) > MaxResponseBytes {
		return tuning.Response{}, fmt.Errorf("response is %d bytes, limit %d", len(b), MaxResponseBytes)
	}

	var resp tuning.Response
	r := &fieldReader{buf: b}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == respFieldPlayerID && typ == protowire.VarintType:
			resp.PlayerID = int(r.varint())
		case num == respFieldTimestamp && typ == protowire.Fixed64Type:
			resp.TimestampMS = r.float64()
		case num == respFieldDifficulty && typ == protowire.Fixed32Type:
			resp.DifficultyAdjustment = r.float32()
		case num == respFieldEnhancement && typ == protowire.BytesType:
			resp.InputEnhancement = decodeEnhancement(r.bytes(), r)
		case num == respFieldOpponent && typ == protowire.BytesType:
			resp.Opponent = decodeOpponent(r.bytes(), r)
		case num == respFieldLearningRate && typ == protowire.Fixed32Type:
			resp.LearningRateAdjustment = r.float32()
			resp.LearningRateSet = true
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return tuning.Response{}, fmt.Errorf("decode response: %w", r.err)
	}
	return resp, nil
}

func decodeEnhancement(b []byte, outer *fieldReader) tuning.InputEnhancement {
	var e tuning.InputEnhancement
	r := &fieldReader{buf: b}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == enhFieldEnabled && typ == protowire.VarintType:
			e.Enabled = r.varint() != 0
		case num == enhFieldMultiplier && typ == protowire.Fixed32Type:
			e.SensitivityMultiplier = r.float32()
		default:
			r.skip(num, typ)
		}
	}
	if outer.err == nil {
		outer.err = r.err
	}
	return e
}

func decodeOpponent(b []byte, outer *fieldReader) tuning.OpponentBehavior {
	var o tuning.OpponentBehavior
	r := &fieldReader{buf: b}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == oppFieldAggression && typ == protowire.Fixed32Type:
			o.Aggression = r.float32()
		case num == oppFieldIntelligence && typ == protowire.Fixed32Type:
			o.Intelligence = r.float32()
		default:
			r.skip(num, typ)
		}
	}
	if outer.err == nil {
		outer.err = r.err
	}
	return o
}

// #endregion decode-response
