package domain

import (
	"math"
	"time"
)

// Frames and pose of the transform the talker announces every tick.
const (
	TransformParentFrame = "world"
	TransformChildFrame  = "talk"

	TransformRoll  = 0.0
	TransformPitch = 0.0
	TransformYaw   = 1.0
)

// TransformTranslation is the fixed offset of the talk frame in the world frame.
var TransformTranslation = Vector3{X: 0.0, Y: 2.0, Z: 0.0}

// Vector3 is a translation in meters.
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is a rotation expressed as (x, y, z, w).
type Quaternion struct {
	X, Y, Z, W float64
}

// QuaternionFromRPY builds the quaternion for fixed-axis roll, pitch and yaw
// (radians), applied in that order.
func QuaternionFromRPY(roll, pitch, yaw float64) Quaternion {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)

	return Quaternion{
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// TransformSample is a stamped pose of ChildFrame relative to ParentFrame.
type TransformSample struct {
	Translation Vector3
	Rotation    Quaternion
	Stamp       time.Time
	ParentFrame string
	ChildFrame  string
}

// TalkTransform returns the fixed world -> talk transform stamped at stamp.
func TalkTransform(stamp time.Time) TransformSample {
	return TransformSample{
		Translation: TransformTranslation,
		Rotation:    QuaternionFromRPY(TransformRoll, TransformPitch, TransformYaw),
		Stamp:       stamp,
		ParentFrame: TransformParentFrame,
		ChildFrame:  TransformChildFrame,
	}
}
