package redis

import (
	"time"

	"github.com/google/uuid"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// ChatterEnvelope is the wire form of a chatter message.
type ChatterEnvelope struct {
	ID       string `json:"id"`
	Node     string `json:"node"`
	Sequence uint64 `json:"sequence"`
	Text     string `json:"text"`
	Data     string `json:"data"`
}

// Vector is the wire form of a translation.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is the wire form of a quaternion.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// TransformEnvelope is the wire form of a transform sample.
type TransformEnvelope struct {
	ID          string    `json:"id"`
	Node        string    `json:"node"`
	ParentFrame string    `json:"parent_frame"`
	ChildFrame  string    `json:"child_frame"`
	Translation Vector    `json:"translation"`
	Rotation    Rotation  `json:"rotation"`
	Stamp       time.Time `json:"stamp"`
}

// NewChatterEnvelope wraps msg with a fresh message id.
func NewChatterEnvelope(node string, msg domain.ChatterMessage) ChatterEnvelope {
	return ChatterEnvelope{
		ID:       uuid.NewString(),
		Node:     node,
		Sequence: msg.Sequence,
		Text:     msg.Text,
		Data:     msg.Data(),
	}
}

// Message converts the envelope back to a domain message.
func (e ChatterEnvelope) Message() domain.ChatterMessage {
	return domain.ChatterMessage{Sequence: e.Sequence, Text: e.Text}
}

// NewTransformEnvelope wraps s with a fresh message id.
func NewTransformEnvelope(node string, s domain.TransformSample) TransformEnvelope {
	return TransformEnvelope{
		ID:          uuid.NewString(),
		Node:        node,
		ParentFrame: s.ParentFrame,
		ChildFrame:  s.ChildFrame,
		Translation: Vector{X: s.Translation.X, Y: s.Translation.Y, Z: s.Translation.Z},
		Rotation:    Rotation{X: s.Rotation.X, Y: s.Rotation.Y, Z: s.Rotation.Z, W: s.Rotation.W},
		Stamp:       s.Stamp.UTC(),
	}
}

// Sample converts the envelope back to a domain transform sample.
func (e TransformEnvelope) Sample() domain.TransformSample {
	return domain.TransformSample{
		Translation: domain.Vector3{X: e.Translation.X, Y: e.Translation.Y, Z: e.Translation.Z},
		Rotation:    domain.Quaternion{X: e.Rotation.X, Y: e.Rotation.Y, Z: e.Rotation.Z, W: e.Rotation.W},
		Stamp:       e.Stamp,
		ParentFrame: e.ParentFrame,
		ChildFrame:  e.ChildFrame,
	}
}
