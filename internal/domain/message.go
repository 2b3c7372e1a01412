package domain

import "fmt"

// DefaultMessage is the text the talker publishes until it is modified.
const DefaultMessage = "Written By Aman Virmani"

// ChatterMessage is one outgoing chatter message, built fresh every tick
// from the sequence counter and a snapshot of the current text.
type ChatterMessage struct {
	Sequence uint64
	Text     string
}

// Data renders the message the way subscribers read it: "<sequence> <text>".
func (m ChatterMessage) Data() string {
	return fmt.Sprintf("%d %s", m.Sequence, m.Text)
}

// ModifyRequest asks the node to replace its current message.
// Input is opaque text; any value, including the empty string, is accepted.
type ModifyRequest struct {
	Input string
}

// ModifyResponse confirms a modification by echoing the input back.
type ModifyResponse struct {
	Modified string
}

// Names of the node's channels and its mutation endpoint.
const (
	ChatterTopic      = "chatter"
	TransformTopic    = "tf"
	ModifyServiceName = "modifyTalkerMessage"
)
