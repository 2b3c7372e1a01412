package ports

// MessageStore is the shared cell holding the text the talker publishes.
// *domain.MessageState satisfies this interface.
type MessageStore interface {
	// Read returns a snapshot of the current message.
	Read() string

	// Write atomically replaces the current message.
	Write(text string)
}
