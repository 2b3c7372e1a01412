package app

import (
	"context"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// MutationService serves modifyTalkerMessage: it replaces the talker's
// current message and echoes the input back as confirmation.
// It is safe for concurrent callers; concurrent writers are not ordered
// beyond last write wins.
type MutationService struct {
	messages ports.MessageStore
	logger   ports.Logger
	observer MutationObserver
}

// NewMutationService creates a MutationService writing into messages.
// observer may be nil.
func NewMutationService(messages ports.MessageStore, logger ports.Logger, observer MutationObserver) *MutationService {
	return &MutationService{
		messages: messages,
		logger:   logger,
		observer: observer,
	}
}

// Modify stores req.Input as the new message. The input is opaque and never
// rejected, and the call cannot fail.
func (s *MutationService) Modify(_ context.Context, req domain.ModifyRequest) domain.ModifyResponse {
	s.messages.Write(req.Input)

	s.logger.Info("default message by talker changed",
		ports.String("message", req.Input),
	)

	if s.observer != nil {
		s.observer.OnMessageChanged(req.Input)
	}

	return domain.ModifyResponse{Modified: req.Input}
}
