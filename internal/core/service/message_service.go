package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// MessageService implements buyer/agent messaging.
type MessageService struct {
	messages   ports.MessageRepository
	properties ports.PropertyRepository
	logger     zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, properties ports.PropertyRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, properties: properties, logger: logger}
}

// Send records a buyer inquiry addressed to the agent owning the property.
func (s *MessageService) Send(ctx context.Context, actor *domain.User, input ports.SendMessageInput) (*domain.Message, error) {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, domain.ErrInvalidInput
	}

	p, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	m := &domain.Message{
		PropertyID: p.ID,
		SenderID:   actor.ID,
		AgentID:    p.AgentID,
		Body:       strings.TrimSpace(input.Body),
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("message_id", created.ID).Str("property_id", p.ID).Msg("message sent")
	return created, nil
}

func (s *MessageService) ListForBuyer(ctx context.Context, actor *domain.User) ([]*domain.Message, error) {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return s.messages.ListBySender(ctx, actor.ID)
}

func (s *MessageService) ListForAgent(ctx context.Context, actor *domain.User) ([]*domain.Message, error) {
	if err := requireRole(actor, domain.RoleAgent); err != nil {
		return nil, err
	}
	return s.messages.ListByAgent(ctx, actor.ID)
}

// View returns a single message. Agents may only read inquiries addressed to
// them; a foreign message is ErrForbidden.
func (s *MessageService) View(ctx context.Context, actor *domain.User, id string) (*domain.Message, error) {
	return s.addressedMessage(ctx, actor, id)
}

func (s *MessageService) Reply(ctx context.Context, actor *domain.User, id, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrInvalidInput
	}

	m, err := s.addressedMessage(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.Reply = strings.TrimSpace(body)
	m.RepliedAt = &now

	if err := s.messages.Update(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info().Str("message_id", m.ID).Str("agent_id", actor.ID).Msg("message replied")
	return m, nil
}

func (s *MessageService) addressedMessage(ctx context.Context, actor *domain.User, id string) (*domain.Message, error) {
	if err := requireRole(actor, domain.RoleAgent); err != nil {
		return nil, err
	}
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.AgentID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}
