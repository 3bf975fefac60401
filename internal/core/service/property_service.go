package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// PropertyService implements listing operations. The route gate already
// filters by role; every operation re-asserts the same requirement here with
// the freshly resolved acting user (defense in depth).
type PropertyService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, logger: logger}
}

// requireRole is the service-side enforcement point. It uses the same
// domain.User.HasRole derivation as the route gate.
func requireRole(actor *domain.User, roles ...domain.Role) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if !actor.HasRole(roles...) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *PropertyService) List(ctx context.Context, actor *domain.User, filter domain.PropertyFilter) ([]*domain.Property, error) {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *PropertyService) View(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) Add(ctx context.Context, actor *domain.User, input ports.PropertyInput) (*domain.Property, error) {
	if err := requireRole(actor, domain.RoleAgent); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Location) == "" || input.Price <= 0 {
		return nil, domain.ErrInvalidInput
	}

	p := &domain.Property{
		AgentID:     actor.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		Price:       input.Price,
		SizeSqft:    input.SizeSqft,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("property_id", created.ID).Str("agent_id", actor.ID).Msg("property listed")
	return created, nil
}

func (s *PropertyService) Edit(ctx context.Context, actor *domain.User, id string, input ports.PropertyInput) (*domain.Property, error) {
	p, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(input.Title); t != "" {
		p.Title = t
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if l := strings.TrimSpace(input.Location); l != "" {
		p.Location = l
	}
	if input.Price > 0 {
		p.Price = input.Price
	}
	if input.SizeSqft > 0 {
		p.SizeSqft = input.SizeSqft
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.ownedProperty(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("property_id", id).Str("agent_id", actor.ID).Msg("property deleted")
	return nil
}

func (s *PropertyService) Manage(ctx context.Context, actor *domain.User) ([]*domain.Property, error) {
	if err := requireRole(actor, domain.RoleAgent); err != nil {
		return nil, err
	}
	return s.repo.ListByAgent(ctx, actor.ID)
}

func (s *PropertyService) DeleteImage(ctx context.Context, actor *domain.User, propertyID, imageID string) error {
	p, err := s.ownedProperty(ctx, actor, propertyID)
	if err != nil {
		return err
	}

	kept := p.Images[:0]
	found := false
	for _, img := range p.Images {
		if img.ID == imageID {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return domain.ErrImageNotFound
	}
	p.Images = kept

	return s.repo.Update(ctx, p)
}

// ownedProperty loads a listing and checks that actor is the agent who owns
// it. A foreign listing is ErrForbidden, not NotFound: the gate has already
// admitted the caller as an agent, so hiding existence buys nothing.
func (s *PropertyService) ownedProperty(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	if err := requireRole(actor, domain.RoleAgent); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AgentID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
