package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// FavoriteService implements a buyer's saved-listings operations.
type FavoriteService struct {
	favorites  ports.FavoriteRepository
	properties ports.PropertyRepository
	logger     zerolog.Logger
}

func NewFavoriteService(favorites ports.FavoriteRepository, properties ports.PropertyRepository, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties, logger: logger}
}

// List returns the properties the buyer has saved. Favorites whose listing
// has since been deleted are skipped silently.
func (s *FavoriteService) List(ctx context.Context, actor *domain.User) ([]*domain.Property, error) {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return nil, err
	}

	favs, err := s.favorites.ListByBuyer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Property, 0, len(favs))
	for _, f := range favs {
		p, err := s.properties.FindByID(ctx, f.PropertyID)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *FavoriteService) Add(ctx context.Context, actor *domain.User, propertyID string) error {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return err
	}

	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return err
	}

	exists, err := s.favorites.Exists(ctx, actor.ID, propertyID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFavoriteExists
	}

	_, err = s.favorites.Create(ctx, &domain.Favorite{
		BuyerID:    actor.ID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("buyer_id", actor.ID).Str("property_id", propertyID).Msg("favorite added")
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, actor *domain.User, propertyID string) error {
	if err := requireRole(actor, domain.RoleBuyer); err != nil {
		return err
	}
	return s.favorites.Delete(ctx, actor.ID, propertyID)
}
