package profile

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/livefyre/internal/infra/database/models"
)

// PostgresStore keeps profiles in the profiles table.
// Run database.MigratePostgres before use.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile.PostgresStore.Get")
	defer span.End()

	var m models.Profile
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, NotFoundError{ID: id}
	}
	if err != nil {
		span.RecordError(err)
		return Profile{}, errors.Wrap(err, "select profile")
	}
	return fromModel(m), nil
}

func (s *PostgresStore) Put(ctx context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "Profile.PostgresStore.Put")
	defer span.End()

	m := toModel(p)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "email", "profile_url", "settings_url",
			"image", "bio", "location", "websites", "m_date",
		}),
	}).Create(&m).Error
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "upsert profile")
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Profile.PostgresStore.Delete")
	defer span.End()

	if err := s.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "delete profile")
	}
	return nil
}

func toModel(p Profile) models.Profile {
	return models.Profile{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		ProfileURL:  p.ProfileURL,
		SettingsURL: p.SettingsURL,
		Image:       p.Image,
		Bio:         p.Bio,
		Location:    p.Location,
		Websites:    p.Websites,
	}
}

func fromModel(m models.Profile) Profile {
	return Profile{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		ProfileURL:  m.ProfileURL,
		SettingsURL: m.SettingsURL,
		Image:       m.Image,
		Bio:         m.Bio,
		Location:    m.Location,
		Websites:    []string(m.Websites),
	}
}

var _ Store = (*PostgresStore)(nil)
