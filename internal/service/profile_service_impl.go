package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftpay/internal/db"
	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProfileService(profiles repository.UserProfileRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		profiles: profiles,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Register(ctx context.Context, userID string) error {
	return s.profiles.Register(ctx, userID)
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.CompensationProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrProfileNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Resolve(ctx context.Context, userID string) (*domain.CompensationProfile, error) {
	p, err := s.Get(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.DefaultProfile(userID), nil
	}
	return p, err
}

// SetField registers unknown users before updating, so a profile edit is a
// valid first interaction.
func (s *profileService) SetField(ctx context.Context, userID string, field domain.ProfileField, value float64) (profile *domain.CompensationProfile, err error) {
	fields := map[string]any{"user_id": userID, "field": string(field)}
	defer observe(ctx, s.observer, "set-profile-field", time.Now(), fields, &err)

	if err = domain.ValidateProfileValue(field, value); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)
		if err := txProfiles.Register(ctx, userID); err != nil {
			return err
		}
		if err := txProfiles.SetField(ctx, userID, field, value); err != nil {
			return err
		}
		var getErr error
		profile, getErr = txProfiles.Get(ctx, userID)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SetLanguage(ctx context.Context, userID string, lang domain.Language) (err error) {
	defer observe(ctx, s.observer, "set-language", time.Now(), map[string]any{"user_id": userID, "language": string(lang)}, &err)

	if _, err = domain.ParseLanguage(string(lang)); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)
		if err := txProfiles.Register(ctx, userID); err != nil {
			return err
		}
		return txProfiles.SetLanguage(ctx, userID, lang)
	})
}

func (s *profileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (profile *domain.CompensationProfile, err error) {
	fields := map[string]any{"user_id": userID, "fields": len(upd.Fields)}
	defer observe(ctx, s.observer, "update-profile", time.Now(), fields, &err)

	for field, v := range upd.Fields {
		if err = domain.ValidateProfileValue(field, v); err != nil {
			return nil, err
		}
	}
	var lang domain.Language
	if upd.Language != nil {
		if lang, err = domain.ParseLanguage(string(*upd.Language)); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfileValue, err)
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)
		if err := txProfiles.Register(ctx, userID); err != nil {
			return err
		}
		for _, field := range domain.ProfileFields {
			v, ok := upd.Fields[field]
			if !ok {
				continue
			}
			if err := txProfiles.SetField(ctx, userID, field, v); err != nil {
				return err
			}
		}
		if lang != "" {
			if err := txProfiles.SetLanguage(ctx, userID, lang); err != nil {
				return err
			}
		}
		var getErr error
		profile, getErr = txProfiles.Get(ctx, userID)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.profiles.ListUserIDs(ctx)
}
