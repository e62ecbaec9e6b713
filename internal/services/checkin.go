package services

import (
	"context"
	"errors"
	"fmt"

	"awguestbook/internal/domain"
)

type checkinService struct {
	guestRepo domain.GuestRepository
}

// NewCheckinService creates a CheckinService over the guest repository.
func NewCheckinService(guestRepo domain.GuestRepository) domain.CheckinService {
	return &checkinService{guestRepo: guestRepo}
}

func (s *checkinService) Verify(ctx context.Context, raw string) (*domain.Guest, error) {
	code, err := domain.ParseScanCode(raw)
	if err != nil {
		return nil, err
	}
	guest, err := s.guestRepo.GetByIDAndToken(ctx, code.GuestID, code.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A wrong id, a wrong token, or a tampered pair all land
			// here; the caller cannot tell which.
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("get guest by code: %w", err)
	}
	return guest, nil
}

func (s *checkinService) CheckIn(ctx context.Context, guestID int64) (*domain.Guest, error) {
	if guestID <= 0 {
		return nil, domain.ErrNotFound
	}
	guest, err := s.guestRepo.CheckIn(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("check in guest: %w", err)
	}
	return guest, nil
}
