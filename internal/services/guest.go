package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"awguestbook/internal/domain"
)

// Guest field constraints. Phone length is checked after stripping every
// non-digit character.
const (
	guestNameMin    = 3
	guestNameMax    = 100
	guestPhoneMin   = 10
	guestPhoneMax   = 13
	guestMessageMin = 10
	guestMessageMax = 500

	qrTokenBytes = 8
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

type guestService struct {
	guestRepo domain.GuestRepository
	eventRepo domain.EventRepository
}

// NewGuestService creates a GuestService with the given repositories.
func NewGuestService(guestRepo domain.GuestRepository, eventRepo domain.EventRepository) domain.GuestService {
	return &guestService{
		guestRepo: guestRepo,
		eventRepo: eventRepo,
	}
}

func (s *guestService) Create(ctx context.Context, userID, eventID int64, fields domain.GuestFields) (*domain.Guest, error) {
	if eventID == 0 {
		return nil, domain.ErrNoEventSelected
	}
	if _, err := s.eventRepo.GetOwned(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	fields = normalizeGuestFields(fields)
	if err := validateGuestFields(fields); err != nil {
		return nil, err
	}

	token, err := generateQRToken()
	if err != nil {
		return nil, fmt.Errorf("generate qr token: %w", err)
	}

	now := time.Now()
	guest := &domain.Guest{
		EventID:     eventID,
		Nama:        fields.Nama,
		Email:       fields.Email,
		Telepon:     fields.Telepon,
		Pesan:       fields.Pesan,
		TableNumber: fields.TableNumber,
		QRToken:     token,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) Get(ctx context.Context, userID, guestID int64) (*domain.Guest, error) {
	return s.getOwnedGuest(ctx, userID, guestID)
}

func (s *guestService) Update(ctx context.Context, userID, guestID int64, fields domain.GuestFields) (*domain.Guest, error) {
	guest, err := s.getOwnedGuest(ctx, userID, guestID)
	if err != nil {
		return nil, err
	}
	fields = normalizeGuestFields(fields)
	if err := validateGuestFields(fields); err != nil {
		return nil, err
	}
	guest.Nama = fields.Nama
	guest.Email = fields.Email
	guest.Telepon = fields.Telepon
	guest.Pesan = fields.Pesan
	guest.TableNumber = fields.TableNumber
	guest.UpdatedAt = time.Now()
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) Delete(ctx context.Context, userID, guestID int64) error {
	if _, err := s.getOwnedGuest(ctx, userID, guestID); err != nil {
		return err
	}
	if err := s.guestRepo.Delete(ctx, guestID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func (s *guestService) List(ctx context.Context, userID, eventID int64, search string) ([]*domain.Guest, error) {
	search = strings.TrimSpace(search)
	if eventID != 0 {
		if _, err := s.eventRepo.GetOwned(ctx, eventID, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		guests, err := s.guestRepo.ListByEvent(ctx, eventID, search)
		if err != nil {
			return nil, fmt.Errorf("list guests: %w", err)
		}
		return guests, nil
	}
	guests, err := s.guestRepo.ListByOwner(ctx, userID, search)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *guestService) Stats(ctx context.Context, userID, eventID int64) (*domain.GuestStats, error) {
	if eventID != 0 {
		if _, err := s.eventRepo.GetOwned(ctx, eventID, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		stats, err := s.guestRepo.StatsByEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("guest stats: %w", err)
		}
		return stats, nil
	}
	stats, err := s.guestRepo.StatsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("guest stats: %w", err)
	}
	return stats, nil
}

// getOwnedGuest resolves the guest and applies the ownership check
// through its event. Cross-tenant access reads as ErrNotFound so the API
// does not leak that the row exists.
func (s *guestService) getOwnedGuest(ctx context.Context, userID, guestID int64) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if _, err := s.eventRepo.GetOwned(ctx, guest.EventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return guest, nil
}

func normalizeGuestFields(f domain.GuestFields) domain.GuestFields {
	f.Nama = strings.TrimSpace(f.Nama)
	f.Email = strings.TrimSpace(strings.ToLower(f.Email))
	f.Telepon = nonDigitRegexp.ReplaceAllString(strings.TrimSpace(f.Telepon), "")
	f.Pesan = strings.TrimSpace(f.Pesan)
	if f.TableNumber != nil {
		trimmed := strings.TrimSpace(*f.TableNumber)
		if trimmed == "" {
			f.TableNumber = nil
		} else {
			f.TableNumber = &trimmed
		}
	}
	return f
}

// validateGuestFields checks every field and reports all violations at
// once.
func validateGuestFields(f domain.GuestFields) error {
	fields := map[string]string{}

	switch {
	case f.Nama == "":
		fields["nama"] = "name is required"
	case len(f.Nama) < guestNameMin:
		fields["nama"] = fmt.Sprintf("name must be at least %d characters", guestNameMin)
	case len(f.Nama) > guestNameMax:
		fields["nama"] = fmt.Sprintf("name must be at most %d characters", guestNameMax)
	}

	switch {
	case f.Email == "":
		fields["email"] = "email is required"
	case !emailRegexp.MatchString(f.Email):
		fields["email"] = "invalid email format"
	}

	switch {
	case f.Telepon == "":
		fields["telepon"] = "phone number is required"
	case len(f.Telepon) < guestPhoneMin || len(f.Telepon) > guestPhoneMax:
		fields["telepon"] = fmt.Sprintf("phone number must be %d-%d digits", guestPhoneMin, guestPhoneMax)
	}

	switch {
	case f.Pesan == "":
		fields["pesan"] = "message is required"
	case len(f.Pesan) < guestMessageMin:
		fields["pesan"] = fmt.Sprintf("message must be at least %d characters", guestMessageMin)
	case len(f.Pesan) > guestMessageMax:
		fields["pesan"] = fmt.Sprintf("message must be at most %d characters", guestMessageMax)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// generateQRToken returns 8 random bytes hex-encoded. Uniqueness is
// enforced by the storage constraint; a collision surfaces as ErrConflict.
func generateQRToken() (string, error) {
	b := make([]byte, qrTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
