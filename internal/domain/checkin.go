package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QR code prefixes. QRPrefix is stamped on every new code; the legacy
// prefix is still accepted on scan so old invitations keep working.
const (
	QRPrefix       = "AWDG"
	QRPrefixLegacy = "BUKUTAMU"
)

// Sentinel errors for the verification engine.
var (
	ErrInvalidCode   = errors.New("invalid code format")
	ErrNotRegistered = errors.New("code not registered")
)

// ScanCode is the parsed form of a scanned payload <PREFIX>-<id>-<token>.
type ScanCode struct {
	Prefix  string
	GuestID int64
	Token   string
}

// ParseScanCode validates the shape of a scanned payload. Accepted
// prefixes are QRPrefix and QRPrefixLegacy; the id must be a positive
// integer and the token non-empty with no embedded '-'.
func ParseScanCode(raw string) (ScanCode, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return ScanCode{}, ErrInvalidCode
	}
	prefix := parts[0]
	if prefix != QRPrefix && prefix != QRPrefixLegacy {
		return ScanCode{}, ErrInvalidCode
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return ScanCode{}, ErrInvalidCode
	}
	if parts[2] == "" {
		return ScanCode{}, ErrInvalidCode
	}
	return ScanCode{Prefix: prefix, GuestID: id, Token: parts[2]}, nil
}

// FormatQRCode renders the scannable payload for a guest using the
// current prefix.
func FormatQRCode(guestID int64, token string) string {
	return fmt.Sprintf("%s-%d-%s", QRPrefix, guestID, token)
}

// CheckinService verifies scanned codes and performs the attendance
// transition. Both operations are reachable without authentication: the
// token itself is the credential.
type CheckinService interface {
	// Verify resolves a raw scanned payload to its guest, including the
	// current status so callers can distinguish "verified, still pending"
	// from "verified, already checked in".
	Verify(ctx context.Context, raw string) (*Guest, error)
	// CheckIn sets status to checked_in and stamps the time. Calling it
	// again re-stamps the time without error; last write wins.
	CheckIn(ctx context.Context, guestID int64) (*Guest, error)
}
