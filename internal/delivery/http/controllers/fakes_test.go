package controllers

import (
	"context"
	"errors"

	"awguestbook/internal/domain"
)

var errNotStubbed = errors.New("not stubbed")

// fakeGuestService implements domain.GuestService with per-method stubs.
type fakeGuestService struct {
	createFn func(ctx context.Context, userID, eventID int64, fields domain.GuestFields) (*domain.Guest, error)
	getFn    func(ctx context.Context, userID, guestID int64) (*domain.Guest, error)
	updateFn func(ctx context.Context, userID, guestID int64, fields domain.GuestFields) (*domain.Guest, error)
	deleteFn func(ctx context.Context, userID, guestID int64) error
	listFn   func(ctx context.Context, userID, eventID int64, search string) ([]*domain.Guest, error)
	statsFn  func(ctx context.Context, userID, eventID int64) (*domain.GuestStats, error)
}

func (f *fakeGuestService) Create(ctx context.Context, userID, eventID int64, fields domain.GuestFields) (*domain.Guest, error) {
	if f.createFn == nil {
		return nil, errNotStubbed
	}
	return f.createFn(ctx, userID, eventID, fields)
}

func (f *fakeGuestService) Get(ctx context.Context, userID, guestID int64) (*domain.Guest, error) {
	if f.getFn == nil {
		return nil, errNotStubbed
	}
	return f.getFn(ctx, userID, guestID)
}

func (f *fakeGuestService) Update(ctx context.Context, userID, guestID int64, fields domain.GuestFields) (*domain.Guest, error) {
	if f.updateFn == nil {
		return nil, errNotStubbed
	}
	return f.updateFn(ctx, userID, guestID, fields)
}

func (f *fakeGuestService) Delete(ctx context.Context, userID, guestID int64) error {
	if f.deleteFn == nil {
		return errNotStubbed
	}
	return f.deleteFn(ctx, userID, guestID)
}

func (f *fakeGuestService) List(ctx context.Context, userID, eventID int64, search string) ([]*domain.Guest, error) {
	if f.listFn == nil {
		return nil, errNotStubbed
	}
	return f.listFn(ctx, userID, eventID, search)
}

func (f *fakeGuestService) Stats(ctx context.Context, userID, eventID int64) (*domain.GuestStats, error) {
	if f.statsFn == nil {
		return nil, errNotStubbed
	}
	return f.statsFn(ctx, userID, eventID)
}

// fakeCheckinService implements domain.CheckinService with per-method stubs.
type fakeCheckinService struct {
	verifyFn  func(ctx context.Context, raw string) (*domain.Guest, error)
	checkInFn func(ctx context.Context, guestID int64) (*domain.Guest, error)
}

func (f *fakeCheckinService) Verify(ctx context.Context, raw string) (*domain.Guest, error) {
	if f.verifyFn == nil {
		return nil, errNotStubbed
	}
	return f.verifyFn(ctx, raw)
}

func (f *fakeCheckinService) CheckIn(ctx context.Context, guestID int64) (*domain.Guest, error) {
	if f.checkInFn == nil {
		return nil, errNotStubbed
	}
	return f.checkInFn(ctx, guestID)
}

// fakeEventService implements domain.EventService with per-method stubs.
type fakeEventService struct {
	createFn func(ctx context.Context, userID int64, fields domain.EventFields) (*domain.Event, error)
	getFn    func(ctx context.Context, userID, eventID int64) (*domain.Event, error)
	listFn   func(ctx context.Context, userID int64, includeArchived bool) ([]*domain.Event, error)
	updateFn func(ctx context.Context, userID, eventID int64, fields domain.EventFields) (*domain.Event, error)
	deleteFn func(ctx context.Context, userID, eventID int64) error
	statsFn  func(ctx context.Context, userID, eventID int64) (*domain.EventStats, error)
	switchFn func(ctx context.Context, userID, eventID int64) (*domain.Event, error)
}

func (f *fakeEventService) Create(ctx context.Context, userID int64, fields domain.EventFields) (*domain.Event, error) {
	if f.createFn == nil {
		return nil, errNotStubbed
	}
	return f.createFn(ctx, userID, fields)
}

func (f *fakeEventService) Get(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	if f.getFn == nil {
		return nil, errNotStubbed
	}
	return f.getFn(ctx, userID, eventID)
}

func (f *fakeEventService) List(ctx context.Context, userID int64, includeArchived bool) ([]*domain.Event, error) {
	if f.listFn == nil {
		return nil, errNotStubbed
	}
	return f.listFn(ctx, userID, includeArchived)
}

func (f *fakeEventService) Update(ctx context.Context, userID, eventID int64, fields domain.EventFields) (*domain.Event, error) {
	if f.updateFn == nil {
		return nil, errNotStubbed
	}
	return f.updateFn(ctx, userID, eventID, fields)
}

func (f *fakeEventService) Delete(ctx context.Context, userID, eventID int64) error {
	if f.deleteFn == nil {
		return errNotStubbed
	}
	return f.deleteFn(ctx, userID, eventID)
}

func (f *fakeEventService) Stats(ctx context.Context, userID, eventID int64) (*domain.EventStats, error) {
	if f.statsFn == nil {
		return nil, errNotStubbed
	}
	return f.statsFn(ctx, userID, eventID)
}

func (f *fakeEventService) Switch(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	if f.switchFn == nil {
		return nil, errNotStubbed
	}
	return f.switchFn(ctx, userID, eventID)
}

// fakeAuthService implements domain.AuthService with per-method stubs.
type fakeAuthService struct {
	registerFn func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	logoutFn   func(ctx context.Context, sessionToken string) error
	forgotFn   func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, token, password string) error
	getUserFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (f *fakeAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if f.registerFn == nil {
		return nil, errNotStubbed
	}
	return f.registerFn(ctx, input)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if f.loginFn == nil {
		return nil, errNotStubbed
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionToken string) error {
	if f.logoutFn == nil {
		return errNotStubbed
	}
	return f.logoutFn(ctx, sessionToken)
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, email string) error {
	if f.forgotFn == nil {
		return errNotStubbed
	}
	return f.forgotFn(ctx, email)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, token, password string) error {
	if f.resetFn == nil {
		return errNotStubbed
	}
	return f.resetFn(ctx, token, password)
}

func (f *fakeAuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if f.getUserFn == nil {
		return nil, errNotStubbed
	}
	return f.getUserFn(ctx, userID)
}
