package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// BookingService coordinates the booking lifecycle.
type BookingService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
	cache      Cache
	clock      Clock
	loc        *time.Location
	logger     *zap.Logger
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
	Cache       Cache
	Clock       Clock
	Location    *time.Location
	Logger      *zap.Logger
}

// CreateBookingInput is a booking request. UserID is set when the caller is signed in.
type CreateBookingInput struct {
	CustomerName string `json:"customerName" validate:"required"`
	Email        string `json:"email" validate:"required,email,tld_email"`
	Phone        string `json:"phone" validate:"required,min=10"`
	Service      string `json:"service" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Notes        string `json:"notes"`
	UserID       *int64 `json:"-"`
}

// BookingPatch holds the fields an admin may change. Nil fields are left untouched.
type BookingPatch struct {
	Status *string
	Notes  *string
	Date   *string
	Time   *string
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	svc := &BookingService{
		bookings:   deps.BookingRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		clock:      deps.Clock,
		loc:        deps.Location,
		logger:     deps.Logger,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.loc == nil {
		svc.loc = time.UTC
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Create validates input and stores a pending booking.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, actor *domain.User) (*domain.Booking, error) {
	input.CustomerName = trim(input.CustomerName)
	input.Email = trim(input.Email)
	input.Phone = trim(input.Phone)
	input.Service = trim(input.Service)
	input.Date = trim(input.Date)
	input.Time = trim(input.Time)

	if err := validateStruct(input); err != nil {
		return nil, err
	}
	date, err := s.checkDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := checkSlot(input.Time); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:       input.UserID,
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Service:      input.Service,
		Date:         date,
		Time:         input.Time,
		Status:       domain.BookingStatusPending,
		Notes:        trim(input.Notes),
		CreatedAt:    s.clock(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, s.writeError(err, booking)
	}
	cacheDelete(ctx, s.cache, availabilityCacheKey(booking.Date))

	publish(ctx, s.dispatcher, booking.CreatedAt, events.Event{
		Type:      events.EventBookingCreated,
		BookingID: booking.ID,
		Actor:     actorOf(actor),
		Payload: events.BookingCreatedPayload{
			CustomerName: booking.CustomerName,
			Email:        booking.Email,
			Service:      booking.Service,
			Date:         booking.Date,
			Time:         booking.Time,
		},
	})
	return booking, nil
}

// UpdateStatus merges patch into the booking, enforcing the status transition table.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, patch BookingPatch, actor *domain.User) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *booking

	if patch.Status != nil {
		next, ok := domain.ParseBookingStatus(*patch.Status)
		if !ok {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatus, "unknown booking status",
				map[string]any{"status": *patch.Status, "allowed": domain.BookingStatuses})
		}
		if !booking.Status.CanTransitionTo(next) {
			return nil, apperrors.NewValidationError(apperrors.CodeIllegalTransition, "status transition not allowed",
				map[string]any{"from": booking.Status, "to": next})
		}
		booking.Status = next
	}
	if patch.Date != nil {
		date, err := s.checkDate(trim(*patch.Date))
		if err != nil {
			return nil, err
		}
		booking.Date = date
	}
	if patch.Time != nil {
		slot := trim(*patch.Time)
		if err := checkSlot(slot); err != nil {
			return nil, err
		}
		booking.Time = slot
	}
	if patch.Notes != nil {
		booking.Notes = trim(*patch.Notes)
	}

	now := s.clock()
	booking.UpdatedAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, s.writeError(err, booking)
	}
	cacheDelete(ctx, s.cache, availabilityCacheKey(previous.Date), availabilityCacheKey(booking.Date))

	if previous.Status != booking.Status {
		publish(ctx, s.dispatcher, now, events.Event{
			Type:      events.EventBookingStatusChanged,
			BookingID: booking.ID,
			Actor:     actorOf(actor),
			Payload: events.BookingStatusChangedPayload{
				Email:     booking.Email,
				OldStatus: previous.Status,
				NewStatus: booking.Status,
				Notes:     booking.Notes,
			},
		})
	}
	return booking, nil
}

// Delete removes a booking and returns the removed record.
func (s *BookingService) Delete(ctx context.Context, id int64, actor *domain.User) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return nil, storeError(err, "booking", map[string]any{"id": id})
	}
	cacheDelete(ctx, s.cache, availabilityCacheKey(booking.Date))

	publish(ctx, s.dispatcher, s.clock(), events.Event{
		Type:      events.EventBookingDeleted,
		BookingID: booking.ID,
		Actor:     actorOf(actor),
		Payload: events.BookingDeletedPayload{
			Email:  booking.Email,
			Date:   booking.Date,
			Time:   booking.Time,
			Status: booking.Status,
		},
	})
	return booking, nil
}

// GetByID fetches one booking.
func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "booking", map[string]any{"id": id})
	}
	return booking, nil
}

// ListAll returns every booking, most recent first.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, repository.BookingFilter{})
}

// ListByStatus returns the bookings in one status, most recent first.
func (s *BookingService) ListByStatus(ctx context.Context, rawStatus string) ([]domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatus, "unknown booking status",
			map[string]any{"status": rawStatus})
	}
	return s.list(ctx, repository.BookingFilter{Status: status})
}

// ListByUserEmail returns the bookings made with email, most recent first.
func (s *BookingService) ListByUserEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	email = trim(email)
	if email == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissingField, "email is required",
			map[string]any{"fields": []string{"email"}})
	}
	return s.list(ctx, repository.BookingFilter{Email: email})
}

func (s *BookingService) list(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return bookings, nil
}

// checkDate normalises raw and rejects days before today in the salon's timezone.
func (s *BookingService) checkDate(raw string) (string, error) {
	canonical, _, err := domain.NormalizeDate(raw)
	if err != nil {
		return "", apperrors.NewValidationError(apperrors.CodeInvalidDate, "date must be formatted as YYYY-MM-DD",
			map[string]any{"date": raw})
	}
	today := s.clock().In(s.loc).Format(domain.DateFormat)
	// canonical dates compare correctly as strings
	if canonical < today {
		return "", apperrors.NewValidationError(apperrors.CodePastDate, "date cannot be in the past",
			map[string]any{"date": canonical, "today": today})
	}
	return canonical, nil
}

func checkSlot(slot string) error {
	if !domain.IsSlot(slot) {
		return apperrors.NewValidationError(apperrors.CodeInvalidSlot, "time is not a bookable slot",
			map[string]any{"time": slot, "slots": domain.SlotCatalog})
	}
	return nil
}

func (s *BookingService) writeError(err error, booking *domain.Booking) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(apperrors.CodeSlotTaken, "this time slot is already booked",
			map[string]any{"date": booking.Date, "time": booking.Time})
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("booking", map[string]any{"id": booking.ID})
	default:
		s.logger.Error("booking write failed", zap.Int64("booking_id", booking.ID), zap.Error(err))
		return apperrors.NewStoreError(err)
	}
}
