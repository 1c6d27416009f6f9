package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/internal/data/repository"
	"hbnb-booking/internal/dto/request"
	"hbnb-booking/internal/dto/response"
	"hbnb-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Mutating operations
	CreateBooking(ctx context.Context, guestID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Query views
	GetBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error)
	GetGuestBookings(ctx context.Context, guestID, status string) ([]response.BookingResponse, error)
	GetUpcomingBookings(ctx context.Context, guestID string) ([]response.BookingResponse, error)
	GetPastBookings(ctx context.Context, guestID string) ([]response.BookingResponse, error)
	GetPlaceBookings(ctx context.Context, placeID, actorID, status string) ([]response.BookingResponse, error)
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)

	// CompleteDueBookings marks every confirmed booking whose check-out
	// date has passed as completed. Invoked on demand or by the sweep job.
	CompleteDueBookings(ctx context.Context) (int, error)
}

type bookingService struct {
	repo         *repository.Repository
	reconciler   *Reconciler
	cancelWindow time.Duration
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, reconciler *Reconciler, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		reconciler:   reconciler,
		cancelWindow: time.Duration(config.Booking.CancelWindowHours) * time.Hour,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, guestID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Single validation pass collecting every field violation
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Violations: violationList(errs)}
	}

	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest ID format %s: %w", guestID, err)
	}

	placeUUID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("invalid place ID format %s: %w", req.PlaceID, err)
	}

	checkIn, err := entity.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := entity.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	place, err := s.repo.Place.FindByID(ctx, placeUUID)
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", req.PlaceID, err)
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	guest, err := s.repo.User.FindByID(ctx, guestUUID)
	if err != nil {
		return nil, fmt.Errorf("get guest %s: %w", guestID, err)
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	if place.OwnerID == guestUUID {
		return nil, ErrSelfBooking
	}

	now := time.Now().UTC()
	booking, err := entity.NewBooking(placeUUID, guestUUID, checkIn, checkOut, place.PricePerNight, now)
	if err != nil {
		return nil, err
	}

	// Verify the externally captured payment before anything is persisted
	amountCents, err := s.reconciler.Reconcile(ctx, place.PricePerNight, checkIn, checkOut, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	// Conflict check and insert run as one isolated unit; a losing
	// concurrent request comes back with ErrDatesUnavailable and leaves
	// no row behind.
	if err := s.repo.Booking.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDatesUnavailable) {
			return nil, ErrNotAvailable
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("guest_id", guestID),
			zap.String("place_id", req.PlaceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("place_id", req.PlaceID),
		zap.String("guest_id", guestID),
		zap.Int("nights", booking.Nights()),
		zap.Float64("total_price", booking.TotalPrice),
		zap.Int64("amount_cents", amountCents),
	)

	resp := response.BookingToResponse(booking, s.cancelWindow)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	place, err := s.getPlaceOf(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Guest, place owner or admin may cancel
	if actor.ID != booking.GuestID && actor.ID != place.OwnerID && !actor.IsAdmin {
		return nil, ErrUnauthorized
	}

	if err := s.applyTransition(ctx, booking, "cancel",
		[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		func(b *entity.Booking, now time.Time) error { return b.Cancel(now) },
	); err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actorID),
	)

	resp := response.BookingToResponse(booking, s.cancelWindow)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	place, err := s.getPlaceOf(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Only the place owner or an admin may confirm
	if actor.ID != place.OwnerID && !actor.IsAdmin {
		return nil, ErrUnauthorized
	}

	if err := s.applyTransition(ctx, booking, "confirm",
		[]entity.BookingStatus{entity.BookingStatusPending},
		func(b *entity.Booking, now time.Time) error { return b.Confirm(now) },
	); err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actorID),
	)

	resp := response.BookingToResponse(booking, s.cancelWindow)
	return &resp, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, booking, "complete",
		[]entity.BookingStatus{entity.BookingStatusConfirmed},
		func(b *entity.Booking, now time.Time) error { return b.Complete(now) },
	); err != nil {
		return nil, err
	}

	s.log.Info("Booking completed", zap.String("booking_id", bookingID))

	resp := response.BookingToResponse(booking, s.cancelWindow)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*response.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	place, err := s.getPlaceOf(ctx, booking)
	if err != nil {
		return nil, err
	}

	if actor.ID != booking.GuestID && actor.ID != place.OwnerID && !actor.IsAdmin {
		return nil, ErrUnauthorized
	}

	resp := response.BookingToResponse(booking, s.cancelWindow)
	return &resp, nil
}

func (s *bookingService) GetGuestBookings(ctx context.Context, guestID, status string) ([]response.BookingResponse, error) {
	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest ID format %s: %w", guestID, err)
	}

	bookings, err := s.repo.Booking.FindByGuestID(ctx, guestUUID, entity.BookingStatus(status))
	if err != nil {
		return nil, fmt.Errorf("get guest bookings: %w", err)
	}

	return s.toResponses(bookings), nil
}

func (s *bookingService) GetUpcomingBookings(ctx context.Context, guestID string) ([]response.BookingResponse, error) {
	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest ID format %s: %w", guestID, err)
	}

	today := entity.DateOf(time.Now())
	bookings, err := s.repo.Booking.FindUpcomingByGuestID(ctx, guestUUID, today)
	if err != nil {
		return nil, fmt.Errorf("get upcoming bookings: %w", err)
	}

	return s.toResponses(bookings), nil
}

func (s *bookingService) GetPastBookings(ctx context.Context, guestID string) ([]response.BookingResponse, error) {
	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return nil, fmt.Errorf("invalid guest ID format %s: %w", guestID, err)
	}

	today := entity.DateOf(time.Now())
	bookings, err := s.repo.Booking.FindPastByGuestID(ctx, guestUUID, today)
	if err != nil {
		return nil, fmt.Errorf("get past bookings: %w", err)
	}

	return s.toResponses(bookings), nil
}

func (s *bookingService) GetPlaceBookings(ctx context.Context, placeID, actorID, status string) ([]response.BookingResponse, error) {
	placeUUID, err := uuid.Parse(placeID)
	if err != nil {
		return nil, fmt.Errorf("invalid place ID format %s: %w", placeID, err)
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	place, err := s.repo.Place.FindByID(ctx, placeUUID)
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", placeID, err)
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	// Owner-side view
	if actor.ID != place.OwnerID && !actor.IsAdmin {
		return nil, ErrUnauthorized
	}

	bookings, err := s.repo.Booking.FindByPlaceID(ctx, placeUUID, entity.BookingStatus(status))
	if err != nil {
		return nil, fmt.Errorf("get place bookings: %w", err)
	}

	return s.toResponses(bookings), nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Violations: violationList(errs)}
	}

	placeUUID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("invalid place ID format %s: %w", req.PlaceID, err)
	}

	checkIn, err := entity.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := entity.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if !checkOut.After(checkIn) {
		return nil, &entity.ValidationError{Violations: []string{"check_out_date must be after check_in_date"}}
	}

	place, err := s.repo.Place.FindByID(ctx, placeUUID)
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", req.PlaceID, err)
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	available, err := s.repo.Booking.IsAvailable(ctx, placeUUID, checkIn, checkOut, nil)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	return &response.AvailabilityResponse{
		PlaceID:      req.PlaceID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    available,
	}, nil
}

func (s *bookingService) CompleteDueBookings(ctx context.Context) (int, error) {
	today := entity.DateOf(time.Now())

	due, err := s.repo.Booking.FindDueForCompletion(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("find bookings due for completion: %w", err)
	}

	completed := 0
	for _, booking := range due {
		ok, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID,
			[]entity.BookingStatus{entity.BookingStatusConfirmed},
			entity.BookingStatusCompleted,
			time.Now().UTC(),
		)
		if err != nil {
			s.log.Error("Failed to complete booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if ok {
			completed++
		}
	}

	if completed > 0 {
		s.log.Info("Completed overdue bookings", zap.Int("count", completed))
	}

	return completed, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) getBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

func (s *bookingService) getActor(ctx context.Context, actorID string) (*entity.User, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", actorID, err)
	}

	actor, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", actorID, err)
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	return actor, nil
}

func (s *bookingService) getPlaceOf(ctx context.Context, booking *entity.Booking) (*entity.Place, error) {
	place, err := s.repo.Place.FindByID(ctx, booking.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", booking.PlaceID.String(), err)
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	return place, nil
}

// applyTransition validates the status change on the entity, then
// persists it guarded by the expected source statuses so a concurrent
// mutation of the same booking cannot slip through.
func (s *bookingService) applyTransition(ctx context.Context, booking *entity.Booking, event string, from []entity.BookingStatus, transition func(*entity.Booking, time.Time) error) error {
	prevStatus := booking.Status
	now := time.Now().UTC()

	if err := transition(booking, now); err != nil {
		return err
	}

	ok, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID, from, booking.Status, booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s booking %s: %w", event, booking.ID.String(), err)
	}
	if !ok {
		// Someone else moved the booking first; report against the
		// status we read.
		booking.Status = prevStatus
		return &entity.InvalidTransitionError{From: prevStatus, Event: event}
	}

	return nil
}

func (s *bookingService) toResponses(bookings []*entity.Booking) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, s.cancelWindow)
	}
	return responses
}

func violationList(errs map[string]string) []string {
	violations := make([]string, 0, len(errs))
	for field, msg := range errs {
		violations = append(violations, fmt.Sprintf("%s: %s", field, msg))
	}
	return violations
}
