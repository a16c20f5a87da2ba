package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"homecare/internal/domain"
	"homecare/internal/modules/pricing"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customers created implicitly from a booking get this password until they
// register through the app.
const defaultCustomerPassword = "homecare@123"

type Service struct {
	bookings  BookingRepository
	shifts    ShiftRepository
	services  ServiceRepository
	customers CustomerRepository
	helpers   HelperRepository
	calc      PriceCalculator
}

func NewService(
	bookings BookingRepository,
	shifts ShiftRepository,
	services ServiceRepository,
	customers CustomerRepository,
	helpers HelperRepository,
	calc PriceCalculator,
) *Service {
	return &Service{
		bookings:  bookings,
		shifts:    shifts,
		services:  services,
		customers: customers,
		helpers:   helpers,
		calc:      calc,
	}
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func atMinutes(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, time.UTC)
}

func resolveCoefficients(req CreateBookingRequest, svc *domain.Service) pricing.Coefficients {
	coef := pricing.Coefficients{
		Service: svc.CoefficientService,
		Other:   svc.CoefficientOther,
		OT:      svc.CoefficientOT,
	}
	if req.CoefficientService > 0 {
		coef.Service = req.CoefficientService
	}
	if req.CoefficientOther > 0 {
		coef.Other = req.CoefficientOther
	}
	if req.CoefficientOT > 0 {
		coef.OT = req.CoefficientOT
	}
	return coef
}

// buildShifts turns the request into priced pending shifts: one per
// admin-supplied detail entry, or one per calendar day of the range.
// The returned total is the sum of the per-shift costs, which keeps the
// booking total consistent with its shifts from the start.
func (s *Service) buildShifts(ctx context.Context, req CreateBookingRequest, svc *domain.Service, coef pricing.Coefficients) ([]*domain.Shift, int64, error) {
	var shifts []*domain.Shift
	var total int64

	if len(req.Details) > 0 {
		for _, d := range req.Details {
			day, err := parseDay(d.WorkingDate)
			if err != nil {
				return nil, 0, err
			}
			if d.EndTime <= d.StartTime || d.Cost < 0 {
				return nil, 0, ErrValidation
			}
			start := atMinutes(day, d.StartTime)
			end := atMinutes(day, d.EndTime)
			cost := d.Cost
			if cost == 0 {
				cost, err = s.calc.CustomerPrice(ctx, start, end, svc.BasicPrice, coef)
				if err != nil {
					return nil, 0, err
				}
			}
			shifts = append(shifts, &domain.Shift{
				WorkingDate: day,
				StartTime:   start,
				EndTime:     end,
				Cost:        cost,
				Status:      domain.ShiftPending,
			})
			total += cost
		}
		return shifts, total, nil
	}

	startDay, err := parseDay(req.StartDate)
	if err != nil {
		return nil, 0, err
	}
	endDay := startDay
	if req.EndDate != "" {
		endDay, err = parseDay(req.EndDate)
		if err != nil {
			return nil, 0, err
		}
	}
	if endDay.Before(startDay) || req.EndTime <= req.StartTime {
		return nil, 0, ErrValidation
	}

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		start := atMinutes(day, req.StartTime)
		end := atMinutes(day, req.EndTime)
		cost, err := s.calc.CustomerPrice(ctx, start, end, svc.BasicPrice, coef)
		if err != nil {
			return nil, 0, err
		}
		shifts = append(shifts, &domain.Shift{
			WorkingDate: day,
			StartTime:   start,
			EndTime:     end,
			Cost:        cost,
			Status:      domain.ShiftPending,
		})
		total += cost
	}
	return shifts, total, nil
}

func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	coef := resolveCoefficients(req, svc)

	shifts, totalCost, err := s.buildShifts(ctx, req, svc, coef)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		CustomerFullName:   req.FullName,
		CustomerPhone:      req.Phone,
		CustomerAddress:    req.Address,
		UsedPoint:          totalCost / 100,
		ServiceTitle:       svc.Title,
		ServiceBasePrice:   svc.BasicPrice,
		CoefficientService: coef.Service,
		CoefficientOther:   coef.Other,
		CoefficientOT:      coef.OT,
		StartTime:          shifts[0].StartTime,
		EndTime:            shifts[len(shifts)-1].EndTime,
		TotalCost:          totalCost,
		Profit:             0,
		Status:             domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	for _, sh := range shifts {
		sh.BookingID = b.ID
	}
	if err := s.shifts.CreateBatch(ctx, shifts); err != nil {
		return nil, err
	}

	if err := s.ensureCustomer(ctx, req); err != nil {
		return nil, err
	}
	return b, nil
}

// ensureCustomer creates a customer record the first time a phone number
// shows up. A concurrent create of the same phone is fine: the unique
// violation just means someone else won.
func (s *Service) ensureCustomer(ctx context.Context, req CreateBookingRequest) error {
	_, err := s.customers.GetByPhone(ctx, req.Phone)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultCustomerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c := &domain.Customer{
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Points:       0,
		SignedUp:     false,
	}
	// the booking address seeds the customer's address book
	if req.Address != "" {
		raw, err := json.Marshal([]domain.CustomerAddress{{Address: req.Address}})
		if err != nil {
			return err
		}
		c.Addresses = datatypes.JSON(raw)
	}
	if err := s.customers.Create(ctx, c); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}

// freeHelpers returns every helper still attached to a non-cancelled shift
// of the booking to the online pool. Called before a schedule is dropped or
// cascade-cancelled so discarded assignments do not strand helpers in
// "working".
func (s *Service) freeHelpers(ctx context.Context, bookingID int64) error {
	shifts, err := s.shifts.ListByBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, sh := range shifts {
		if sh.HelperID == nil || sh.Status == domain.ShiftCancelled {
			continue
		}
		if err := s.helpers.UpdateWorkingStatus(ctx, *sh.HelperID, domain.WorkingOnline); err != nil {
			return err
		}
	}
	return nil
}

// Edit is full-replace: the previous schedule is dropped, shifts are
// recreated from the new input, and any in-flight assignment state is
// discarded (status back to pending, profit reset).
func (s *Service) Edit(ctx context.Context, id int64, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	coef := resolveCoefficients(req, svc)

	shifts, totalCost, err := s.buildShifts(ctx, req, svc, coef)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, ErrValidation
	}

	if err := s.freeHelpers(ctx, id); err != nil {
		return nil, err
	}
	if err := s.shifts.DeleteByBooking(ctx, id); err != nil {
		return nil, err
	}
	for _, sh := range shifts {
		sh.BookingID = id
	}
	if err := s.shifts.CreateBatch(ctx, shifts); err != nil {
		return nil, err
	}

	b.CustomerFullName = req.FullName
	b.CustomerPhone = req.Phone
	b.CustomerAddress = req.Address
	b.UsedPoint = totalCost / 100
	b.ServiceTitle = svc.Title
	b.ServiceBasePrice = svc.BasicPrice
	b.CoefficientService = coef.Service
	b.CoefficientOther = coef.Other
	b.CoefficientOT = coef.OT
	b.StartTime = shifts[0].StartTime
	b.EndTime = shifts[len(shifts)-1].EndTime
	b.TotalCost = totalCost
	b.Profit = 0
	b.Status = domain.BookingPending

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete is a soft cascading cancel, never a physical delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.freeHelpers(ctx, id); err != nil {
		return err
	}
	if err := s.shifts.CancelByBooking(ctx, id); err != nil {
		return err
	}
	return s.bookings.MarkDeleted(ctx, id)
}

func (s *Service) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.bookings.ListByStatus(ctx, status)
}

func (s *Service) Detail(ctx context.Context, id int64) (*DetailResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	shifts, err := s.shifts.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers, err := s.helpers.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(helpers))
	options := make([]HelperOption, 0, len(helpers))
	for _, h := range helpers {
		names[h.ID] = h.FullName
		options = append(options, HelperOption{ID: h.ID, FullName: h.FullName})
	}

	views := make([]ShiftView, 0, len(shifts))
	for _, sh := range shifts {
		v := ShiftView{Shift: sh}
		if sh.HelperID != nil {
			v.HelperName = names[*sh.HelperID]
		}
		views = append(views, v)
	}

	return &DetailResponse{Booking: b, Shifts: views, Helpers: options}, nil
}
