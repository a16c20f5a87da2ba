package assignment

import (
	"context"
	"testing"
	"time"

	"homecare/internal/domain"
	"homecare/internal/modules/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories, shared with the sweeper tests.

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateFinancials(ctx context.Context, id, totalCost, profit int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, totalCost, profit, status)
	return args.Error(0)
}

type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Shift, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) Assign(ctx context.Context, id int64, from domain.ShiftStatus, helperID, helperCost int64) (bool, error) {
	args := m.Called(ctx, id, from, helperID, helperCost)
	return args.Bool(0), args.Error(1)
}

func (m *MockShiftRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShiftRepository) UpdateTimes(ctx context.Context, id int64, day, start, end time.Time, cost, helperCost int64) error {
	args := m.Called(ctx, id, day, start, end, cost, helperCost)
	return args.Error(0)
}

func (m *MockShiftRepository) UpdateStatusFrom(ctx context.Context, id int64, from []domain.ShiftStatus, to domain.ShiftStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockShiftRepository) UpdateComment(ctx context.Context, id int64, comment string) error {
	args := m.Called(ctx, id, comment)
	return args.Error(0)
}

func (m *MockShiftRepository) ListPendingInWindow(ctx context.Context, dayStart, dayEnd, from, to time.Time) ([]domain.Shift, error) {
	args := m.Called(ctx, dayStart, dayEnd, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

type MockHelperRepository struct {
	mock.Mock
}

func (m *MockHelperRepository) GetByID(ctx context.Context, id int64) (*domain.Helper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Helper), args.Error(1)
}

func (m *MockHelperRepository) FirstAvailable(ctx context.Context, exclude []int64) (*domain.Helper, error) {
	args := m.Called(ctx, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Helper), args.Error(1)
}

func (m *MockHelperRepository) UpdateWorkingStatus(ctx context.Context, id int64, status domain.WorkingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPayCalculator struct {
	mock.Mock
}

func (m *MockPayCalculator) CustomerPrice(ctx context.Context, start, end time.Time, basicPrice int64, coef pricing.Coefficients) (int64, error) {
	args := m.Called(ctx, start, end, basicPrice, coef)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayCalculator) HelperPay(ctx context.Context, start, end time.Time, coef pricing.Coefficients, baseFactor float64) (int64, error) {
	args := m.Called(ctx, start, end, coef, baseFactor)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*Service, *MockBookingRepository, *MockShiftRepository, *MockHelperRepository, *MockPayCalculator) {
	bookings := new(MockBookingRepository)
	shifts := new(MockShiftRepository)
	helpers := new(MockHelperRepository)
	calc := new(MockPayCalculator)
	return NewService(bookings, shifts, helpers, calc), bookings, shifts, helpers, calc
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 42,
		ServiceBasePrice:   100000,
		CoefficientService: 1.0,
		CoefficientOther:   1.0,
		CoefficientOT:      1.5,
		TotalCost:          2000000,
		Status:             domain.BookingPending,
	}
}

func at(day, minutes int) time.Time {
	return time.Date(2025, 6, day, minutes/60, minutes%60, 0, 0, time.UTC)
}

func activeHelper(id int64) *domain.Helper {
	return &domain.Helper{
		ID:            id,
		FullName:      "Nguyen Thi Hoa",
		BaseFactor:    1.2,
		Status:        domain.HelperActive,
		WorkingStatus: domain.WorkingOnline,
	}
}

func TestAssignShift_ProfitFromFullShiftSet(t *testing.T) {
	svc, bookings, shifts, helpers, calc := newTestService()

	shift := &domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending,
		StartTime: at(2, 8*60), EndTime: at(2, 18*60), Cost: 1000000,
	}
	shifts.On("GetByID", mock.Anything, int64(100)).Return(shift, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)
	calc.On("HelperPay", mock.Anything, shift.StartTime, shift.EndTime, mock.Anything, 1.2).
		Return(int64(360000), nil)
	shifts.On("Assign", mock.Anything, int64(100), domain.ShiftPending, int64(5), int64(360000)).
		Return(true, nil)

	helperID := int64(5)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &helperID, Cost: 1000000, HelperCost: 360000, Status: domain.ShiftAssigned},
		{ID: 101, BookingID: 42, Cost: 1000000, Status: domain.ShiftPending},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(2000000), int64(1640000), domain.BookingAssigned).
		Return(nil)

	res, err := svc.AssignShift(context.Background(), 100, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(360000), res.HelperCost)
	assert.Equal(t, int64(2000000), res.TotalCost)
	// profit = total customer cost minus total helper pay across all shifts
	assert.Equal(t, int64(1640000), res.Profit)
	bookings.AssertExpectations(t)
}

func TestAssignShift_ReassignmentFreesPreviousHelper(t *testing.T) {
	svc, bookings, shifts, helpers, calc := newTestService()

	prevID := int64(3)
	shift := &domain.Shift{
		ID: 100, BookingID: 42, HelperID: &prevID, Status: domain.ShiftAssigned,
		StartTime: at(2, 8*60), EndTime: at(2, 18*60), Cost: 1000000, HelperCost: 300000,
	}
	shifts.On("GetByID", mock.Anything, int64(100)).Return(shift, nil)
	b := testBooking()
	b.Status = domain.BookingAssigned
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)
	calc.On("HelperPay", mock.Anything, mock.Anything, mock.Anything, mock.Anything, 1.2).
		Return(int64(360000), nil)
	shifts.On("Assign", mock.Anything, int64(100), domain.ShiftAssigned, int64(5), int64(360000)).
		Return(true, nil)
	helpers.On("UpdateWorkingStatus", mock.Anything, int64(3), domain.WorkingOnline).Return(nil)

	newID := int64(5)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &newID, Status: domain.ShiftAssigned, Cost: 1000000, HelperCost: 360000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(1000000), int64(640000), domain.BookingAssigned).
		Return(nil)

	_, err := svc.AssignShift(context.Background(), 100, 5)

	assert.NoError(t, err)
	helpers.AssertCalled(t, "UpdateWorkingStatus", mock.Anything, int64(3), domain.WorkingOnline)
}

func TestAssignShift_AlreadyStarted(t *testing.T) {
	svc, _, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftInProgress,
	}, nil)

	_, err := svc.AssignShift(context.Background(), 100, 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAssignShift_InactiveHelper(t *testing.T) {
	svc, bookings, shifts, helpers, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending,
	}, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	h := activeHelper(5)
	h.Status = domain.HelperInactive
	helpers.On("GetByID", mock.Anything, int64(5)).Return(h, nil)

	_, err := svc.AssignShift(context.Background(), 100, 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAssignShift_LostRace(t *testing.T) {
	svc, bookings, shifts, helpers, calc := newTestService()

	shift := &domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending,
		StartTime: at(2, 8*60), EndTime: at(2, 18*60),
	}
	shifts.On("GetByID", mock.Anything, int64(100)).Return(shift, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)
	calc.On("HelperPay", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(360000), nil)
	// conditional write finds the shift no longer pending
	shifts.On("Assign", mock.Anything, int64(100), domain.ShiftPending, int64(5), int64(360000)).
		Return(false, nil)

	_, err := svc.AssignShift(context.Background(), 100, 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAssignBooking_SkipsNonAssignable(t *testing.T) {
	svc, bookings, shifts, helpers, calc := newTestService()

	helperID := int64(5)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftPending, StartTime: at(2, 8*60), EndTime: at(2, 18*60), Cost: 1000000},
		{ID: 101, BookingID: 42, Status: domain.ShiftCancelled, Cost: 1000000},
		{ID: 102, BookingID: 42, Status: domain.ShiftPending, StartTime: at(3, 8*60), EndTime: at(3, 18*60), Cost: 1000000},
	}, nil).Once()
	calc.On("HelperPay", mock.Anything, mock.Anything, mock.Anything, mock.Anything, 1.2).
		Return(int64(360000), nil)
	shifts.On("Assign", mock.Anything, int64(100), domain.ShiftPending, int64(5), int64(360000)).Return(true, nil)
	shifts.On("Assign", mock.Anything, int64(102), domain.ShiftPending, int64(5), int64(360000)).Return(true, nil)

	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned, Cost: 1000000, HelperCost: 360000},
		{ID: 101, BookingID: 42, Status: domain.ShiftCancelled, Cost: 1000000},
		{ID: 102, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned, Cost: 1000000, HelperCost: 360000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(2000000), int64(1280000), domain.BookingAssigned).
		Return(nil)

	res, err := svc.AssignBooking(context.Background(), 42, 5)

	assert.NoError(t, err)
	assert.Len(t, res.HelperCostList, 2)
	assert.Equal(t, int64(1280000), res.Profit)
	shifts.AssertNotCalled(t, "Assign", mock.Anything, int64(101), mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignBooking_NothingAssignable(t *testing.T) {
	svc, bookings, shifts, helpers, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, Status: domain.ShiftInProgress},
		{ID: 101, Status: domain.ShiftCancelled},
	}, nil)

	_, err := svc.AssignBooking(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelShift_FreesHelperAndDropsCost(t *testing.T) {
	svc, bookings, shifts, helpers, _ := newTestService()

	helperID := int64(5)
	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned,
		Cost: 1000000, HelperCost: 360000,
	}, nil)
	b := testBooking()
	b.Status = domain.BookingAssigned
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	shifts.On("Cancel", mock.Anything, int64(100)).Return(true, nil)
	helpers.On("UpdateWorkingStatus", mock.Anything, int64(5), domain.WorkingOnline).Return(nil)

	// remaining shift still assigned, so the booking stays assigned
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftCancelled, Cost: 0, HelperCost: 0},
		{ID: 101, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned, Cost: 1000000, HelperCost: 360000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(1000000), int64(640000), domain.BookingAssigned).
		Return(nil)

	err := svc.CancelShift(context.Background(), 100)

	assert.NoError(t, err)
	helpers.AssertCalled(t, "UpdateWorkingStatus", mock.Anything, int64(5), domain.WorkingOnline)
	bookings.AssertExpectations(t)
}

func TestCancelShift_TwiceIsRejected(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftCancelled,
	}, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("Cancel", mock.Anything, int64(100)).Return(false, nil)

	err := svc.CancelShift(context.Background(), 100)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	// the total must not be decremented a second time
	bookings.AssertNotCalled(t, "UpdateFinancials", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelShift_LastActiveCancelsBooking(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending, Cost: 1000000,
	}, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("Cancel", mock.Anything, int64(100)).Return(true, nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftCancelled},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(0), int64(0), domain.BookingCancelled).
		Return(nil)

	err := svc.CancelShift(context.Background(), 100)

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestCancelBooking_RefusedOnceStarted(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, Status: domain.ShiftAssigned},
		{ID: 101, Status: domain.ShiftInProgress},
	}, nil)

	err := svc.CancelBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	shifts.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestCancelBooking_CascadesAndFreesHelpers(t *testing.T) {
	svc, bookings, shifts, helpers, _ := newTestService()

	helperID := int64(5)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned, Cost: 1000000, HelperCost: 360000},
		{ID: 101, BookingID: 42, Status: domain.ShiftPending, Cost: 1000000},
	}, nil).Once()
	shifts.On("Cancel", mock.Anything, int64(100)).Return(true, nil)
	shifts.On("Cancel", mock.Anything, int64(101)).Return(true, nil)
	helpers.On("UpdateWorkingStatus", mock.Anything, int64(5), domain.WorkingOnline).Return(nil)

	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftCancelled},
		{ID: 101, BookingID: 42, Status: domain.ShiftCancelled},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(0), int64(0), domain.BookingCancelled).
		Return(nil)

	err := svc.CancelBooking(context.Background(), 42)

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestChangeShiftTime_RepricesWhenCostOmitted(t *testing.T) {
	svc, bookings, shifts, helpers, calc := newTestService()

	helperID := int64(5)
	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned,
		WorkingDate: at(2, 0), StartTime: at(2, 8*60), EndTime: at(2, 12*60),
		Cost: 400000, HelperCost: 144000,
	}, nil)
	b := testBooking()
	b.Status = domain.BookingAssigned
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	helpers.On("GetByID", mock.Anything, int64(5)).Return(activeHelper(5), nil)

	newStart := at(2, 13*60)
	newEnd := at(2, 18*60)
	calc.On("CustomerPrice", mock.Anything, newStart, newEnd, int64(100000), mock.Anything).
		Return(int64(500000), nil)
	calc.On("HelperPay", mock.Anything, newStart, newEnd, mock.Anything, 1.2).
		Return(int64(180000), nil)
	shifts.On("UpdateTimes", mock.Anything, int64(100), at(2, 0), newStart, newEnd, int64(500000), int64(180000)).
		Return(nil)

	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftAssigned, Cost: 500000, HelperCost: 180000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(500000), int64(320000), domain.BookingAssigned).
		Return(nil)

	err := svc.ChangeShiftTime(context.Background(), 100, ChangeTimeRequest{
		StartTime: 13 * 60,
		EndTime:   18 * 60,
	})

	assert.NoError(t, err)
	shifts.AssertExpectations(t)
	bookings.AssertExpectations(t)
}

func TestChangeShiftTime_MovesWorkingDate(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending,
		WorkingDate: at(2, 0), StartTime: at(2, 8*60), EndTime: at(2, 12*60),
		Cost: 400000,
	}, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)

	// re-scheduling to June 10 must carry the working date along, not just
	// the start/end instants
	newDay := at(10, 0)
	shifts.On("UpdateTimes", mock.Anything, int64(100), newDay, at(10, 8*60), at(10, 12*60), int64(400000), int64(0)).
		Return(nil)

	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftPending, Cost: 400000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(400000), int64(0), domain.BookingPending).
		Return(nil)

	err := svc.ChangeShiftTime(context.Background(), 100, ChangeTimeRequest{
		WorkingDate: "2025-06-10",
		StartTime:   8 * 60,
		EndTime:     12 * 60,
		Cost:        400000,
	})

	assert.NoError(t, err)
	shifts.AssertExpectations(t)
}

func TestChangeShiftTime_InvalidRange(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	err := svc.ChangeShiftTime(context.Background(), 100, ChangeTimeRequest{
		StartTime: 18 * 60,
		EndTime:   8 * 60,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangeShiftStatus_CompletedFreesHelper(t *testing.T) {
	svc, bookings, shifts, helpers, _ := newTestService()

	helperID := int64(5)
	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftInProgress,
		Cost: 1000000, HelperCost: 360000,
	}, nil)
	b := testBooking()
	b.Status = domain.BookingInProgress
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	shifts.On("UpdateStatusFrom", mock.Anything, int64(100),
		[]domain.ShiftStatus{domain.ShiftAssigned, domain.ShiftInProgress}, domain.ShiftCompleted).
		Return(true, nil)
	shifts.On("UpdateComment", mock.Anything, int64(100), "done early").Return(nil)
	helpers.On("UpdateWorkingStatus", mock.Anything, int64(5), domain.WorkingOnline).Return(nil)

	// every active shift done, so the booking moves to waitPayment
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, HelperID: &helperID, Status: domain.ShiftCompleted, Cost: 1000000, HelperCost: 360000},
	}, nil)
	bookings.On("UpdateFinancials", mock.Anything, int64(42), int64(1000000), int64(640000), domain.BookingWaitPayment).
		Return(nil)

	err := svc.ChangeShiftStatus(context.Background(), 100, domain.ShiftCompleted, "done early")

	assert.NoError(t, err)
	shifts.AssertCalled(t, "UpdateComment", mock.Anything, int64(100), "done early")
}

func TestChangeShiftStatus_WaitPaymentNeedsSiblingsDone(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftCompleted,
	}, nil)
	b := testBooking()
	b.Status = domain.BookingInProgress
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, BookingID: 42, Status: domain.ShiftCompleted},
		{ID: 101, BookingID: 42, Status: domain.ShiftInProgress},
	}, nil)

	err := svc.ChangeShiftStatus(context.Background(), 100, domain.ShiftWaitPayment, "")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	shifts.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeShiftStatus_IllegalJump(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(100)).Return(&domain.Shift{
		ID: 100, BookingID: 42, Status: domain.ShiftPending,
	}, nil)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("UpdateStatusFrom", mock.Anything, int64(100),
		[]domain.ShiftStatus{domain.ShiftAssigned}, domain.ShiftInProgress).
		Return(false, nil)

	err := svc.ChangeShiftStatus(context.Background(), 100, domain.ShiftInProgress, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeBookingStatus_CompletedGate(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	b := testBooking()
	b.Status = domain.BookingWaitPayment
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, Status: domain.ShiftWaitPayment},
		{ID: 101, Status: domain.ShiftCancelled},
	}, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted).Return(nil)

	err := svc.ChangeBookingStatus(context.Background(), 42, domain.BookingCompleted)

	assert.NoError(t, err)
	bookings.AssertCalled(t, "UpdateStatus", mock.Anything, int64(42), domain.BookingCompleted)
}

func TestChangeBookingStatus_CompletedRefusedWhileRunning(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, Status: domain.ShiftInProgress},
	}, nil)

	err := svc.ChangeBookingStatus(context.Background(), 42, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeBookingStatus_CompletedNeedsActiveShift(t *testing.T) {
	svc, bookings, shifts, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	shifts.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Shift{
		{ID: 100, Status: domain.ShiftCancelled},
	}, nil)

	err := svc.ChangeBookingStatus(context.Background(), 42, domain.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeBookingStatus_UnknownTarget(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	err := svc.ChangeBookingStatus(context.Background(), 42, domain.BookingInProgress)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShiftNotFound(t *testing.T) {
	svc, _, shifts, _, _ := newTestService()

	shifts.On("GetByID", mock.Anything, int64(999)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.AssignShift(context.Background(), 999, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
