package pricing

import (
	"context"
	"math"
	"time"

	"homecare/internal/domain"
)

// SettingsRepository provides the business-wide pricing parameters.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.GeneralSetting, error)
}

// Coefficients is the pricing snapshot carried by a booking.
type Coefficients struct {
	Service float64
	Other   float64
	OT      float64
}

// Calculator converts a time range plus coefficients into money, splitting
// the range into regular and overtime hours around the office-hour
// boundaries. Settings are read on every call so changes apply immediately.
type Calculator struct {
	settings SettingsRepository
}

func NewCalculator(settings SettingsRepository) *Calculator {
	return &Calculator{settings: settings}
}

// splitHours works on hour-of-day components, not wall-clock duration.
// Callers normalize multi-day spans into whole-day iteration first; a shift
// is expected to start and end within one calendar day.
func splitHours(start, end time.Time, officeStartHour, officeEndHour int) (regular, overtime int) {
	startHour := start.UTC().Hour()
	endHour := end.UTC().Hour()

	total := endHour - startHour
	if officeStartHour > startHour {
		overtime += officeStartHour - startHour
	}
	if endHour > officeEndHour {
		overtime += endHour - officeEndHour
	}
	// a shift entirely outside office hours is pure overtime
	if overtime > total {
		overtime = total
	}
	regular = total - overtime
	return regular, overtime
}

func days(start, end time.Time) int64 {
	d := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if d < 1 {
		d = 1
	}
	return d
}

// CustomerPrice returns the customer-facing price for the range. Multi-day
// ranges multiply the per-day cost by the number of calendar days covered.
func (c *Calculator) CustomerPrice(ctx context.Context, start, end time.Time, basicPrice int64, coef Coefficients) (int64, error) {
	setting, err := c.settings.Get(ctx)
	if err != nil {
		return 0, err
	}

	regular, overtime := splitHours(start, end, setting.OfficeStartHour(), setting.OfficeEndHour())
	d := days(start, end)

	base := int64(math.Floor(float64(basicPrice) * float64(regular) * float64(d) * coef.Service))
	ot := int64(math.Floor(float64(basicPrice) * float64(overtime) * float64(d) * coef.OT * coef.Service))
	return base + ot, nil
}

// HelperPay returns the pay owed to a helper with the given personal factor
// for a single shift.
func (c *Calculator) HelperPay(ctx context.Context, start, end time.Time, coef Coefficients, baseFactor float64) (int64, error) {
	setting, err := c.settings.Get(ctx)
	if err != nil {
		return 0, err
	}

	regular, overtime := splitHours(start, end, setting.OfficeStartHour(), setting.OfficeEndHour())

	pay := float64(setting.BaseSalary) * coef.Service * baseFactor *
		(coef.OT*float64(overtime) + coef.Other*float64(regular))
	return int64(math.Floor(pay)), nil
}
