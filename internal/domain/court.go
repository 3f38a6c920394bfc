package domain

import "time"

// SportType represents the sport a court is built for
type SportType string

const (
	SportCricket    SportType = "CRICKET"
	SportFootball   SportType = "FOOTBALL"
	SportBadminton  SportType = "BADMINTON"
	SportTennis     SportType = "TENNIS"
	SportPickleball SportType = "PICKLEBALL"
)

// ValidSportTypes все поддерживаемые виды спорта
var ValidSportTypes = []SportType{
	SportCricket,
	SportFootball,
	SportBadminton,
	SportTennis,
	SportPickleball,
}

// IsValid returns true if the sport type is one of the supported values
func (s SportType) IsValid() bool {
	for _, v := range ValidSportTypes {
		if s == v {
			return true
		}
	}
	return false
}

// CourtStatus represents the operational status of a court
type CourtStatus string

const (
	CourtStatusActive   CourtStatus = "ACTIVE"
	CourtStatusInactive CourtStatus = "INACTIVE"
)

// Court represents a bookable court or turf
// The (Name, SportType) pair is unique across the facility
type Court struct {
	ID          int64
	Name        string
	SportType   SportType
	WeekdayRate float64 // hourly rate on weekdays
	WeekendRate float64 // hourly rate on weekend days
	Status      CourtStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the court accepts new bookings
func (c *Court) IsActive() bool {
	return c.Status == CourtStatusActive
}

// HourlyRate returns the rate applicable on the given date
func (c *Court) HourlyRate(date time.Time, weekendDays []time.Weekday) float64 {
	if IsWeekend(date, weekendDays) {
		return c.WeekendRate
	}
	return c.WeekdayRate
}
