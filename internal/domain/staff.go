package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClockTime is an offset from midnight, used for operating hours and
// availability windows where only the time-of-day matters.
type ClockTime time.Duration

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (c ClockTime) String() string {
	d := time.Duration(c)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// Skill binds a staff member's competency in one service type.
type Skill struct {
	ServiceType        ServiceType
	Level              SkillLevel
	CertificationDate  *time.Time
	YearsExperience    int
}

func NewSkill(serviceType ServiceType, level SkillLevel, certDate *time.Time, years int) (Skill, error) {
	if !serviceType.Valid() {
		return Skill{}, fmt.Errorf("domain: invalid service type %q", serviceType)
	}
	if !level.Valid() {
		return Skill{}, fmt.Errorf("domain: invalid skill level %d", level)
	}
	if years < 0 {
		return Skill{}, fmt.Errorf("domain: years_experience must be >= 0, got %d", years)
	}
	return Skill{ServiceType: serviceType, Level: level, CertificationDate: certDate, YearsExperience: years}, nil
}

// Availability is a single recurring window a staff member can work.
type Availability struct {
	DayOfWeek   int // 0=Monday .. 6=Sunday
	StartTime   ClockTime
	EndTime     ClockTime
	IsPreferred bool
}

func NewAvailability(dayOfWeek int, start, end ClockTime, preferred bool) (Availability, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return Availability{}, fmt.Errorf("domain: day_of_week must be 0..6, got %d", dayOfWeek)
	}
	if start >= end {
		return Availability{}, fmt.Errorf("domain: availability start_time must be before end_time")
	}
	return Availability{DayOfWeek: dayOfWeek, StartTime: start, EndTime: end, IsPreferred: preferred}, nil
}

// overlaps reports whether two same-day windows share any instant.
func (a Availability) overlaps(b Availability) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

// Staff is an immutable snapshot of one worker for the duration of a solve.
type Staff struct {
	ID                   string
	Name                 string
	Skills               map[ServiceType]Skill
	Availability         []Availability
	HourlyRate           decimal.Decimal
	MaxHoursPerDay        int
	MaxHoursPerWeek       int
	MinBreakMinutes       int
	ConsecutiveWorkLimit  int // hours
}

// NewStaff validates and constructs a Staff snapshot. Duplicate skills per
// ServiceType and overlapping same-day availability windows are rejected —
// the source leaves these as undefined behavior; this target rejects them.
func NewStaff(
	id, name string,
	skills []Skill,
	availability []Availability,
	hourlyRate decimal.Decimal,
	maxHoursPerDay, maxHoursPerWeek, minBreakMinutes, consecutiveWorkLimit int,
) (*Staff, error) {
	if id == "" {
		return nil, fmt.Errorf("domain: staff id must not be empty")
	}
	if hourlyRate.Sign() <= 0 {
		return nil, fmt.Errorf("domain: staff %s hourly_rate must be > 0", id)
	}

	skillMap := make(map[ServiceType]Skill, len(skills))
	for _, sk := range skills {
		if _, dup := skillMap[sk.ServiceType]; dup {
			return nil, fmt.Errorf("domain: staff %s has duplicate skill for service type %q", id, sk.ServiceType)
		}
		skillMap[sk.ServiceType] = sk
	}

	byDay := make(map[int][]Availability)
	for _, av := range availability {
		for _, existing := range byDay[av.DayOfWeek] {
			if av.overlaps(existing) {
				return nil, fmt.Errorf("domain: staff %s has overlapping availability on day %d", id, av.DayOfWeek)
			}
		}
		byDay[av.DayOfWeek] = append(byDay[av.DayOfWeek], av)
	}

	return &Staff{
		ID:                   id,
		Name:                 name,
		Skills:               skillMap,
		Availability:         availability,
		HourlyRate:           hourlyRate,
		MaxHoursPerDay:       maxHoursPerDay,
		MaxHoursPerWeek:      maxHoursPerWeek,
		MinBreakMinutes:      minBreakMinutes,
		ConsecutiveWorkLimit: consecutiveWorkLimit,
	}, nil
}

// CanPerform reports whether the staff member's skill for svc meets requiredLevel.
func (s *Staff) CanPerform(svc ServiceType, requiredLevel SkillLevel) bool {
	skill, ok := s.Skills[svc]
	if !ok {
		return false
	}
	return skill.Level >= requiredLevel
}

// AvailabilityOn returns the availability windows covering the given weekday.
func (s *Staff) AvailabilityOn(dayOfWeek int) []Availability {
	var out []Availability
	for _, av := range s.Availability {
		if av.DayOfWeek == dayOfWeek {
			out = append(out, av)
		}
	}
	return out
}
