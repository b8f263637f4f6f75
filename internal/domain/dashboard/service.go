package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/domain/scheduling"
	"github.com/carepoint/hms/internal/platform/cache"
	"github.com/carepoint/hms/pkg/apperr"
)

// Board lists the day's appointments.
type Board interface {
	Today(ctx context.Context) ([]scheduling.Row, error)
}

type Options struct {
	Capacities Capacities
	// CacheTTL bounds how stale cached stats may be. Zero disables caching.
	CacheTTL time.Duration
}

type Service struct {
	repo   Repository
	board  Board
	cache  cache.Store
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, board Board, store cache.Store, opts Options, logger zerolog.Logger) *Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &Service{repo: repo, board: board, cache: store, opts: opts, logger: logger, now: time.Now}
}

func (s *Service) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Stats computes the dashboard aggregates for today. Results are served from
// the cache when one is configured; cache failures fall through to the
// database.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	today := s.today()
	key := cache.DailyKey("dashboard:stats", today)

	if s.opts.CacheTTL > 0 {
		var cached Stats
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	c, err := s.repo.Counts(ctx, today)
	if err != nil {
		return nil, apperr.Persistence("dashboard counts", err)
	}
	st := s.build(c)

	if s.opts.CacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, st, s.opts.CacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
		}
	}
	return st, nil
}

func (s *Service) build(c *Counts) *Stats {
	caps := s.opts.Capacities
	return &Stats{
		PatientStats: PatientStats{
			Total:                c.TotalPatients,
			TodaysAppointments:   c.TodaysAppointments,
			PendingPrescriptions: c.PendingPrescriptions,
			CriticalLabs:         c.CriticalLabs,
		},
		HealthMetrics: HealthMetrics{
			HeartRate:     roundOr(c.AvgHeartRate, defaultHeartRate),
			BloodPressure: bloodPressure(c.AvgSystolic, c.AvgDiastolic),
			Oxygen:        roundOr(c.AvgOxygen, defaultOxygen),
			BMI:           placeholderBMI,
		},
		ResourceStatus: ResourceStatus{
			ICU:           Occupancy{Occupied: c.InICU, Total: caps.ICU},
			Ventilators:   DeviceUsage{InUse: c.OnVentilator, Total: caps.Ventilators},
			IsolationBeds: Occupancy{Occupied: c.InIsolation, Total: caps.Isolation},
		},
		Telemedicine: Telemedicine{
			Eligible:  c.TelemedicineEligible,
			Scheduled: c.TelemedicineScheduled,
			Completed: c.TelemedicineCompleted,
		},
	}
}

func roundOr(avg *float64, fallback int) int {
	if avg == nil {
		return fallback
	}
	return int(math.Round(*avg))
}

func bloodPressure(sys, dia *float64) string {
	if sys == nil || dia == nil {
		return defaultBloodPressure
	}
	return fmt.Sprintf("%d/%d", int(math.Round(*sys)), int(math.Round(*dia)))
}

// Appointments returns today's board ordered by start time.
func (s *Service) Appointments(ctx context.Context) ([]scheduling.Row, error) {
	return s.board.Today(ctx)
}

func (s *Service) PatientAnalytics(ctx context.Context) (*PatientAnalytics, error) {
	var (
		out PatientAnalytics
		err error
	)
	if out.MonthlyRegistrations, err = s.repo.MonthlyRegistrations(ctx); err != nil {
		return nil, apperr.Persistence("monthly registrations", err)
	}
	if out.AppointmentStatuses, err = s.repo.AppointmentStatuses(ctx); err != nil {
		return nil, apperr.Persistence("appointment statuses", err)
	}
	if out.CommonConditions, err = s.repo.CommonConditions(ctx, conditionsLimit); err != nil {
		return nil, apperr.Persistence("common conditions", err)
	}

	if out.MonthlyRegistrations == nil {
		out.MonthlyRegistrations = []MonthlyCount{}
	}
	if out.AppointmentStatuses == nil {
		out.AppointmentStatuses = []StatusCount{}
	}
	if out.CommonConditions == nil {
		out.CommonConditions = []ConditionCount{}
	}
	return &out, nil
}

// Search matches q against patients (name or code) and appointments
// (patient name or reason). An unknown kind matches nothing.
func (s *Service) Search(ctx context.Context, q, kind string) ([]SearchResult, error) {
	if kind == "" {
		kind = SearchAll
	}
	q = strings.TrimSpace(q)
	results := []SearchResult{}

	if kind == SearchAll || kind == SearchPatients {
		hits, err := s.repo.SearchPatients(ctx, q, searchLimit)
		if err != nil {
			return nil, apperr.Persistence("search patients", err)
		}
		today := s.today()
		for _, h := range hits {
			gender := "Unknown"
			if h.Gender != nil && *h.Gender != "" {
				gender = *h.Gender
			}
			results = append(results, SearchResult{
				Type:    "patient",
				ID:      h.Code,
				Name:    h.Name,
				Details: fmt.Sprintf("Age: %d, Gender: %s", patient.Age(h.DateOfBirth, today), gender),
			})
		}
	}

	if kind == SearchAll || kind == SearchAppointments {
		hits, err := s.repo.SearchAppointments(ctx, q, searchLimit)
		if err != nil {
			return nil, apperr.Persistence("search appointments", err)
		}
		for _, h := range hits {
			reason := scheduling.DefaultReason
			if h.Reason != nil && *h.Reason != "" {
				reason = *h.Reason
			}
			results = append(results, SearchResult{
				Type:    "appointment",
				ID:      scheduling.DisplayID(h.Number),
				Name:    h.PatientName,
				Details: fmt.Sprintf("%s %s - %s", h.Date.Format("2006-01-02"), h.Start, reason),
			})
		}
	}
	return results, nil
}
