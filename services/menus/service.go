// Package menus drives the daily scrape: it sweeps stale documents
// out of storage, walks the rolling date window across every
// configured dining hall, merges the per-hall partials into one
// composite document per date and writes the non-empty composites.
// Failures are isolated at (date, hall) granularity; only setup
// problems abort a run.
package menus

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/scrapers/hospitality"
	"uscmenu-backend/lib/timezone"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("uscmenu.services.menus")

const defaultWindowDays = 3

// Store persists one document per calendar date, keyed `YYYY-MM-DD`.
// Put overwrites; Get distinguishes absence from emptiness.
type Store interface {
	Put(ctx context.Context, date string, doc menu.DailyMenu) error
	Get(ctx context.Context, date string) (menu.DailyMenu, bool, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, date string) error
}

// Fetcher produces one hall's partial document for one date.
type Fetcher interface {
	FetchDay(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error)
}

type Options struct {
	Halls []hospitality.Hall
	// number of future days beyond today covered by the window; the
	// window spans WindowDays+1 calendar dates in total
	WindowDays int
	// upper bound on the random pause between hall fetches, keeps the
	// scrape from hammering the site
	JitterMaxMs int
	// when set, a run in which every single hall attempt fails sends
	// an alert email
	Smtp *SmtpConfig
	// overridable for tests and for backfills
	Now func() time.Time
}

type Service struct {
	store   Store
	fetch   Fetcher
	options Options
}

func NewService(store Store, fetch Fetcher, options Options) (Service, error) {
	if options.WindowDays == 0 {
		options.WindowDays = defaultWindowDays
	}
	if options.Now == nil {
		options.Now = timezone.Now
	}

	// the merger concatenates hall lists without deduplicating, so
	// each hall appearing exactly once per run is load-bearing
	seenName := map[string]bool{}
	seenSlug := map[string]bool{}
	for _, hall := range options.Halls {
		if seenName[hall.Name] || seenSlug[hall.Slug] {
			return Service{}, fmt.Errorf("duplicate dining hall in roster: %s (%s)", hall.Name, hall.Slug)
		}
		seenName[hall.Name] = true
		seenSlug[hall.Slug] = true
	}

	return Service{
		store:   store,
		fetch:   fetch,
		options: options,
	}, nil
}

func (s Service) window() []time.Time {
	today := timezone.Midnight(s.options.Now())
	dates := make([]time.Time, 0, s.options.WindowDays+1)
	for i := 0; i <= s.options.WindowDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// Sweep deletes every stored document whose key falls outside the
// current date window, including keys that don't parse as dates.
// Returns the deleted keys.
func (s Service) Sweep(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Sweep")
	defer span.End()

	keys, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("listing stored menus: %w", err)
	}

	keep := map[string]bool{}
	for _, d := range s.window() {
		keep[d.Format(time.DateOnly)] = true
	}

	var deleted []string
	for _, key := range keys {
		if keep[key] {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to delete stale menu", "date", key, "err", err)
			continue
		}
		deleted = append(deleted, key)
	}
	if len(deleted) > 0 {
		slog.InfoContext(ctx, "swept stale menus", "deleted", deleted)
	}
	return deleted, nil
}

// Run performs one full scrape pass. The returned error only reflects
// setup problems; per-hall and per-date failures land in the report.
func (s Service) Run(ctx context.Context) (RunReport, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	if s.fetch == nil {
		return RunReport{}, fmt.Errorf("no fetcher configured")
	}
	if len(s.options.Halls) == 0 {
		return RunReport{}, fmt.Errorf("no dining halls configured")
	}

	report := RunReport{Started: s.options.Now()}

	deleted, err := s.Sweep(ctx)
	if err != nil {
		// degraded but not fatal, the scrape itself may still succeed
		slog.WarnContext(ctx, "retention sweep failed", "err", err)
	}
	report.Deleted = deleted

	for _, date := range s.window() {
		report.Dates = append(report.Dates, s.runDate(ctx, date))
	}

	if report.TotalOutage() {
		s.alertOutage(ctx, report)
	}

	report.Finished = s.options.Now()
	return report, nil
}

func (s Service) runDate(ctx context.Context, date time.Time) DateOutcome {
	key := date.Format(time.DateOnly)
	ctx, span := tracer.Start(ctx, "runDate", trace.WithAttributes(
		attribute.String("date", key),
	))
	defer span.End()

	outcome := DateOutcome{Date: key}
	composite := menu.NewDailyMenu(key)

	for i, hall := range s.options.Halls {
		if i > 0 {
			s.jitter()
		}

		partial, err := s.fetch.FetchDay(ctx, hall, date)
		if err != nil {
			slog.ErrorContext(ctx, "hall scrape failed", "date", key, "hall", hall.Name, "err", err)
			outcome.Halls = append(outcome.Halls, HallOutcome{Hall: hall.Name, Err: err})
			continue
		}
		if partial.IsEmpty() {
			slog.InfoContext(ctx, "no menu data for hall", "date", key, "hall", hall.Name)
			outcome.Halls = append(outcome.Halls, HallOutcome{Hall: hall.Name, Empty: true})
			continue
		}

		merged, err := menu.Merge(composite, partial)
		if err != nil {
			outcome.Halls = append(outcome.Halls, HallOutcome{Hall: hall.Name, Err: err})
			continue
		}
		composite = merged
		outcome.Halls = append(outcome.Halls, HallOutcome{Hall: hall.Name})
	}

	if composite.IsEmpty() {
		// never clobber previously good data with an empty document
		slog.WarnContext(ctx, "no menu data for any hall, skipping write", "date", key)
		outcome.SkippedWrite = true
		return outcome
	}

	if err := s.store.Put(ctx, key, composite); err != nil {
		slog.ErrorContext(ctx, "failed to write menu document", "date", key, "err", err)
		span.RecordError(err)
		outcome.WriteErr = err
		return outcome
	}
	outcome.Wrote = true
	slog.InfoContext(ctx, "wrote menu document", "date", key, "halls", len(outcome.Halls))
	return outcome
}

func (s Service) jitter() {
	if s.options.JitterMaxMs <= 0 {
		return
	}
	ms, err := random.IntRange(0, s.options.JitterMaxMs)
	if err != nil {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
