package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayoub302/farm-sub001/models"
)

// Fixed colors for non-activity calendar items.
const (
	eventColor   = "#8b5cf6"
	harvestColor = "#10b981"
)

const defaultStartTime = "09:00"

// Store provides the three month-window fetches the aggregation needs.
type Store interface {
	ActivitiesBetween(ctx context.Context, from, to time.Time) ([]models.Activity, error)
	EventsBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error)
	HarvestsBetween(ctx context.Context, from, to time.Time) ([]models.Harvest, error)
}

// Item is one calendar entry. Activity items embed a capacity report;
// event and harvest items leave it nil.
type Item struct {
	ID          uint             `json:"id"`
	Source      string           `json:"source"`
	Title       models.Bilingual `json:"title"`
	Description models.Bilingual `json:"description"`
	Date        string           `json:"date"`
	StartTime   string           `json:"startTime,omitempty"`
	EndTime     string           `json:"endTime,omitempty"`
	Type        string           `json:"type"`
	Color       string           `json:"color"`
	Location    string           `json:"location,omitempty"`
	ImageURL    string           `json:"imageURL,omitempty"`
	Icon        string           `json:"icon,omitempty"`
	Featured    bool             `json:"featured,omitempty"`
	MaxCapacity int              `json:"maxCapacity,omitempty"`

	*CapacityReport
}

// Summary totals the aggregated month.
type Summary struct {
	TotalActivities int            `json:"totalActivities"`
	TotalEvents     int            `json:"totalEvents"`
	TotalHarvests   int            `json:"totalHarvests"`
	ByCategory      map[string]int `json:"byCategory"`
}

// Result is the date-indexed calendar for one month.
type Result struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Days    map[string][]Item `json:"activitiesByDate"`
	Summary Summary           `json:"summary"`
}

// Aggregator assembles the monthly calendar from activities, public events
// and scheduled harvests.
type Aggregator struct {
	store Store
	loc   *time.Location
	log   *zap.Logger
	now   func() time.Time
}

// New builds an aggregator reporting dates in loc, the farm's local
// convention.
func New(store Store, loc *time.Location, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, loc: loc, log: log, now: time.Now}
}

// Aggregate builds the calendar for the given month and year. A month
// outside 1-12 or a zero year defaults to the current one. Activity and
// event fetch failures abort the aggregation; a harvest fetch failure
// degrades to an empty harvest set.
func (a *Aggregator) Aggregate(ctx context.Context, month, year int) (*Result, error) {
	now := a.now().In(a.loc)
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, a.loc)
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)

	var (
		activities []models.Activity
		events     []models.CalendarEvent
		harvests   []models.Harvest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = a.store.ActivitiesBetween(gctx, first, last)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = a.store.EventsBetween(gctx, first, last)
		return err
	})
	g.Go(func() error {
		// Harvests are supplementary; a failed fetch must not sink the
		// whole calendar.
		hs, err := a.store.HarvestsBetween(gctx, first, last)
		if err != nil {
			a.log.Warn("harvest fetch failed, continuing without harvests", zap.Error(err))
			return nil
		}
		harvests = hs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Month: month,
		Year:  year,
		Days:  make(map[string][]Item),
		Summary: Summary{
			ByCategory: map[string]int{
				string(models.CategoryHarvest):     0,
				string(models.CategoryWorkshop):    0,
				string(models.CategoryVisit):       0,
				string(models.CategoryTasting):     0,
				string(models.CategoryEducational): 0,
				string(models.CategoryFamily):      0,
			},
		},
	}

	for i := range activities {
		act := &activities[i]
		report := Capacity(act.MaxCapacity, act.Bookings)
		res.add(a.dayKey(act.Date), Item{
			ID:             act.ID,
			Source:         "activity",
			Title:          act.Title(),
			Description:    act.Description(),
			Date:           a.dayKey(act.Date),
			StartTime:      a.timeOfDay(act.StartTime, &act.Date),
			EndTime:        a.timeOfDay(act.EndTime, act.EndDate),
			Type:           act.Category.Tag(),
			Color:          act.Category.Color(),
			Location:       act.Location,
			ImageURL:       act.ImageURL,
			Featured:       act.Featured,
			MaxCapacity:    act.MaxCapacity,
			CapacityReport: &report,
		})
		res.Summary.TotalActivities++
		if _, tracked := res.Summary.ByCategory[string(act.Category)]; tracked {
			res.Summary.ByCategory[string(act.Category)]++
		}
	}

	for i := range events {
		ev := &events[i]
		kind := ev.Type
		if kind == "" {
			kind = "evento"
		}
		res.add(a.dayKey(ev.StartDate), Item{
			ID:          ev.ID,
			Source:      "event",
			Title:       ev.Title(),
			Description: ev.Description(),
			Date:        a.dayKey(ev.StartDate),
			StartTime:   ev.StartDate.In(a.loc).Format("15:04"),
			Type:        kind,
			Color:       eventColor,
		})
		res.Summary.TotalEvents++
	}

	for i := range harvests {
		h := &harvests[i]
		if h.NextHarvest == nil {
			continue
		}
		res.add(a.dayKey(*h.NextHarvest), Item{
			ID:     h.ID,
			Source: "harvest",
			Title: models.Bilingual{
				Ar: "حصاد: " + h.Product().Resolve("ar"),
				Fr: "Récolte: " + h.Product().Resolve("fr"),
			},
			Description: h.Description(),
			Date:        a.dayKey(*h.NextHarvest),
			Type:        "harvest",
			Color:       harvestColor,
			Icon:        h.Icon,
		})
		res.Summary.TotalHarvests++
	}

	return res, nil
}

func (r *Result) add(day string, item Item) {
	r.Days[day] = append(r.Days[day], item)
}

// dayKey renders an instant as its farm-local calendar day. Items spanning
// several days appear under their start date only.
func (a *Aggregator) dayKey(t time.Time) string {
	return t.In(a.loc).Format("2006-01-02")
}

// timeOfDay prefers the explicit override, then the clock of the instant,
// then the farm's default opening time.
func (a *Aggregator) timeOfDay(override string, instant *time.Time) string {
	if override != "" {
		return override
	}
	if instant != nil && !instant.IsZero() {
		return instant.In(a.loc).Format("15:04")
	}
	return defaultStartTime
}
