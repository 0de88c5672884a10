package menus

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/scrapers/hospitality"
	"uscmenu-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	docs   map[string]menu.DailyMenu
	putErr error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]menu.DailyMenu{}}
}

func (m *memStore) Put(ctx context.Context, date string, doc menu.DailyMenu) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.docs[date] = doc
	return nil
}

func (m *memStore) Get(ctx context.Context, date string) (menu.DailyMenu, bool, error) {
	doc, ok := m.docs[date]
	return doc, ok, nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.docs))
	for key := range m.docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Delete(ctx context.Context, date string) error {
	delete(m.docs, date)
	return nil
}

type fetchFunc func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error)

func (f fetchFunc) FetchDay(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
	return f(ctx, hall, date)
}

var testHalls = []hospitality.Hall{
	{Name: "Everybody's Kitchen", Slug: "evk"},
	{Name: "Parkside", Slug: "parkside"},
}

// fixed reference day so window math is deterministic
var testToday = time.Date(2026, time.March, 10, 9, 30, 0, 0, timezone.Location)

func fixedNow() time.Time { return testToday }

func hallMenu(date time.Time, hallName string) menu.DailyMenu {
	doc := menu.NewDailyMenu(date.Format(time.DateOnly))
	doc.Lunch = append(doc.Lunch, menu.DiningHall{
		Name: hallName,
		Sections: []menu.Section{{
			Name: "Grill",
			Items: []menu.FoodItem{
				{Name: "Veggie Burger", Allergens: []string{"Vegetarian"}},
			},
		}},
	})
	return doc
}

func TestSweepDeletesOutsideWindow(t *testing.T) {
	store := newMemStore()
	seed := []int{-5, -1, 0, 1, 2, 3, 10}
	for _, offset := range seed {
		key := testToday.AddDate(0, 0, offset).Format(time.DateOnly)
		require.NoError(t, store.Put(context.Background(), key, menu.NewDailyMenu(key)))
	}

	service, err := NewService(store, nil, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	deleted, err := service.Sweep(context.Background())
	require.NoError(t, err)

	expected := []string{
		testToday.AddDate(0, 0, -5).Format(time.DateOnly),
		testToday.AddDate(0, 0, -1).Format(time.DateOnly),
		testToday.AddDate(0, 0, 10).Format(time.DateOnly),
	}
	sort.Strings(deleted)
	sort.Strings(expected)
	require.Equal(t, expected, deleted)

	remaining, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 4)
	for _, key := range remaining {
		require.NotContains(t, expected, key)
	}
}

func TestSweepDeletesMalformedKeys(t *testing.T) {
	store := newMemStore()
	store.docs["not-a-date"] = menu.NewDailyMenu("not-a-date")
	store.docs[testToday.Format(time.DateOnly)] = menu.NewDailyMenu(testToday.Format(time.DateOnly))

	service, err := NewService(store, nil, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	deleted, err := service.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"not-a-date"}, deleted)
}

func TestRunWritesWindow(t *testing.T) {
	store := newMemStore()
	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		return hallMenu(date, hall.Name), nil
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Dates, 4)
	require.False(t, report.TotalOutage())

	for i := 0; i <= 3; i++ {
		key := testToday.AddDate(0, 0, i).Format(time.DateOnly)
		doc, ok, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.True(t, ok, "expected document for %s", key)
		require.Len(t, doc.Lunch, 2)
		require.Equal(t, "Everybody's Kitchen", doc.Lunch[0].Name)
		require.Equal(t, "Parkside", doc.Lunch[1].Name)
	}
}

func TestRunIsolatesHallFailures(t *testing.T) {
	store := newMemStore()
	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		if hall.Slug == "evk" {
			return menu.DailyMenu{}, fmt.Errorf("status 503")
		}
		return hallMenu(date, hall.Name), nil
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.TotalOutage())

	for _, outcome := range report.Dates {
		require.True(t, outcome.Wrote)
		require.Error(t, outcome.Halls[0].Err)
		require.NoError(t, outcome.Halls[1].Err)

		doc, ok, err := store.Get(context.Background(), outcome.Date)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, doc.Lunch, 1)
		require.Equal(t, "Parkside", doc.Lunch[0].Name)
	}
}

func TestRunSkipsWriteWhenAllEmpty(t *testing.T) {
	store := newMemStore()
	today := testToday.Format(time.DateOnly)
	preserved := hallMenu(testToday, "Parkside")
	store.docs[today] = preserved

	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		return menu.NewDailyMenu(date.Format(time.DateOnly)), nil
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.TotalOutage())

	for _, outcome := range report.Dates {
		require.True(t, outcome.SkippedWrite)
		require.False(t, outcome.Wrote)
	}

	doc, ok, err := store.Get(context.Background(), today)
	require.NoError(t, err)
	require.True(t, ok, "empty run must not delete existing data")
	require.Empty(t, cmp.Diff(preserved, doc))
}

func TestRunIsIdempotent(t *testing.T) {
	store := newMemStore()
	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		return hallMenu(date, hall.Name), nil
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	_, err = service.Run(context.Background())
	require.NoError(t, err)
	first := map[string]menu.DailyMenu{}
	for key, doc := range store.docs {
		first[key] = doc
	}

	_, err = service.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(first, store.docs))
}

func TestRunReportsTotalOutage(t *testing.T) {
	store := newMemStore()
	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		return menu.DailyMenu{}, fmt.Errorf("connection refused")
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.TotalOutage())
	require.Empty(t, store.docs)
}

func TestRunContainsWriteFailures(t *testing.T) {
	store := newMemStore()
	store.putErr = fmt.Errorf("disk full")
	fetch := fetchFunc(func(ctx context.Context, hall hospitality.Hall, date time.Time) (menu.DailyMenu, error) {
		return hallMenu(date, hall.Name), nil
	})

	service, err := NewService(store, fetch, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	for _, outcome := range report.Dates {
		require.Error(t, outcome.WriteErr)
		require.False(t, outcome.Wrote)
	}
}

func TestNewServiceRejectsDuplicateHalls(t *testing.T) {
	_, err := NewService(newMemStore(), nil, Options{
		Halls: []hospitality.Hall{
			{Name: "Parkside", Slug: "parkside"},
			{Name: "Parkside", Slug: "parkside-2"},
		},
	})
	require.Error(t, err)
}

func TestRunRequiresFetcher(t *testing.T) {
	service, err := NewService(newMemStore(), nil, Options{Halls: testHalls, Now: fixedNow})
	require.NoError(t, err)
	_, err = service.Run(context.Background())
	require.Error(t, err)
}

func TestReportRender(t *testing.T) {
	report := RunReport{
		Started:  testToday,
		Finished: testToday.Add(3 * time.Second),
		Deleted:  []string{"2026-03-01"},
		Dates: []DateOutcome{{
			Date: "2026-03-10",
			Halls: []HallOutcome{
				{Hall: "Parkside"},
				{Hall: "Everybody's Kitchen", Empty: true},
			},
			Wrote: true,
		}},
	}
	out := report.Render()
	require.Contains(t, out, "Parkside")
	require.Contains(t, out, "empty")
	require.Contains(t, out, "written")
	require.Contains(t, out, "2026-03-01")
}
