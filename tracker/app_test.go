package tracker

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LianHaeming/weightlog/models"
	"github.com/LianHaeming/weightlog/storage"
)

func newTestApp(t *testing.T) (*App, *storage.WeightStore, *storage.MemorySlots) {
	t.Helper()
	slots := storage.NewMemorySlots()
	store := storage.NewWeightStore(slots)
	n := 0
	app := New(store,
		WithClock(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	require.NoError(t, app.Load())
	return app, store, slots
}

func TestLoadPrefillsToday(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Equal(t, "2024-03-15", app.Form().Date)
	assert.Equal(t, "", app.Form().Goal)
	assert.Equal(t, "", app.Status())
}

func TestAddEntryAppendsInCallOrder(t *testing.T) {
	app, store, _ := newTestApp(t)
	dates := []string{"2024-01-10", "2024-01-01", "2024-01-10", "2023-12-31"}
	for i, d := range dates {
		_, err := app.AddEntry(d, fmt.Sprintf("%d.5", 70-i))
		require.NoError(t, err)
	}

	records := store.Records()
	require.Len(t, records, len(dates))
	for i, d := range dates {
		assert.Equal(t, d, records[i].Date)
		assert.Equal(t, float64(70-i)+0.5, records[i].Weight)
		assert.Equal(t, fmt.Sprintf("id-%d", i+1), records[i].ID)
	}
}

func TestAddEntryClearsWeightKeepsDate(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-02-01", "71.2")
	require.NoError(t, err)

	form := app.Form()
	assert.Equal(t, "2024-02-01", form.Date)
	assert.Equal(t, "", form.Weight)
}

func TestAddEntryRejectsInvalidInput(t *testing.T) {
	cases := []struct{ date, weight string }{
		{"", "70"},
		{"2024-01-01", ""},
		{"2024-01-01", "heavy"},
		{"2024-01-01", "Infinity"},
	}
	for _, tc := range cases {
		app, _, slots := newTestApp(t)
		_, err := app.AddEntry("2024-01-01", "70")
		require.NoError(t, err)
		before, _, _ := slots.Get(storage.RecordsKey)

		_, err = app.AddEntry(tc.date, tc.weight)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidEntry))
		assert.Equal(t, AlertInvalidEntry, err.Error())

		after, _, _ := slots.Get(storage.RecordsKey)
		assert.Equal(t, before, after, "%+v must not change stored records", tc)
		assert.Len(t, app.Page().Rows, 1)
	}
}

func TestAddEntryAcceptsNumericPrefix(t *testing.T) {
	app, store, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "70.4kg")
	require.NoError(t, err)
	assert.Equal(t, 70.4, store.Records()[0].Weight)
}

func TestDeleteEntryReindexes(t *testing.T) {
	app, store, _ := newTestApp(t)
	for _, w := range []string{"70", "71", "72", "73"} {
		_, err := app.AddEntry("2024-01-01", w)
		require.NoError(t, err)
	}
	original := store.Records()

	ok, err := app.DeleteEntry(1)
	require.NoError(t, err)
	require.True(t, ok)
	want, _ := models.RemoveAt(original, 1)
	assert.Equal(t, want, store.Records())

	// index 1 now refers to what was index 2
	ok, err = app.DeleteEntry(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{70, 73}, weights(store.Records()))

	rows := app.Page().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[1].Index)
}

func TestDeleteEntryOutOfRangeIsNoop(t *testing.T) {
	app, store, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "70")
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 42} {
		ok, err := app.DeleteEntry(idx)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Len(t, store.Records(), 1)
}

func TestDeleteRecordByID(t *testing.T) {
	app, store, _ := newTestApp(t)
	for _, w := range []string{"70", "71", "72"} {
		_, err := app.AddEntry("2024-01-01", w)
		require.NoError(t, err)
	}

	ok, err := app.DeleteRecord("id-2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float64{70, 72}, weights(store.Records()))

	// a stale id is a no-op
	ok, err = app.DeleteRecord("id-2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, store.Records(), 2)
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	slots := storage.NewMemorySlots()
	require.NoError(t, slots.Set(storage.RecordsKey, `[{"date":"2024-01-01","weight":70},{"id":"keep","date":"2024-01-02","weight":69}]`))
	store := storage.NewWeightStore(slots)

	app := New(store, WithIDs(func() string { return "fresh" }))
	require.NoError(t, app.Load())

	records := store.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "fresh", records[0].ID)
	assert.Equal(t, "keep", records[1].ID)
	assert.Equal(t, 70.0, records[0].Weight)
}

func TestSaveGoal(t *testing.T) {
	app, store, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "68.5")
	require.NoError(t, err)

	saved, err := app.SaveGoal("70")
	require.NoError(t, err)
	assert.True(t, saved)
	goal, ok := store.Goal()
	require.True(t, ok)
	assert.Equal(t, 70.0, goal)
	assert.Equal(t, "最新の体重は目標より -1.5kg です", app.Status())
}

func TestSaveGoalIgnoresNonNumeric(t *testing.T) {
	app, store, slots := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "68.5")
	require.NoError(t, err)
	_, err = app.SaveGoal("70")
	require.NoError(t, err)
	status := app.Status()

	saved, err := app.SaveGoal("seventy")
	require.NoError(t, err)
	assert.False(t, saved)

	raw, _, _ := slots.Get(storage.GoalKey)
	assert.Equal(t, "70", raw)
	goal, _ := store.Goal()
	assert.Equal(t, 70.0, goal)
	assert.Equal(t, status, app.Status(), "status is not recomputed")
	assert.Equal(t, "seventy", app.Form().Goal)
}

func TestLoadGoalRestoresField(t *testing.T) {
	slots := storage.NewMemorySlots()
	store := storage.NewWeightStore(slots)
	require.NoError(t, store.SaveRecords([]models.Record{{ID: "x", Date: "2024-01-01", Weight: 72}}))
	require.NoError(t, store.SaveGoal(70))

	app := New(store)
	require.NoError(t, app.Load())
	assert.Equal(t, "70", app.Form().Goal)
	assert.Equal(t, "最新の体重は目標より +2.0kg です", app.Status())
}

func TestStatusUsesGoalFieldNotStoredGoal(t *testing.T) {
	app, store, _ := newTestApp(t)
	_, err := app.SaveGoal("70")
	require.NoError(t, err)
	app.SetGoalInput("60")

	_, err = app.AddEntry("2024-01-01", "65")
	require.NoError(t, err)
	assert.Equal(t, "最新の体重は目標より +5.0kg です", app.Status())

	goal, _ := store.Goal()
	assert.Equal(t, 70.0, goal)
}

func TestLatestIsLastInsertedNotLatestDate(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.SaveGoal("70")
	require.NoError(t, err)

	_, err = app.AddEntry("2024-01-10", "72")
	require.NoError(t, err)
	_, err = app.AddEntry("2024-01-01", "69")
	require.NoError(t, err)

	assert.Equal(t, "最新の体重は目標より -1.0kg です", app.Status())
}

func TestStatusClearedWhenRecordsDeleted(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.SaveGoal("70")
	require.NoError(t, err)
	_, err = app.AddEntry("2024-01-01", "71")
	require.NoError(t, err)
	require.NotEmpty(t, app.Status())

	_, err = app.DeleteEntry(0)
	require.NoError(t, err)
	assert.Equal(t, "", app.Status())
}

func TestPageChartMatchesTable(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, e := range [][2]string{{"2024-01-10", "70"}, {"2024-01-01", "69.25"}, {"2024-01-01", "68"}} {
		_, err := app.AddEntry(e[0], e[1])
		require.NoError(t, err)
	}

	page := app.Page()
	require.Len(t, page.Chart.Values, len(page.Rows))
	for i, row := range page.Rows {
		assert.Equal(t, row.Date, page.Chart.Labels[i])
		assert.Equal(t, row.Weight, models.FormatFixed1(page.Chart.Values[i]))
	}
}

func TestPageReplacesChart(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "70")
	require.NoError(t, err)

	owned := app.view.Chart()
	app.Page()
	assert.True(t, owned.Destroyed())
	assert.False(t, app.view.Chart().Destroyed())
}

func TestPageChartOutlivesLaterRenders(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, w := range []string{"70", "69", "68"} {
		_, err := app.AddEntry("2024-01-01", w)
		require.NoError(t, err)
	}

	first := app.Page()
	app.Page()
	_, err := app.AddEntry("2024-01-02", "67")
	require.NoError(t, err)

	assert.False(t, first.Chart.Destroyed())
	assert.Equal(t, []float64{70, 69, 68}, first.Chart.Values)
	assert.Len(t, first.Rows, 3)
}

func TestPageConcurrentReaders(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "70")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				_, err := app.AddEntry("2024-01-02", "69")
				assert.NoError(t, err)
			}
			page := app.Page()
			assert.Len(t, page.Chart.Values, len(page.Rows))
			assert.Len(t, page.Chart.Labels, len(page.Rows))
			assert.False(t, page.Chart.Destroyed())
		}(i)
	}
	wg.Wait()
}

func TestReloadResetsDateToToday(t *testing.T) {
	day := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	store := storage.NewWeightStore(storage.NewMemorySlots())
	app := New(store, WithClock(func() time.Time { return day }))
	require.NoError(t, app.Load())
	assert.Equal(t, "2024-03-15", app.Reload().Form.Date)

	day = day.Add(2 * time.Minute)
	assert.Equal(t, "2024-03-16", app.Reload().Form.Date)
}

func TestReloadKeepsFormOnceAfterAdd(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "70")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", app.Reload().Form.Date)
	assert.Equal(t, "2024-03-15", app.Reload().Form.Date)
}

func TestReloadRestoresStoredGoal(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "72")
	require.NoError(t, err)
	_, err = app.SaveGoal("70")
	require.NoError(t, err)

	saved, err := app.SaveGoal("abc")
	require.NoError(t, err)
	require.False(t, saved)
	assert.Equal(t, "abc", app.Reload().Form.Goal)

	page := app.Reload()
	assert.Equal(t, "70", page.Form.Goal)
	assert.Equal(t, "最新の体重は目標より +2.0kg です", page.Status)
}

func TestReloadWithoutGoalClearsField(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.AddEntry("2024-01-01", "72")
	require.NoError(t, err)
	app.SetGoalInput("60")
	app.UpdateGoalStatus()
	app.Reload()

	page := app.Reload()
	assert.Equal(t, "", page.Form.Goal)
	assert.Equal(t, "", page.Status)
}

func TestPageReadsStoreEveryTime(t *testing.T) {
	app, store, _ := newTestApp(t)
	require.NoError(t, store.SaveRecords([]models.Record{{ID: "ext", Date: "2024-05-01", Weight: 80}}))

	rows := app.Page().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "ext", rows[0].ID)
}

func weights(records []models.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Weight
	}
	return out
}
