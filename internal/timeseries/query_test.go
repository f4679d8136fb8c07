package timeseries

import (
	"testing"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func TestLogsForPond_AscendingAndStable(t *testing.T) {
	logs := []domain.ParameterLog{
		testutil.NewTestLog("a", testutil.WithLogTime(at(3)), testutil.WithPH(10.3)),
		testutil.NewTestLog("b", testutil.WithLogTime(at(0))),
		testutil.NewTestLog("a", testutil.WithLogTime(at(1)), testutil.WithPH(9.8)),
		testutil.NewTestLog("a", testutil.WithLogTime(at(1)), testutil.WithPH(9.9)),
		testutil.NewTestLog("a", testutil.WithLogTime(at(2)), testutil.WithPH(10.0)),
	}

	asc := LogsForPond(logs, "a")
	require.Len(t, asc, 4)
	for i := 1; i < len(asc); i++ {
		assert.False(t, asc[i].Timestamp.Before(asc[i-1].Timestamp), "non-decreasing at %d", i)
	}
	assert.Equal(t, 9.8, asc[0].PH, "equal timestamps keep stored order")
	assert.Equal(t, 9.9, asc[1].PH)

	desc := RecentLogs(logs, "a")
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}

	assert.Empty(t, LogsForPond(logs, "missing"))
}

func TestRecentHistory_Window(t *testing.T) {
	var logs []domain.ParameterLog
	for i := 0; i < 8; i++ {
		logs = append(logs, testutil.NewTestLog("p", testutil.WithLogTime(at(i))))
	}
	hist := RecentHistory(logs, "p", HistoryWindow)
	require.Len(t, hist, 5)
	assert.Equal(t, at(7), hist[0].Timestamp)
	assert.Equal(t, at(3), hist[4].Timestamp)

	assert.Len(t, RecentHistory(logs[:2], "p", HistoryWindow), 2)
}

func TestHarvestsDescending_TiesKeepInsertionOrder(t *testing.T) {
	harvests := []domain.Harvest{
		testutil.NewTestHarvest("p", 100, testutil.WithHarvestTime(at(1))),
		testutil.NewTestHarvest("p", 200, testutil.WithHarvestTime(at(5))),
		testutil.NewTestHarvest("q", 300, testutil.WithHarvestTime(at(1))),
	}
	got := HarvestsDescending(harvests)
	require.Len(t, got, 3)
	assert.Equal(t, 200.0, got[0].WetWeight)
	assert.Equal(t, 100.0, got[1].WetWeight)
	assert.Equal(t, 300.0, got[2].WetWeight)
	assert.Equal(t, 100.0, harvests[0].WetWeight, "input is not reordered")

	mine := HarvestsForPond(harvests, "q")
	require.Len(t, mine, 1)
	assert.Equal(t, 300.0, mine[0].WetWeight)
}

func TestAggregates(t *testing.T) {
	ponds := []domain.Pond{
		testutil.NewTestPond("A", testutil.WithVolume(1000)),
		testutil.NewTestPond("B", testutil.WithVolume(250), testutil.WithStatus(domain.PondMaintenance)),
		testutil.NewTestPond("C", testutil.WithVolume(20), testutil.WithStatus(domain.PondActive)),
	}
	assert.Equal(t, 1270.0, TotalVolume(ponds))
	assert.Equal(t, 2, ActiveCount(ponds))
	assert.Zero(t, TotalVolume(nil))

	harvests := []domain.Harvest{
		testutil.NewTestHarvest("A", 500, testutil.WithDryWeight(60)),
		testutil.NewTestHarvest("A", 1500),
	}
	assert.Equal(t, 2000.0, TotalWetWeight(harvests))
	dry, n := TotalDryWeight(harvests)
	assert.Equal(t, 60.0, dry)
	assert.Equal(t, 1, n)
}

func TestLatest(t *testing.T) {
	t.Run("no logs means every parameter is absent", func(t *testing.T) {
		r := Latest(nil, "p")
		assert.False(t, r.PH.Present())
		assert.False(t, r.Temperature.Present())
		assert.False(t, r.OpticalDensity.Present())
		assert.False(t, r.Salinity.Present())
		assert.False(t, r.PHOutOfRange())
	})

	t.Run("picks the most recent", func(t *testing.T) {
		logs := []domain.ParameterLog{
			testutil.NewTestLog("p", testutil.WithLogTime(at(2)), testutil.WithPH(11), testutil.WithSalinity(0)),
			testutil.NewTestLog("p", testutil.WithLogTime(at(1)), testutil.WithPH(10)),
		}
		r := Latest(logs, "p")
		ph, ok := r.PH.Get()
		require.True(t, ok)
		assert.Equal(t, 11.0, ph)
		sal, ok := r.Salinity.Get()
		assert.True(t, ok, "salinity recorded as zero is present")
		assert.Zero(t, sal)
		assert.True(t, r.PHOutOfRange())
	})
}

func TestPHOutOfRange(t *testing.T) {
	tests := []struct {
		ph   float64
		want bool
	}{
		{8.9, true},
		{9.0, false},
		{10.0, false},
		{10.5, false},
		{10.6, true},
	}
	for _, tt := range tests {
		r := Reading{PH: domain.Some(tt.ph)}
		assert.Equal(t, tt.want, r.PHOutOfRange(), "ph %v", tt.ph)
	}
}
