package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

func TestBuildDualStream(t *testing.T) {
	series := &curve.Series{
		Variant: curve.Dual,
		Samples: []curve.Sample{
			{Time: 8, Temperature: 25.1, Humidity: 99.4},
			{Time: 8 + 5.0/60, Temperature: 25.9, Humidity: 99.3},
			{Time: 23.5, Temperature: 18.0, Humidity: 99.5},
			{Time: 25 + 16.0/60, Temperature: 17.2, Humidity: 99.4},
		},
	}

	rec, err := New(clock.DefaultCalendar(), curve.Dual).Build(series, "2024-12-31")
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnTime, ColumnTemperature, ColumnHumidity}, rec.Headers)
	require.Equal(t, 4, rec.Len())
	assert.Equal(t, "2024-12-31 08:00", rec.Rows[0].Timestamp)
	assert.Equal(t, "2024-12-31 08:05", rec.Rows[1].Timestamp)
	assert.Equal(t, "2024-12-31 23:30", rec.Rows[2].Timestamp)
	assert.Equal(t, "2025-01-01 01:16", rec.Rows[3].Timestamp, "hours past midnight roll into the next day")
	assert.Equal(t, []float64{25.1, 99.4}, rec.Rows[0].Values)
}

func TestBuildSingleStream(t *testing.T) {
	series := &curve.Series{
		Variant: curve.Single,
		Samples: []curve.Sample{{Time: 12, Temperature: 30}, {Time: 13, Temperature: 31}},
	}

	rec, err := New(clock.DefaultCalendar(), curve.Single).Build(series, "2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnTime, ColumnTemperature}, rec.Headers)
	assert.Equal(t, []float64{31}, rec.Rows[1].Values)
}

func TestBuildCustomCalendar(t *testing.T) {
	cal := clock.Calendar{DateLayout: "02/01/2006", TimestampLayout: "02/01/2006 15:04"}
	series := &curve.Series{Variant: curve.Single, Samples: []curve.Sample{{Time: 9.5, Temperature: 21}}}

	rec, err := New(cal, curve.Single).Build(series, "15/03/2024")
	require.NoError(t, err)
	assert.Equal(t, "15/03/2024 09:30", rec.Rows[0].Timestamp)
}

func TestBuildBadDate(t *testing.T) {
	series := &curve.Series{Variant: curve.Dual, Samples: []curve.Sample{{Time: 8, Temperature: 20}}}

	_, err := New(clock.DefaultCalendar(), curve.Dual).Build(series, "31.12.2024")
	require.Error(t, err)
	assert.ErrorIs(t, err, curve.ErrFormat)
}
