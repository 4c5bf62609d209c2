package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/record"
)

func testRecord() *record.Record {
	return &record.Record{
		Headers: []string{record.ColumnTime, record.ColumnTemperature, record.ColumnHumidity},
		Rows: []record.Row{
			{Timestamp: "2024-01-01 08:00", Values: []float64{25.1, 99.4}},
			{Timestamp: "2024-01-01 08:05", Values: []float64{-3, 99.3}},
		},
	}
}

func testSeries() *curve.Series {
	return &curve.Series{
		Variant: curve.Dual,
		Samples: []curve.Sample{
			{Time: 8, Temperature: 25, Humidity: 99.4},
			{Time: 9, Temperature: 35, Humidity: 99.3},
			{Time: 10, Temperature: 45, Humidity: 99.5},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRecord(), Options{}))

	want := "Time,Temperature (°C),Humidity (%)\n" +
		"2024-01-01 08:00,25.1,99.4\n" +
		"2024-01-01 08:05,-3.0,99.3\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVDecimalComma(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRecord(), Options{DecimalSeparator: ","}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2024-01-01 08:00;25,1;99,4", lines[1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testRecord(), "Run"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Run")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{record.ColumnTime, record.ColumnTemperature, record.ColumnHumidity}, rows[0])
	assert.Equal(t, "2024-01-01 08:05", rows[2][0])
	assert.Equal(t, "99.3", rows[2][2])
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG(testSeries(), 800, 400, "Day <1>")

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, TemperatureColor)
	assert.Contains(t, svg, HumidityColor)
	assert.Contains(t, svg, ">09:00<")
	assert.Contains(t, svg, "Day &lt;1&gt;")
}

func TestSeriesToSVGSingleStream(t *testing.T) {
	s := testSeries()
	s.Variant = curve.Single

	svg := SeriesToSVG(s, 800, 400, "single")
	assert.Contains(t, svg, TemperatureColor)
	assert.NotContains(t, svg, HumidityColor)

	assert.Empty(t, SeriesToSVG(&curve.Series{Samples: s.Samples[:1]}, 800, 400, "x"))
}

func TestASCIIChart(t *testing.T) {
	chart := ASCIIChart(testSeries(), 40, 8, "temperature")
	assert.Contains(t, chart, "temperature")
	assert.Empty(t, ASCIIChart(&curve.Series{}, 40, 8, ""))
}
