package export

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tempsynth/internal/curve"
)

// ASCIIChart plots the series for a terminal. Humidity is drawn in a
// second color when present.
func ASCIIChart(series *curve.Series, width, height int, caption string) string {
	if series == nil || series.Len() == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(1),
	}

	h := series.Humidities()
	if h == nil {
		return asciigraph.Plot(series.Temperatures(), append(opts, asciigraph.SeriesColors(asciigraph.Red))...)
	}
	return asciigraph.PlotMany([][]float64{series.Temperatures(), h},
		append(opts, asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue))...)
}
