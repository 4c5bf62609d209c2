package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

const (
	TemperatureColor = "#e0332f"
	HumidityColor    = "#2f62e0"

	svgMargin = 50.0
)

// SeriesToSVG draws the series as line chart with hourly ticks on the time
// axis. Both streams share one value axis.
func SeriesToSVG(series *curve.Series, width, height int, title string) string {
	if series == nil || series.Len() < 2 {
		return ""
	}

	times := series.Times()
	streams := [][]float64{series.Temperatures()}
	colors := []string{TemperatureColor}
	labels := []string{"Temperature (°C)"}
	if h := series.Humidities(); h != nil {
		streams = append(streams, h)
		colors = append(colors, HumidityColor)
		labels = append(labels, "Humidity (%)")
	}

	minX, maxX := bounds(times)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range streams {
		lo, hi := bounds(s)
		minY = math.Min(minY, lo)
		maxY = math.Max(maxY, hi)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	plotW := float64(width) - 2*svgMargin
	plotH := float64(height) - 2*svgMargin
	px := func(x float64) float64 { return svgMargin + (x-minX)/rangeX*plotW }
	py := func(y float64) float64 { return svgMargin + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%.0f" y="24" text-anchor="middle" font-size="15">%s</text>
`, width, height, width, height, float64(width)/2, html.EscapeString(title)))

	// axes
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#333333" d="M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f"/>
`, svgMargin, svgMargin, svgMargin, svgMargin+plotH, svgMargin+plotW, svgMargin+plotH))

	for h := math.Ceil(minX); h <= maxX; h++ {
		x := px(h)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333"/>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, x, svgMargin+plotH, x, svgMargin+plotH+5, x, svgMargin+plotH+18, clock.FormatClockTime(curve.TimeValue(h))))
	}
	sb.WriteString(fmt.Sprintf(`<text x="12" y="%.1f">%.1f</text>
<text x="12" y="%.1f">%.1f</text>
`, py(maxY)+4, maxY, py(minY)+4, minY))

	for i, s := range streams {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[i]))
		for j, v := range s {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(times[j]), py(v)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(times[j]), py(v)))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, svgMargin+plotW-130, svgMargin+14*float64(i+1), colors[i], labels[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(v []float64) (float64, float64) {
	lo, hi := v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
