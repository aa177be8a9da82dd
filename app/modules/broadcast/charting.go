package broadcast

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

const maxChartBars = 12

// GenerateStandingsChart renders the standings as a PNG bar chart for the
// broadcast overlay. Only the top competitors fit on screen.
func GenerateStandingsChart(snapshot *tournamenttypes.Snapshot) ([]byte, error) {
	if len(snapshot.Standings) == 0 {
		return renderNoDataPlaceholder()
	}

	standings := snapshot.Standings
	if len(standings) > maxChartBars {
		standings = standings[:maxChartBars]
	}

	bars := make([]chart.Value, 0, len(standings))
	for _, st := range standings {
		bars = append(bars, chart.Value{
			Label: st.Name,
			Value: float64(st.TotalPoints),
		})
	}

	graph := chart.BarChart{
		Title:    "Standings",
		Width:    960,
		Height:   480,
		BarWidth: 48,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex("1b1b1f"),
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex("1b1b1f"),
		},
		XAxis: chart.Style{
			FontColor: drawing.ColorWhite,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: drawing.ColorWhite,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const msg = "No standings yet"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex("1b1b1f"),
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex("1b1b1f"),
		},
		// Render requires at least one series; keep it invisible.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorWhite)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
