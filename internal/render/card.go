package render

import (
	"context"
	"fmt"
	"io"

	"github.com/fogleman/gg"
)

const (
	cardWidth  = 800
	cardHeight = 480
)

// WriteCard draws v as an 800x480 PNG and writes it to w.
func WriteCard(w io.Writer, v View) error {
	dc := drawCard(v)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return nil
}

// CardPresenter saves each view as a PNG card at a fixed path, replacing the
// previous card.
type CardPresenter struct {
	path string
}

// NewCardPresenter creates a presenter writing to path.
func NewCardPresenter(path string) *CardPresenter {
	return &CardPresenter{path: path}
}

// Present draws v and saves it, overwriting any earlier card.
func (p *CardPresenter) Present(_ context.Context, v View) error {
	if err := drawCard(v).SavePNG(p.path); err != nil {
		return fmt.Errorf("save card %s: %w", p.path, err)
	}
	return nil
}

func drawCard(v View) *gg.Context {
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawHeading(dc, v)
	drawCurrent(dc, v)
	drawOutlook(dc, v)

	return dc
}

func drawHeading(dc *gg.Context, v View) {
	dc.SetHexColor("#1d3557")
	dc.DrawRectangle(0, 0, cardWidth, 60)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(v.City, 20, 30, 0, 0.5)
	dc.DrawStringAnchored(FormatDate(v.Today), cardWidth-20, 30, 1, 0.5)
}

func drawCurrent(dc *gg.Context, v View) {
	dc.SetRGB(0, 0, 0)
	lines := []string{
		"Temp: " + Temp(v.Current.TemperatureF),
		"Wind: " + Wind(v.Current.WindMph),
		"Humidity: " + Humidity(v.Current.HumidityPct),
	}
	if v.Current.Description != "" {
		lines = append(lines, v.Current.Description)
	} else if label := IconLabel(v.Current.IconCode); label != "" {
		lines = append(lines, label)
	}
	for i, line := range lines {
		dc.DrawString(line, 30, 100+float64(i)*24)
	}
}

func drawOutlook(dc *gg.Context, v View) {
	const (
		top    = 230.0
		height = 220.0
		gap    = 12.0
		margin = 20.0
	)
	cardW := (cardWidth - 2*margin - 4*gap) / 5

	dc.SetRGB(0, 0, 0)
	dc.DrawString("5-Day Forecast:", margin, top-14)

	for i, d := range v.Daily {
		x := margin + float64(i)*(cardW+gap)

		dc.SetHexColor("#457b9d")
		dc.DrawRoundedRectangle(x, top, cardW, height, 8)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		cx := x + cardW/2
		dc.DrawStringAnchored(SummaryDate(d.Date), cx, top+24, 0.5, 0.5)
		dc.DrawStringAnchored(IconLabel(d.Sample.IconCode), cx, top+60, 0.5, 0.5)
		dc.DrawStringAnchored("Temp: "+Temp(d.Sample.TemperatureF), cx, top+110, 0.5, 0.5)
		dc.DrawStringAnchored("Wind: "+Wind(d.Sample.WindMph), cx, top+140, 0.5, 0.5)
		dc.DrawStringAnchored("Humidity: "+Humidity(d.Sample.HumidityPct), cx, top+170, 0.5, 0.5)
	}
}
