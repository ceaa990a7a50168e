package render

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextPresenter writes views as plain text.
type TextPresenter struct {
	w io.Writer
}

// NewTextPresenter creates a presenter writing to w.
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Present writes the current conditions followed by the daily outlook.
func (p *TextPresenter) Present(_ context.Context, v View) error {
	_, err := io.WriteString(p.w, Text(v))
	return err
}

// Text renders v as the multi-line report the presenter writes.
func Text(v View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", v.City, FormatDate(v.Today))
	fmt.Fprintf(&b, "  Temp: %s\n", Temp(v.Current.TemperatureF))
	fmt.Fprintf(&b, "  Wind: %s\n", Wind(v.Current.WindMph))
	fmt.Fprintf(&b, "  Humidity: %s\n", Humidity(v.Current.HumidityPct))
	if icon := IconURL(v.Current.IconCode); icon != "" {
		fmt.Fprintf(&b, "  Icon: %s\n", icon)
	}

	b.WriteString("\n5-Day Forecast:\n")
	if len(v.Daily) == 0 {
		b.WriteString("  (no afternoon readings available)\n")
	}
	for _, d := range v.Daily {
		fmt.Fprintf(&b, "  %-10s  Temp: %-8s  Wind: %-10s  Humidity: %s",
			SummaryDate(d.Date), Temp(d.Sample.TemperatureF), Wind(d.Sample.WindMph), Humidity(d.Sample.HumidityPct))
		if icon := IconURL(d.Sample.IconCode); icon != "" {
			fmt.Fprintf(&b, "  %s", icon)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// WriteHistory lists entries as numbered, re-runnable searches. entries must
// already be newest first.
func WriteHistory(w io.Writer, entries []string) error {
	if len(entries) == 0 {
		_, err := io.WriteString(w, "No searches yet.\n")
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "  [%d] %s\n", i+1, e); err != nil {
			return err
		}
	}
	return nil
}
