// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter renders place completions for the terminal.
package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"

	"github.com/wneessen/placeresolver/internal/place"
)

const (
	maxColumnWidth = 40
	columnGap      = "  "
	ellipsis       = "…"
)

// humanizers holds the number formatting rules of the supported locales.
var humanizers = humanize.MustNew(humanize.WithLocale(de.New()))

// Presenter writes results either as aligned table, as JSON or through a user supplied template.
type Presenter struct {
	out       io.Writer
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	format    *template.Template
	json      bool
}

// Option configures a Presenter.
type Option func(*Presenter) error

// WithJSON makes the Presenter emit indented JSON instead of tables.
func WithJSON() Option {
	return func(p *Presenter) error {
		p.json = true
		return nil
	}
}

// WithFormat renders every result through the given text/template.
func WithFormat(format string) Option {
	return func(p *Presenter) error {
		if format == "" {
			return nil
		}
		tpl, err := template.New("format").Funcs(p.templateFuncMap()).Parse(format)
		if err != nil {
			return fmt.Errorf("failed to parse result template: %w", err)
		}
		p.format = tpl
		return nil
	}
}

func New(out io.Writer, loc *spreak.Localizer, lang language.Tag, opts ...Option) (*Presenter, error) {
	pres := &Presenter{
		out:       out,
		localizer: loc,
		humanizer: humanizers.CreateHumanizer(lang),
	}
	for _, opt := range opts {
		if err := opt(pres); err != nil {
			return nil, err
		}
	}
	return pres, nil
}

// Results writes the given place results.
func (p *Presenter) Results(results []place.Result) error {
	if p.json {
		return p.writeJSON(results)
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(p.out, p.localizer.Get("no places found"))
		return err
	}
	if p.format != nil {
		for _, result := range results {
			if err := p.format.Execute(p.out, result); err != nil {
				return fmt.Errorf("failed to render result: %w", err)
			}
			if _, err := fmt.Fprintln(p.out); err != nil {
				return err
			}
		}
		return nil
	}

	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, []string{
		p.localizer.Get(columnName),
		p.localizer.Get(columnCategory),
		p.localizer.Get(columnCoordinates),
		p.localizer.Get(columnPrice),
		p.localizer.Get(columnPlace),
	})
	for _, result := range results {
		rows = append(rows, []string{
			result.Name,
			p.category(result.Category),
			coordinates(result),
			p.price(result),
			result.Place,
		})
	}
	return p.writeTable(rows)
}

// BoundingBox writes the corners of a geocoded area.
func (p *Presenter) BoundingBox(box place.BoundingBox) error {
	if p.json {
		return p.writeJSON(box)
	}
	return p.writeTable([][]string{
		{p.localizer.Get(columnNortheast), box.Northeast.String()},
		{p.localizer.Get(columnSouthwest), box.Southwest.String()},
	})
}

// Route writes a route summary, followed by the route's coordinates.
func (p *Presenter) Route(route place.RouteResponse) error {
	if p.json {
		return p.writeJSON(route)
	}
	rows := [][]string{
		{p.localizer.Get(columnDistance), p.distance(route.Distance)},
		{p.localizer.Get(columnDuration), p.duration(route.Duration)},
	}
	for i, coord := range route.Geometry.Coordinates {
		rows = append(rows, []string{fmt.Sprintf("#%d", i+1), place.Coordinate{Lat: coord[1], Lng: coord[0]}.String()})
	}
	return p.writeTable(rows)
}

// Place writes a single place result.
func (p *Presenter) Place(result place.Result) error {
	if p.json {
		return p.writeJSON(result)
	}
	return p.Results([]place.Result{result})
}

func (p *Presenter) writeJSON(value any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// writeTable writes rows left aligned by display width. Cells wider than maxColumnWidth are
// truncated.
func (p *Presenter) writeTable(rows [][]string) error {
	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			width := min(runewidth.StringWidth(cell), maxColumnWidth)
			if i >= len(widths) {
				widths = append(widths, width)
				continue
			}
			widths[i] = max(widths[i], width)
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cell = runewidth.Truncate(cell, maxColumnWidth, ellipsis)
			if i < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[i])
			}
			cells[i] = cell
		}
		if _, err := fmt.Fprintln(p.out, strings.TrimRight(strings.Join(cells, columnGap), " ")); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	return nil
}

func (p *Presenter) category(category place.Category) string {
	if raw, ok := categoryNames[category]; ok {
		return p.localizer.Get(raw)
	}
	return string(category)
}

func (p *Presenter) price(result place.Result) string {
	if !result.Price.IsSet() {
		return "-"
	}
	return p.floatFormat(result.Price.Value(), 2)
}

func (p *Presenter) distance(meters float64) string {
	if meters >= 1000 {
		return p.floatFormat(meters/1000, 1) + " km"
	}
	return fmt.Sprintf("%s m", p.humanizer.Intcomma(int64(meters)))
}

func (p *Presenter) duration(seconds float64) string {
	minutes := int64(seconds / 60)
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%s h %d min", p.humanizer.Intcomma(minutes/60), minutes%60)
}

func coordinates(result place.Result) string {
	if !result.Lat.IsSet() || !result.Lng.IsSet() {
		return "-"
	}
	return place.Coordinate{Lat: result.Lat.Value(), Lng: result.Lng.Value()}.String()
}
