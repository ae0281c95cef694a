package plot

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/foxplot/foxplot/series"
)

// AssetsURL is where pages load uPlot from.
const AssetsURL = "https://cdn.jsdelivr.net/npm/uplot@1.6.31/dist"

var (
	// ErrNoSeries is returned when neither axis has a series to plot.
	ErrNoSeries = errors.New("no series to plot")
	// ErrInvalidTimes is returned when the time index has missing values or
	// does not match the series length.
	ErrInvalidTimes = errors.New("invalid time index")
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Options configures a page.
type Options struct {
	// Title defaults to "Plot from <date> at <time>".
	Title     string
	LeftUnit  string
	RightUnit string
	// Timestamped formats the x axis as dates, for times in Unix seconds.
	Timestamped bool
}

type field struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Right bool   `json:"right"`
}

type page struct {
	Title       string
	AssetsURL   string
	LeftUnit    string
	RightUnit   string
	Timestamped bool
	Fields      []field
	Data        [][]*float64
}

// DefaultTitle returns the title of a page generated at now.
func DefaultTitle(now time.Time) string {
	return "Plot from " + now.Format("2006-01-02 at 15:04:05")
}

// GenerateHTML renders left and right series against times.
//
// Parameters:
//   - times: X values, or nil to use sample indices
//   - left: Series drawn against the left axis
//   - right: Series drawn against the right axis
//   - opts: Title and axis units
//
// Returns:
//   - string: Complete HTML page
//   - error: ErrNoSeries, ErrInvalidTimes or series.ErrLengthMismatch
func GenerateHTML(times []float64, left, right []*series.Series, opts Options) (string, error) {
	if len(left)+len(right) == 0 {
		return "", ErrNoSeries
	}

	length := len(times)
	if times == nil {
		length = firstOf(left, right).Len()
		times = make([]float64, length)
		for i := range times {
			times[i] = float64(i)
		}
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", fmt.Errorf("%w: sample %d is %v", ErrInvalidTimes, i, t)
		}
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle(time.Now())
	}

	p := page{
		Title:       title,
		AssetsURL:   AssetsURL,
		LeftUnit:    opts.LeftUnit,
		RightUnit:   opts.RightUnit,
		Timestamped: opts.Timestamped,
		Data:        [][]*float64{nullable(times)},
	}

	var colors ColorPicker
	for axis, group := range [][]*series.Series{left, right} {
		for _, s := range group {
			if s.Len() != length {
				return "", fmt.Errorf("%w: %s has %d samples, expected %d", series.ErrLengthMismatch, s.Label(), s.Len(), length)
			}
			p.Fields = append(p.Fields, field{Label: s.Label(), Color: colors.Next(), Right: axis == 1})
			p.Data = append(p.Data, nullable(s.Values()))
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render plot: %w", err)
	}

	return buf.String(), nil
}

func firstOf(left, right []*series.Series) *series.Series {
	if len(left) > 0 {
		return left[0]
	}

	return right[0]
}

// nullable maps NaN and infinities to nil so they encode as JSON null.
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) && !math.IsInf(values[i], 0) {
			out[i] = &values[i]
		}
	}

	return out
}
