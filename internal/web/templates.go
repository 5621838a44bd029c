package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/emokit/emotion-insights/internal/insights"
	"github.com/emokit/emotion-insights/internal/phases"
	"github.com/emokit/emotion-insights/internal/timeline"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.Execute(w, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")]

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		t.templates[name] = tmpl
	}

	// Load partials as standalone templates for HTMX fragments
	for _, partial := range partials {
		name := filepath.Base(partial)
		name = name[:len(name)-len(".html")]

		tmpl, err := template.New(filepath.Base(partial)).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// barHeight converts a 0-100 intensity into a CSS height percentage.
		"barHeight": func(v float64) string {
			if v < 0 {
				v = 0
			}
			if v > 100 {
				v = 100
			}
			return fmt.Sprintf("%.0f%%", v)
		},

		// intensity formats an intensity value for display.
		"intensity": func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},

		// rowValue looks a series value up in a chart row.
		"rowValue": func(row timeline.ChartRow, key string) float64 {
			return row.Values[key]
		},

		// rowHas distinguishes an absent series value from a zero one.
		"rowHas": func(row timeline.ChartRow, key string) bool {
			_, ok := row.Values[key]
			return ok
		},

		// formatTimestamp formats a recording time as "March 18, 2025 at 4:11:26 PM"
		"formatTimestamp": func(t time.Time) string {
			return t.Format("January 2, 2006 at 3:04:05 PM")
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	RecordingCount  int
	LatestEmotions  []EmotionDisplay
	PeakEmotions    []EmotionDisplay
	InsightsEnabled bool
}

// EmotionDisplay is one ranked emotion for list rendering.
type EmotionDisplay struct {
	Name  string
	Score string
	Color string
}

// TimelinePageData contains data for the timeline chart page.
type TimelinePageData struct {
	PageData
	Rows       []timeline.ChartRow
	Series     []timeline.SeriesSpec
	SlotLabels []string
	ViewType   timeline.ViewType
	Selected   string
	Phases     []phases.Phase
	UsingDemo  bool
}

// TooltipData contains data for the tooltip partial.
type TooltipData struct {
	Time  string
	Lines []timeline.TooltipLine
}

// InsightPanelData contains data for the insight partial. Exactly one of
// Insight and Message is set.
type InsightPanelData struct {
	Insight *insights.Insight
	Message string
}
