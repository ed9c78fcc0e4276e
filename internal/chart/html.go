package chart

import (
	"fmt"
	"html/template"
	"io"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
	"github.com/julianstephens/tlview/internal/models"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.LoaderURL}}"></script>
<script>
google.charts.load({{.Version}}, {packages: [{{.Package}}]});
google.charts.setOnLoadCallback(function () {
  var data = new google.visualization.DataTable();
  data.addColumn('string', 'Task ID');
  data.addColumn('string', 'Task Name');
  data.addColumn('number', 'Start');
  data.addColumn('number', 'End');
  data.addRows({{.Rows}});
  var chart = new google.visualization.Timeline(document.getElementById({{.ElementID}}));
  chart.draw(data, {{.Options}});
});
</script>
</head>
<body style="padding: 20px;">
<h2>Timeline Visualizer</h2>
<p>{{.Activities}} activities. Colors are chosen from each action name.</p>
<div id="{{.ElementID}}"></div>
</body>
</html>
`

// googleOptions mirrors the option object of google.visualization.Timeline.
type googleOptions struct {
	Height    int             `json:"height"`
	Colors    []string        `json:"colors"`
	Animation googleAnimation `json:"animation"`
	HAxis     googleAxis      `json:"hAxis"`
	Timeline  googleTimeline  `json:"timeline"`
}

type googleAnimation struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
}

type googleAxis struct {
	Gridlines struct {
		Count int `json:"count"`
	} `json:"gridlines"`
}

type googleTimeline struct {
	ShowRowLabels   bool `json:"showRowLabels"`
	GroupByRowLabel bool `json:"groupByRowLabel"`
	ColorByRowLabel bool `json:"colorByRowLabel"`
}

type htmlPage struct {
	Title      string
	LoaderURL  string
	Version    string
	Package    string
	ElementID  string
	Rows       [][]any
	Options    googleOptions
	Activities int
}

// HTMLDrawer writes a standalone page that loads the Google Charts loader and
// draws a Timeline widget.
type HTMLDrawer struct {
	loader

	tmpl *template.Template
}

// NewHTMLDrawer creates an HTML drawer.
func NewHTMLDrawer() *HTMLDrawer {
	return &HTMLDrawer{}
}

func (d *HTMLDrawer) Name() string { return string(constants.FormatHTML) }

// EnsureLoaded parses the page template.
func (d *HTMLDrawer) EnsureLoaded() error {
	return d.ensure(func() error {
		tmpl, err := template.New("timeline").Parse(pageTemplate)
		if err != nil {
			return fmt.Errorf("parsing page template: %w", err)
		}
		d.tmpl = tmpl
		return nil
	})
}

// Draw writes the page. Rows with non-finite times cannot be represented in
// the widget's number columns, so they are left out together with their color
// and their share of the height.
func (d *HTMLDrawer) Draw(w io.Writer, data models.ChartData) error {
	if err := d.EnsureLoaded(); err != nil {
		return err
	}

	page := htmlPage{
		Title:      constants.PluginName,
		LoaderURL:  constants.ChartsLoaderURL,
		Version:    constants.ChartsLoaderVersion,
		Package:    constants.ChartsPackage,
		ElementID:  elementID(data.PassID),
		Rows:       make([][]any, 0, len(data.Rows)),
		Activities: len(data.Rows),
		Options: googleOptions{
			Colors: make([]string, 0, len(data.Rows)),
			Animation: googleAnimation{
				Duration: data.Options.AnimationDurationMs,
				Easing:   data.Options.AnimationEasing,
			},
			Timeline: googleTimeline{
				ShowRowLabels:   data.Options.ShowRowLabels,
				GroupByRowLabel: data.Options.GroupByRowLabel,
				ColorByRowLabel: data.Options.ColorByRowLabel,
			},
		},
	}
	page.Options.HAxis.Gridlines.Count = data.Options.Gridlines

	for i, row := range data.Rows {
		if !row.Valid() {
			logger.Warn("Omitting row with invalid times", "pass", data.PassID, "id", row.ID, "description", row.Description)
			continue
		}
		page.Rows = append(page.Rows, []any{row.ID, row.Description, row.StartMs, row.EndMs})
		if i < len(data.Colors) {
			page.Options.Colors = append(page.Options.Colors, data.Colors[i])
		}
	}

	page.Options.Height = data.Height - (len(data.Rows)-len(page.Rows))*data.Options.RowHeight

	if err := d.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func elementID(passID string) string {
	if passID == "" {
		return "timeline_chart"
	}
	return "timeline_chart_" + passID
}
