package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/metalcycle/internal/kpi"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
)

const timeLayout = "2006-01-02 15:04"

// EstimateReport is an estimate plus its functional-unit totals, present
// when the scenario names a quantity in kilograms or tonnes.
type EstimateReport struct {
	ScaledTotals   map[model.Metric]float64 `json:"scaledTotals,omitempty" yaml:"scaled_totals,omitempty"`
	FunctionalUnit string                   `json:"functionalUnit,omitempty" yaml:"functional_unit,omitempty"`
	model.Estimate `yaml:",inline"`
}

// Renderer writes command results as styled tables or as JSON/YAML.
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a renderer writing to w in the given format.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == "" {
		format = FormatTable
	}
	return &Renderer{w: w, format: format}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Estimate renders the prediction grid and totals of an estimate.
func (r *Renderer) Estimate(report *EstimateReport) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, report)
	}

	out := &lineWriter{w: r.w}
	out.println(FormatTitle("Impact estimate for " + string(report.Material)))
	out.println(SubtitleStyle.Render(describeScenario(report.Scenario)))
	out.println("")

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	header(tw, "Stage", "Metric", "Predicted", "Actual", "Variance", "Confidence")
	for _, stage := range model.Stages {
		for _, metric := range model.Metrics {
			p, ok := report.Prediction(stage, metric)
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				stage.Title(),
				metric.Label(),
				FormatNumber(p.Predicted, 2),
				FormatNumber(p.Actual, 2),
				FormatPercent(p.VariancePct),
				FormatNumber(p.Confidence, 0)+"%")
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	out.println("")
	out.println(BoldStyle.Render("Totals per kg"))
	for _, metric := range model.Metrics {
		out.printf("  %-16s %s\n", metric.Label(), FormatNumber(report.Totals[metric], 2))
	}

	if report.FunctionalUnit != "" && len(report.ScaledTotals) > 0 {
		out.println("")
		out.println(BoldStyle.Render("Totals for " + report.FunctionalUnit))
		for _, metric := range model.Metrics {
			unit := strings.TrimSuffix(metric.Unit(), "/kg")
			out.printf("  %-16s %s %s\n", string(metric), FormatNumber(report.ScaledTotals[metric], 2), unit)
		}
	}
	return out.err
}

// KPIs renders circularity scores with their rating.
func (r *Renderer) KPIs(scenario model.ScenarioInput, k model.CircularityKPIs) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, k)
	}

	out := &lineWriter{w: r.w}
	out.println(FormatTitle("Circularity KPIs"))
	out.println(SubtitleStyle.Render(describeScenario(scenario)))
	out.println("")
	if out.err != nil {
		return out.err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	header(tw, "Indicator", "Score", "Rating")
	rows := []struct {
		name  string
		score int
	}{
		{"Recycling rate", k.RecyclingRate},
		{"Resource efficiency", k.ResourceEfficiency},
		{"Extended life", k.ExtendedLife},
		{"Circularity score", k.CircularityScore},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d/100\t%s\n", row.name, row.score, rating(row.score))
	}
	return tw.Flush()
}

// Comparison renders the linear against circular profile.
func (r *Renderer) Comparison(scenario model.ScenarioInput, c model.Comparison) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, c)
	}

	out := &lineWriter{w: r.w}
	out.println(FormatTitle("Linear vs circular"))
	out.println(SubtitleStyle.Render(describeScenario(scenario)))
	out.println("")
	if out.err != nil {
		return out.err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	header(tw, "Indicator", "Linear", "Circular", "Improvement")
	rows := []struct {
		improvement      *float64
		name             string
		linear, circular float64
	}{
		{c.Improvement.Emissions, "Emissions", c.Linear.Emissions, c.Circular.Emissions},
		{c.Improvement.Energy, "Energy", c.Linear.Energy, c.Circular.Energy},
		{c.Improvement.Waste, "Waste", c.Linear.Waste, c.Circular.Waste},
		{c.Improvement.Cost, "Cost", c.Linear.Cost, c.Circular.Cost},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.name,
			FormatNumber(row.linear, 2),
			FormatNumber(row.circular, 2),
			FormatPercent(row.improvement))
	}
	return tw.Flush()
}

// Dataset renders the aggregated means of one ingest run.
func (r *Renderer) Dataset(ds *model.AggregatedDataset) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, ds)
	}

	out := &lineWriter{w: r.w}
	out.println(FormatTitle("Dataset " + ds.RunID))
	out.printf("Source:    %s\n", ds.Source)
	out.printf("Processed: %s\n", formatTime(ds.ProcessedAt))
	out.printf("Rows:      %s\n", FormatNumber(float64(ds.TotalRows), 0))
	out.println("")
	if out.err != nil {
		return out.err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	header(tw, "Material", "Stage", "CO₂", "Energy", "Water", "Rows")
	for _, material := range ds.MaterialNames() {
		for _, stage := range ds.StagesFor(material) {
			rec, _ := ds.Record(material, stage)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
				material,
				stage,
				FormatNumber(rec.CO2, 2),
				FormatNumber(rec.Energy, 2),
				FormatNumber(rec.Water, 2),
				rec.Count)
		}
	}
	return tw.Flush()
}

// Datasets renders the saved ingest runs, newest first as given.
func (r *Renderer) Datasets(summaries []service.DatasetSummary) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, summaries)
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(r.w, InfoStyle.Render("No datasets saved. Use 'metalcycle ingest --save <file>' to add one."))
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	header(tw, "Run ID", "Source", "Processed", "Rows", "Groups")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", s.RunID, s.Source, formatTime(s.ProcessedAt), s.TotalRows, s.Groups)
	}
	return tw.Flush()
}

// Scenario renders the stored scenario and its optional extension.
func (r *Renderer) Scenario(record *model.ScenarioRecord) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, record)
	}

	out := &lineWriter{w: r.w}
	out.println(FormatTitle("Scenario"))
	out.printf("Recycled content:   %s%%\n", FormatNumber(record.Input.RecycledPercent, 1))
	out.printf("Energy source:      %s\n", record.Input.EnergySource)
	out.printf("Transport distance: %s km\n", FormatNumber(record.Input.TransportDistanceKm, 0))
	if record.UpdatedAt.IsZero() {
		out.println(SubtleStyle.Render("(defaults, never saved)"))
	} else {
		out.printf("Updated:            %s\n", formatTime(record.UpdatedAt))
	}

	if ext := record.Extension; ext != nil {
		out.println("")
		out.printf("Functional unit:    %s\n", ext.FunctionalUnit())
		if ext.ProductionRoute != "" {
			out.printf("Production route:   %s\n", ext.ProductionRoute)
		}
		if ext.TransportMode != "" {
			out.printf("Transport mode:     %s\n", ext.TransportMode)
		}
		if len(ext.WasteStreams) > 0 {
			out.printf("Waste streams:      %s\n", strings.Join(ext.WasteStreams, ", "))
		}
		if len(ext.EndOfLife) > 0 {
			out.printf("End of life:        %s\n", strings.Join(ext.EndOfLife, ", "))
		}
	}
	return out.err
}

// ValidationProblems lists every problem found in an upload.
func (r *Renderer) ValidationProblems(source string, problems []string) error {
	if r.format.Structured() {
		return Encode(r.w, r.format, map[string]any{"source": source, "errors": problems})
	}

	out := &lineWriter{w: r.w}
	out.println(FormatError(fmt.Sprintf("%s has %d validation error(s); nothing was imported", source, len(problems))))
	for _, p := range problems {
		out.printf("  • %s\n", p)
	}
	return out.err
}

func header(tw *tabwriter.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = TableHeaderStyle.Render(c)
		rules[i] = strings.Repeat("-", len([]rune(c)))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
}

func rating(score int) string {
	return ScoreStyle(score).Render(kpi.ScoreLabel(score))
}

func describeScenario(s model.ScenarioInput) string {
	return fmt.Sprintf("%s%% recycled, %s energy, %s km transport",
		FormatNumber(s.RecycledPercent, 1), s.EnergySource, FormatNumber(s.TransportDistanceKm, 0))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// lineWriter keeps the first write error so callers can check it once.
type lineWriter struct {
	w   io.Writer
	err error
}

func (l *lineWriter) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format, args...)
}

func (l *lineWriter) println(s string) {
	l.printf("%s\n", s)
}
