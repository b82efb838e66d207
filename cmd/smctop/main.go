package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/macsmc/smc"
	"github.com/macsmc/smc/sensors"
)

func main() {
	var (
		sensorsPath = flag.String("sensors", "", "YAML catalog file replacing the built-in sensor catalog")
		refresh     = flag.Duration("interval", time.Second, "refresh interval")
	)
	flag.Parse()

	catalog := sensors.Default()
	if *sensorsPath != "" {
		loaded, err := sensors.LoadCatalog(*sensorsPath)
		if err != nil {
			fatalf("load sensor catalog: %v", err)
		}
		catalog = loaded
	}

	client, err := smc.NewClient(smc.Config{})
	if err != nil {
		fatalf("create client: %v", err)
	}
	defer client.Close()

	reader := sensors.NewReader(client, catalog)
	ctx := context.Background()

	// Probe once before taking over the terminal so missing hardware fails
	// with a readable error.
	if _, err := reader.Temperatures(ctx); err != nil {
		fatalf("read temperatures: %v", err)
	}

	d := newDashboard(reader, *refresh)
	if err := d.run(ctx); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "smctop: "+format+"\n", args...)
	os.Exit(1)
}

type dashboard struct {
	reader  *sensors.Reader
	refresh time.Duration

	header    *widgets.Paragraph
	tempChart *widgets.Plot
	fanTable  *widgets.Table
	footer    *widgets.Paragraph

	// One gauge per responding temperature sensor, created on first sight
	// and kept in catalog order.
	gauges    map[string]*widgets.Gauge
	gaugeKeys []string

	history       []float64
	maxDataPoints int
	startTime     time.Time
	lastErr       error
}

func newDashboard(reader *sensors.Reader, refresh time.Duration) *dashboard {
	return &dashboard{
		reader:    reader,
		refresh:   refresh,
		gauges:    make(map[string]*widgets.Gauge),
		startTime: time.Now(),
	}
}

func (d *dashboard) run(ctx context.Context) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer ui.Close()

	d.build()
	d.layout()
	d.update(ctx)
	d.render()

	events := ui.PollEvents()
	ticker := time.NewTicker(d.refresh)
	defer ticker.Stop()

	for {
		select {
		case e := <-events:
			switch e.ID {
			case "q", "<C-c>":
				return nil
			case "<Resize>":
				d.layout()
				ui.Clear()
				d.render()
			}
		case <-ticker.C:
			d.update(ctx)
			d.render()
		}
	}
}

func (d *dashboard) build() {
	d.header = widgets.NewParagraph()
	d.header.Title = "smctop"
	d.header.Text = "Press 'q' to quit"
	d.header.BorderStyle.Fg = ui.ColorCyan
	d.header.TitleStyle.Fg = ui.ColorWhite
	d.header.TitleStyle.Modifier = ui.ModifierBold

	d.tempChart = widgets.NewPlot()
	d.tempChart.Title = "Temperature history"
	d.tempChart.Data = make([][]float64, 1)
	d.tempChart.Data[0] = []float64{0, 0} // Plot needs at least 2 points
	d.tempChart.LineColors[0] = ui.ColorGreen
	d.tempChart.AxesColor = ui.ColorWhite
	d.tempChart.BorderStyle.Fg = ui.ColorGreen
	d.tempChart.Marker = widgets.MarkerBraille
	d.tempChart.HorizontalScale = 1000 // hides the X-axis labels

	d.fanTable = widgets.NewTable()
	d.fanTable.Title = "Fans"
	d.fanTable.Rows = [][]string{{"Fan", "Actual", "Min", "Max", "Target"}}
	d.fanTable.TextStyle = ui.NewStyle(ui.ColorWhite)
	d.fanTable.RowSeparator = false
	d.fanTable.BorderStyle.Fg = ui.ColorMagenta
	d.fanTable.TextAlignment = ui.AlignLeft
	d.fanTable.RowStyles[0] = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)

	d.footer = widgets.NewParagraph()
	d.footer.Title = "Client"
	d.footer.Text = "Collecting..."
	d.footer.BorderStyle.Fg = ui.ColorCyan
}

// layout arranges widgets on screen: gauges down the left half, the history
// plot on the right, fans and client stats across the bottom.
func (d *dashboard) layout() {
	termWidth, termHeight := ui.TerminalDimensions()

	chartWidth := termWidth / 2
	d.maxDataPoints = chartWidth - 10
	if d.maxDataPoints < 10 {
		d.maxDataPoints = 10
	}

	d.header.SetRect(0, 0, termWidth, 3)

	top := 3
	for _, key := range d.gaugeKeys {
		d.gauges[key].SetRect(0, top, termWidth/2, top+3)
		top += 3
	}

	chartBottom := top
	if chartBottom < 13 {
		chartBottom = 13
	}
	d.tempChart.SetRect(termWidth/2, 3, termWidth, chartBottom)

	tableHeight := len(d.fanTable.Rows) + 2
	if tableHeight < 4 {
		tableHeight = 4
	}
	d.fanTable.SetRect(0, chartBottom, termWidth, chartBottom+tableHeight)

	d.footer.SetRect(0, termHeight-4, termWidth, termHeight)
}

// update refreshes widget contents from the hardware.
func (d *dashboard) update(ctx context.Context) {
	d.lastErr = nil

	readings, err := d.reader.Temperatures(ctx)
	if err != nil {
		d.lastErr = err
	}

	relayout := false
	for _, reading := range readings {
		gauge, ok := d.gauges[reading.Sensor.Key]
		if !ok {
			gauge = widgets.NewGauge()
			gauge.Title = reading.Sensor.Name
			gauge.BorderStyle.Fg = ui.ColorCyan
			gauge.LabelStyle.Fg = ui.ColorWhite
			d.gauges[reading.Sensor.Key] = gauge
			d.gaugeKeys = append(d.gaugeKeys, reading.Sensor.Key)
			relayout = true
		}

		percent := int(reading.Value)
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		gauge.Percent = percent
		gauge.Label = fmt.Sprintf("%.1f °C", reading.Value)
		gauge.BarColor = temperatureColor(reading.Value)
	}

	// The history plot follows the first cataloged temperature sensor,
	// normally the CPU.
	if len(readings) > 0 {
		d.history = append(d.history, readings[0].Value)
		if len(d.history) > d.maxDataPoints {
			d.history = d.history[1:]
		}
		if len(d.history) >= 2 {
			d.tempChart.Data[0] = append([]float64{}, d.history...)
		}
		d.tempChart.Title = fmt.Sprintf("%s history: %.1f °C", readings[0].Sensor.Key, readings[0].Value)
	}

	fans, err := d.reader.Fans(ctx)
	if err != nil {
		d.lastErr = err
	} else {
		rows := [][]string{{"Fan", "Actual", "Min", "Max", "Target"}}
		for _, fan := range fans {
			rows = append(rows, []string{
				fmt.Sprintf("%d", fan.Index),
				fmt.Sprintf("%.0f rpm", fan.Actual),
				fmt.Sprintf("%.0f", fan.Min),
				fmt.Sprintf("%.0f", fan.Max),
				fmt.Sprintf("%.0f", fan.Target),
			})
		}
		if len(rows) != len(d.fanTable.Rows) {
			relayout = true
		}
		d.fanTable.Rows = rows
	}

	stats := d.reader.Client().Stats()
	pool := d.reader.Client().PoolStats()
	text := fmt.Sprintf("Reads: %d | Cache hits: %d | Not found: %d | Errors: %d | Sessions: %d/%d active",
		stats.Reads, stats.CacheHits, stats.NotFound, stats.Errors,
		pool.ActiveSessions, pool.TotalSessions)
	if d.lastErr != nil {
		text += fmt.Sprintf("\nLast error: %v", d.lastErr)
	}
	d.footer.Text = text

	runtime := time.Since(d.startTime).Round(time.Second)
	d.header.Text = fmt.Sprintf("Runtime: %s | Press 'q' to quit", runtime)

	if relayout {
		d.layout()
	}
}

func (d *dashboard) render() {
	drawables := []ui.Drawable{d.header, d.tempChart, d.fanTable, d.footer}
	for _, key := range d.gaugeKeys {
		drawables = append(drawables, d.gauges[key])
	}
	ui.Render(drawables...)
}

func temperatureColor(celsius float64) ui.Color {
	switch {
	case celsius >= 80:
		return ui.ColorRed
	case celsius >= 60:
		return ui.ColorYellow
	default:
		return ui.ColorGreen
	}
}
