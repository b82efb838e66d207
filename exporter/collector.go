// Package exporter publishes sensor readings and client statistics as
// Prometheus metrics.
package exporter

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/macsmc/smc/sensors"
)

// Collector reads the catalog at scrape time and exposes one gauge per
// present sensor, fan telemetry, and the client and pool counters. It
// implements prometheus.Collector and holds no global state; register it on
// a registry of your choice.
type Collector struct {
	reader *sensors.Reader

	sensorDesc   *prometheus.Desc
	fanDesc      *prometheus.Desc
	readsDesc    *prometheus.Desc
	infosDesc    *prometheus.Desc
	cacheHitDesc *prometheus.Desc
	notFoundDesc *prometheus.Desc
	errorsDesc   *prometheus.Desc
	sessionsDesc *prometheus.Desc
	createdDesc  *prometheus.Desc
	closedDesc   *prometheus.Desc

	scrapeErrors prometheus.Counter
}

// NewCollector creates a collector over the given reader.
func NewCollector(reader *sensors.Reader) *Collector {
	return &Collector{
		reader: reader,
		sensorDesc: prometheus.NewDesc(
			"smc_sensor_value",
			"Current sensor reading, in the sensor's unit.",
			[]string{"key", "sensor", "unit"},
			nil,
		),
		fanDesc: prometheus.NewDesc(
			"smc_fan_speed_rpm",
			"Fan speed telemetry.",
			[]string{"fan", "kind"},
			nil,
		),
		readsDesc: prometheus.NewDesc(
			"smc_client_reads_total",
			"Reads that returned a value.",
			nil, nil,
		),
		infosDesc: prometheus.NewDesc(
			"smc_client_infos_total",
			"Metadata queries that returned key info.",
			nil, nil,
		),
		cacheHitDesc: prometheus.NewDesc(
			"smc_client_cache_hits_total",
			"Reads that reused cached key metadata.",
			nil, nil,
		),
		notFoundDesc: prometheus.NewDesc(
			"smc_client_not_found_total",
			"Operations that asked for a key the controller lacks.",
			nil, nil,
		),
		errorsDesc: prometheus.NewDesc(
			"smc_client_errors_total",
			"Failed client operations.",
			nil, nil,
		),
		sessionsDesc: prometheus.NewDesc(
			"smc_sessions",
			"Controller sessions in the pool.",
			[]string{"state"}, // total, active, idle
			nil,
		),
		createdDesc: prometheus.NewDesc(
			"smc_sessions_created_total",
			"Controller sessions opened (cumulative).",
			nil, nil,
		),
		closedDesc: prometheus.NewDesc(
			"smc_sessions_destroyed_total",
			"Controller sessions closed (cumulative).",
			nil, nil,
		),
		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smc_scrape_errors_total",
			Help: "Scrapes that failed to sweep the sensor catalog.",
		}),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sensorDesc
	ch <- c.fanDesc
	ch <- c.readsDesc
	ch <- c.infosDesc
	ch <- c.cacheHitDesc
	ch <- c.notFoundDesc
	ch <- c.errorsDesc
	ch <- c.sessionsDesc
	ch <- c.createdDesc
	ch <- c.closedDesc
	c.scrapeErrors.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	readings, err := c.reader.ReadAll(ctx)
	if err != nil {
		c.scrapeErrors.Inc()
	}
	for _, reading := range readings {
		ch <- prometheus.MustNewConstMetric(
			c.sensorDesc,
			prometheus.GaugeValue,
			reading.Value,
			reading.Sensor.Key, reading.Sensor.Name, string(reading.Sensor.Unit),
		)
	}

	fans, err := c.reader.Fans(ctx)
	if err != nil {
		c.scrapeErrors.Inc()
	}
	for _, fan := range fans {
		index := strconv.Itoa(fan.Index)
		ch <- prometheus.MustNewConstMetric(c.fanDesc, prometheus.GaugeValue, fan.Actual, index, "actual")
		ch <- prometheus.MustNewConstMetric(c.fanDesc, prometheus.GaugeValue, fan.Min, index, "min")
		ch <- prometheus.MustNewConstMetric(c.fanDesc, prometheus.GaugeValue, fan.Max, index, "max")
		ch <- prometheus.MustNewConstMetric(c.fanDesc, prometheus.GaugeValue, fan.Target, index, "target")
	}

	client := c.reader.Client()

	stats := client.Stats()
	ch <- prometheus.MustNewConstMetric(c.readsDesc, prometheus.CounterValue, float64(stats.Reads))
	ch <- prometheus.MustNewConstMetric(c.infosDesc, prometheus.CounterValue, float64(stats.Infos))
	ch <- prometheus.MustNewConstMetric(c.cacheHitDesc, prometheus.CounterValue, float64(stats.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.notFoundDesc, prometheus.CounterValue, float64(stats.NotFound))
	ch <- prometheus.MustNewConstMetric(c.errorsDesc, prometheus.CounterValue, float64(stats.Errors))

	pool := client.PoolStats()
	ch <- prometheus.MustNewConstMetric(c.sessionsDesc, prometheus.GaugeValue, float64(pool.TotalSessions), "total")
	ch <- prometheus.MustNewConstMetric(c.sessionsDesc, prometheus.GaugeValue, float64(pool.ActiveSessions), "active")
	ch <- prometheus.MustNewConstMetric(c.sessionsDesc, prometheus.GaugeValue, float64(pool.IdleSessions), "idle")
	ch <- prometheus.MustNewConstMetric(c.createdDesc, prometheus.CounterValue, float64(pool.CreatedSessions))
	ch <- prometheus.MustNewConstMetric(c.closedDesc, prometheus.CounterValue, float64(pool.DestroyedSessions))

	c.scrapeErrors.Collect(ch)
}
