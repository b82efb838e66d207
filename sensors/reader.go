package sensors

import (
	"context"
	"fmt"

	"github.com/macsmc/smc"
)

// maxFans caps fan discovery; fan keys carry a single digit index.
const maxFans = 10

// Reading is one sensor observation.
type Reading struct {
	Sensor Sensor
	Value  float64
}

// Fan is one cooling fan's telemetry, all speeds in RPM.
type Fan struct {
	Index  int
	Actual float64
	Min    float64
	Max    float64
	Target float64
}

// Reader reads cataloged sensors through a client.
type Reader struct {
	client  *smc.Client
	catalog Catalog
}

// NewReader creates a reader over the given client. An empty catalog means
// the built-in default.
func NewReader(client *smc.Client, catalog Catalog) *Reader {
	if len(catalog.Sensors) == 0 {
		catalog = Default()
	}
	return &Reader{client: client, catalog: catalog}
}

// Catalog returns the catalog the reader watches.
func (r *Reader) Catalog() Catalog {
	return r.catalog
}

// Client returns the client the reader runs on.
func (r *Reader) Client() *smc.Client {
	return r.client
}

// Read reads one sensor.
func (r *Reader) Read(ctx context.Context, sensor Sensor) (Reading, error) {
	value, err := r.client.Float(ctx, sensor.Key)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Sensor: sensor, Value: value}, nil
}

// ReadAll reads every sensor in the catalog. Keys this machine's controller
// does not carry are skipped; any other failure aborts the sweep.
func (r *Reader) ReadAll(ctx context.Context) ([]Reading, error) {
	return r.readSensors(ctx, r.catalog.Sensors)
}

// Temperatures reads the celsius sensors in the catalog.
func (r *Reader) Temperatures(ctx context.Context) ([]Reading, error) {
	return r.readSensors(ctx, r.catalog.Temperatures())
}

func (r *Reader) readSensors(ctx context.Context, sensors []Sensor) ([]Reading, error) {
	readings := make([]Reading, 0, len(sensors))
	for _, sensor := range sensors {
		reading, err := r.Read(ctx, sensor)
		if smc.IsKeyNotFound(err) {
			continue
		}
		if err != nil {
			return readings, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// FanCount returns the number of fans the controller reports. Machines
// without the fan count key report zero fans.
func (r *Reader) FanCount(ctx context.Context) (int, error) {
	val, err := r.client.Read(ctx, "FNum")
	if smc.IsKeyNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count, err := val.Uint()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Fans reads actual, minimum, maximum and target speed for every fan the
// controller reports.
func (r *Reader) Fans(ctx context.Context) ([]Fan, error) {
	count, err := r.FanCount(ctx)
	if err != nil {
		return nil, err
	}
	if count > maxFans {
		count = maxFans
	}

	fans := make([]Fan, 0, count)
	for i := 0; i < count; i++ {
		fan := Fan{Index: i}
		if fan.Actual, err = r.fanValue(ctx, i, "Ac"); err != nil {
			return fans, err
		}
		if fan.Min, err = r.fanValue(ctx, i, "Mn"); err != nil {
			return fans, err
		}
		if fan.Max, err = r.fanValue(ctx, i, "Mx"); err != nil {
			return fans, err
		}
		if fan.Target, err = r.fanValue(ctx, i, "Tg"); err != nil {
			return fans, err
		}
		fans = append(fans, fan)
	}
	return fans, nil
}

// fanValue reads one F<index><field> key, tolerating absent fields.
func (r *Reader) fanValue(ctx context.Context, index int, field string) (float64, error) {
	value, err := r.client.Float(ctx, fmt.Sprintf("F%d%s", index, field))
	if smc.IsKeyNotFound(err) {
		return 0, nil
	}
	return value, err
}
