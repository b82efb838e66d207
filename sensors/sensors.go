// Package sensors maps well-known controller keys to named hardware sensors
// and reads them through a client.
package sensors

import (
	"fmt"

	"github.com/macsmc/smc/wire"
)

// Unit classifies what a sensor's number measures.
type Unit string

const (
	Celsius Unit = "celsius"
	RPM     Unit = "rpm"
	Volt    Unit = "volt"
	Amp     Unit = "amp"
	Watt    Unit = "watt"
	Raw     Unit = "raw"
)

// Sensor is one controller key with a display name and a unit.
type Sensor struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Unit Unit   `yaml:"unit"`
}

// Catalog is the set of sensors to watch, in display order.
type Catalog struct {
	Sensors []Sensor `yaml:"sensors"`
}

// Find returns the sensor with the given key.
func (c Catalog) Find(key string) (Sensor, bool) {
	for _, sensor := range c.Sensors {
		if sensor.Key == key {
			return sensor, true
		}
	}
	return Sensor{}, false
}

// Temperatures returns the sensors measured in celsius.
func (c Catalog) Temperatures() []Sensor {
	var temps []Sensor
	for _, sensor := range c.Sensors {
		if sensor.Unit == Celsius {
			temps = append(temps, sensor)
		}
	}
	return temps
}

// Merge returns a copy of c with extra sensors appended. A sensor whose key
// is already cataloged replaces the existing entry in place.
func (c Catalog) Merge(extra ...Sensor) Catalog {
	merged := Catalog{Sensors: make([]Sensor, len(c.Sensors))}
	copy(merged.Sensors, c.Sensors)

	for _, sensor := range extra {
		replaced := false
		for i := range merged.Sensors {
			if merged.Sensors[i].Key == sensor.Key {
				merged.Sensors[i] = sensor
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Sensors = append(merged.Sensors, sensor)
		}
	}
	return merged
}

// Validate checks that every sensor carries a well-formed key and a known
// unit.
func (c Catalog) Validate() error {
	for _, sensor := range c.Sensors {
		if err := wire.ValidateKey(sensor.Key); err != nil {
			return fmt.Errorf("sensors: %q: %w", sensor.Name, err)
		}
		switch sensor.Unit {
		case Celsius, RPM, Volt, Amp, Watt, Raw:
		default:
			return fmt.Errorf("sensors: %s: unknown unit %q", sensor.Key, sensor.Unit)
		}
	}
	return nil
}
