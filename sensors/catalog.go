package sensors

// Default returns the built-in catalog of keys most machines carry. Absent
// keys cost nothing: readers skip keys a controller does not know.
func Default() Catalog {
	return Catalog{Sensors: []Sensor{
		{Key: "TC0P", Name: "CPU proximity", Unit: Celsius},
		{Key: "TC0D", Name: "CPU die", Unit: Celsius},
		{Key: "TG0P", Name: "GPU proximity", Unit: Celsius},
		{Key: "TG0D", Name: "GPU die", Unit: Celsius},
		{Key: "TA0P", Name: "Ambient", Unit: Celsius},
		{Key: "Tm0P", Name: "Mainboard proximity", Unit: Celsius},
		{Key: "TB0T", Name: "Battery", Unit: Celsius},
		{Key: "TH0P", Name: "Drive bay", Unit: Celsius},
		{Key: "TW0P", Name: "Wireless module", Unit: Celsius},
		{Key: "Ts0P", Name: "Palm rest", Unit: Celsius},
		{Key: "VC0C", Name: "CPU core voltage", Unit: Volt},
		{Key: "IC0C", Name: "CPU core current", Unit: Amp},
		{Key: "PC0C", Name: "CPU core power", Unit: Watt},
		{Key: "PSTR", Name: "System total power", Unit: Watt},
	}}
}
