package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/macsmc/smc"
	"github.com/macsmc/smc/exporter"
	"github.com/macsmc/smc/sensors"
)

const usageText = `Usage: smcutil [flags] <command> [args]

Commands:
  read <key> [key...]   Read keys and print their decoded values
  info <key> [key...]   Print key metadata reported by the controller
  temps                 Read the temperature sensors in the catalog
  fans                  Show fan count and per-fan speeds
  list                  Print the sensor catalog
  serve                 Serve Prometheus metrics over HTTP

Flags:
`

func main() {
	var (
		sensorsPath = flag.String("sensors", "", "YAML catalog file replacing the built-in sensor catalog")
		listenAddr  = flag.String("listen", ":9260", "listen address for the serve command")
		interval    = flag.Duration("interval", 0, "repeat temps output at this interval (0 prints once)")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

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

	switch args[0] {
	case "read":
		if len(args) < 2 {
			fatalf("usage: smcutil read <key> [key...]")
		}
		handleRead(ctx, client, args[1:])

	case "info":
		if len(args) < 2 {
			fatalf("usage: smcutil info <key> [key...]")
		}
		handleInfo(ctx, client, args[1:])

	case "temps":
		handleTemps(ctx, reader, *interval)

	case "fans":
		handleFans(ctx, reader)

	case "list":
		handleList(catalog)

	case "serve":
		handleServe(reader, *listenAddr)

	default:
		fmt.Fprintf(os.Stderr, "smcutil: unknown command %q\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "smcutil: "+format+"\n", args...)
	os.Exit(1)
}

func handleRead(ctx context.Context, client *smc.Client, keys []string) {
	failed := false
	for _, key := range keys {
		val, err := client.Read(ctx, key)
		if err != nil {
			if smc.IsKeyNotFound(err) {
				fmt.Printf("%-4s  <not found>\n", key)
				continue
			}
			fmt.Fprintf(os.Stderr, "smcutil: read %s: %v\n", key, err)
			failed = true
			continue
		}
		fmt.Printf("%-4s  %s  %s\n", val.Key, val.DataType, val.String())
	}
	if failed {
		os.Exit(1)
	}
}

func handleInfo(ctx context.Context, client *smc.Client, keys []string) {
	failed := false
	for _, key := range keys {
		info, err := client.Info(ctx, key)
		if err != nil {
			if smc.IsKeyNotFound(err) {
				fmt.Printf("%-4s  <not found>\n", key)
				continue
			}
			fmt.Fprintf(os.Stderr, "smcutil: info %s: %v\n", key, err)
			failed = true
			continue
		}
		fmt.Printf("%-4s  type=%s  size=%d  attrs=%#02x\n", key, info.DataType, info.DataSize, info.DataAttributes)
	}
	if failed {
		os.Exit(1)
	}
}

func handleTemps(ctx context.Context, reader *sensors.Reader, interval time.Duration) {
	if err := printTemps(ctx, reader); err != nil {
		fatalf("read temperatures: %v", err)
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		fmt.Println()
		if err := printTemps(ctx, reader); err != nil {
			fatalf("read temperatures: %v", err)
		}
	}
}

func printTemps(ctx context.Context, reader *sensors.Reader) error {
	readings, err := reader.Temperatures(ctx)
	if err != nil {
		return err
	}
	if len(readings) == 0 {
		fmt.Println("No temperature sensors responded.")
		return nil
	}
	for _, reading := range readings {
		fmt.Printf("%-4s  %-24s  %6.1f °C\n", reading.Sensor.Key, reading.Sensor.Name, reading.Value)
	}
	return nil
}

func handleFans(ctx context.Context, reader *sensors.Reader) {
	count, err := reader.FanCount(ctx)
	if err != nil {
		fatalf("read fan count: %v", err)
	}
	if count == 0 {
		fmt.Println("No fans reported.")
		return
	}

	fans, err := reader.Fans(ctx)
	if err != nil {
		fatalf("read fans: %v", err)
	}
	for _, fan := range fans {
		fmt.Printf("Fan %d: %5.0f rpm  (min %.0f, max %.0f, target %.0f)\n",
			fan.Index, fan.Actual, fan.Min, fan.Max, fan.Target)
	}
}

func handleList(catalog sensors.Catalog) {
	for _, sensor := range catalog.Sensors {
		fmt.Printf("%-4s  %-24s  %s\n", sensor.Key, sensor.Name, sensor.Unit)
	}
}

func handleServe(reader *sensors.Reader, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.New(reader).Handler())

	fmt.Printf("Serving metrics on %s/metrics\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fatalf("serve: %v", err)
	}
}
