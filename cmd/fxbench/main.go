// Command fxbench drives glass button FX instances headlessly with synthetic
// input and reports per-tick timing.
//
// Usage:
//
//	go run ./cmd/fxbench [flags]
//
// Flags:
//
//	--instances <n>    Number of instances (default 8)
//	--frames <n>       Frames to simulate (default 600)
//	--fps <n>          Simulated display rate (default 60)
//	--dpr <x>          Device pixel ratio (default 2)
//	--click-every <n>  Click each instance every n frames (default 20)
//	--leave-every <n>  Leave and re-enter every n frames (default 180)
//	--hitch-every <n>  Insert a 500ms stall every n frames (default 0)
//	--config <path>    FX tuning YAML (default built-in)
//	--out <dir>        Write frames.csv and summary.csv to dir
//	--verbose          Enable development logging
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/decker502/glassfx/internal/logging"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/telemetry"
)

func main() {
	opts := defaultBenchOptions()
	flag.IntVar(&opts.Instances, "instances", opts.Instances, "Number of instances")
	flag.IntVar(&opts.Frames, "frames", opts.Frames, "Frames to simulate")
	flag.Float64Var(&opts.FPS, "fps", opts.FPS, "Simulated display rate")
	flag.Float64Var(&opts.DPR, "dpr", opts.DPR, "Device pixel ratio")
	flag.IntVar(&opts.ClickEvery, "click-every", opts.ClickEvery, "Click every n frames (0 disables)")
	flag.IntVar(&opts.LeaveEvery, "leave-every", opts.LeaveEvery, "Leave and re-enter every n frames (0 disables)")
	flag.IntVar(&opts.HitchEvery, "hitch-every", opts.HitchEvery, "Insert a 500ms stall every n frames (0 disables)")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed")
	configPath := flag.String("config", "", "FX tuning YAML (built-in defaults when empty)")
	outDir := flag.String("out", "", "Directory for frames.csv and summary.csv")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	log := logging.Nop()
	if *verbose {
		l, err := logging.New(logging.Config{Level: "debug"})
		if err != nil {
			fmt.Fprintf(os.Stderr, "fxbench: %v\n", err)
			os.Exit(1)
		}
		log = l
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fxbench: %v\n", err)
			os.Exit(1)
		}
		opts.Config = cfg
	}

	out, err := telemetry.NewOutputManager(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fxbench: %v\n", err)
		os.Exit(1)
	}
	perf := telemetry.NewPerfCollector(opts.Frames*opts.Instances, out)

	res, err := runBench(opts, perf, log)
	if err == nil {
		err = perf.Err()
	}
	if err == nil {
		err = out.WriteSummary(res.Stats)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fxbench: %v\n", err)
		os.Exit(1)
	}

	printReport(res, opts)
	if dir := out.Dir(); dir != "" {
		fmt.Printf("\ntelemetry written to %s\n", dir)
	}
}

func printReport(res benchResult, opts benchOptions) {
	fmt.Printf("%d instances x %d frames in %v\n", opts.Instances, opts.Frames, res.Elapsed)
	fmt.Printf("activations %d, peak particles %d, fills %d, vertices %d, sweep draws %d, render errors %d\n\n",
		res.Activations, res.Peak, res.Fills, res.Vertices, res.SweepDraws, res.Stats.RenderErrors)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "metric\tmean\tstddev\tp50\tp95\tmax\t")
	for _, row := range res.Stats.Rows() {
		s := row.Summary
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n", row.Metric, s.Mean, s.StdDev, s.P50, s.P95, s.Max)
	}
	w.Flush()
}
