// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/lemmod/lemdat"
	"github.com/lemmod/lemdat/internal/fsutil"
)

const (
	StatsDescription = "Show per-section compression statistics for a .dat container"
	StatsHelp        = StatsDescription + "\n\n" +
		"Prints a table of section sizes and ratios. With --chart the ratios\n" +
		"are also rendered as an SVG bar chart."
)

// Stats represents the `stats` command of the lemdat cli tool.
type Stats struct {
	loggingOptions
	Dir   string `long:"dir" default:"." description:"Directory holding the container"`
	Chart string `short:"c" long:"chart" description:"Path of an SVG bar chart of the compression ratios"`

	Args struct {
		Name string `positional-arg-name:"name" description:"Container base name, without the .dat extension"`
	} `positional-args:"yes" required:"yes"`
}

// Execute prints the statistics, it honors the go-flags.Commander interface.
func (c *Stats) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	path, err := fsutil.FindFile(c.Dir, c.Args.Name+".dat")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	a, err := lemdat.ReadArchive(data)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d bytes, %d sections\n\n", path, len(data), a.NumSections())
	fmt.Printf("%7s %12s %12s %7s %5s\n", "section", "compressed", "decompressed", "ratio", "raw")

	ratios := make([]float64, 0, a.NumSections())
	for _, info := range a.Sections() {
		ratio := 1.0
		if info.DecompressedSize > 0 {
			ratio = float64(info.CompressedSize) / float64(info.DecompressedSize)
		}
		ratios = append(ratios, ratio)

		raw := ""
		if info.Raw {
			raw = "yes"
		}
		fmt.Printf("%7d %12d %12d %6.1f%% %5s\n",
			info.Index, info.CompressedSize, info.DecompressedSize, ratio*100, raw)
	}

	if c.Chart == "" {
		return nil
	}
	if err := renderRatioChart(c.Chart, c.Args.Name, ratios); err != nil {
		return err
	}
	logrus.WithField("file", c.Chart).Info("chart written")
	return nil
}

// renderRatioChart draws one bar per section, compressed size as a
// fraction of the decompressed size.
func renderRatioChart(path, title string, ratios []float64) error {
	bars := make([]chart.Value, len(ratios))
	for i, r := range ratios {
		bars[i] = chart.Value{
			Label: strconv.Itoa(i),
			Value: r * 100,
		}
	}

	graph := chart.BarChart{
		Title:    title + " compression ratio (%)",
		Height:   512,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.SVG, fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
