package renderer

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MinSamples     int           // Fewest samples taken by any pixel
	MaxSamplesUsed int           // Most samples taken by any pixel
	MeanLuminance  float64       // Average pixel luminance
	MeanStdError   float64       // Average per-pixel standard error of luminance
	TotalTiles     int           // Tiles in the image
	CompletedTiles int           // Tiles fully rendered
	Workers        int           // Worker goroutines used
	Duration       time.Duration // Wall clock render time

	luminanceSum float64
	stdErrorSum  float64
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// StdError returns the standard error of the mean pixel luminance
func (ps *PixelStats) StdError() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := math.Max(0, (ps.LuminanceSqAccum/n-mean*mean)*n/(n-1))
	return math.Sqrt(variance / n)
}

// addPixel folds one finished pixel into the statistics
func (rs *RenderStats) addPixel(ps *PixelStats) {
	if rs.TotalPixels == 0 || ps.SampleCount < rs.MinSamples {
		rs.MinSamples = ps.SampleCount
	}
	rs.MaxSamplesUsed = max(rs.MaxSamplesUsed, ps.SampleCount)
	rs.TotalPixels++
	rs.TotalSamples += ps.SampleCount
	rs.luminanceSum += ps.GetColor().Luminance()
	rs.stdErrorSum += ps.StdError()
	rs.finalize()
}

// Merge folds the statistics of another tile into rs
func (rs *RenderStats) Merge(other RenderStats) {
	if other.TotalPixels == 0 {
		return
	}
	if rs.TotalPixels == 0 || other.MinSamples < rs.MinSamples {
		rs.MinSamples = other.MinSamples
	}
	rs.MaxSamplesUsed = max(rs.MaxSamplesUsed, other.MaxSamplesUsed)
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.luminanceSum += other.luminanceSum
	rs.stdErrorSum += other.stdErrorSum
	rs.finalize()
}

// finalize recomputes the averaged fields
func (rs *RenderStats) finalize() {
	if rs.TotalPixels == 0 {
		return
	}
	n := float64(rs.TotalPixels)
	rs.AverageSamples = float64(rs.TotalSamples) / n
	rs.MeanLuminance = rs.luminanceSum / n
	rs.MeanStdError = rs.stdErrorSum / n
}

// Table formats the statistics as a text table
func (rs RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk([][]string{
		{"Pixels", fmt.Sprintf("%d", rs.TotalPixels)},
		{"Samples", fmt.Sprintf("%d", rs.TotalSamples)},
		{"Samples/pixel", fmt.Sprintf("%.1f (min %d, max %d)", rs.AverageSamples, rs.MinSamples, rs.MaxSamplesUsed)},
		{"Mean luminance", fmt.Sprintf("%.4f", rs.MeanLuminance)},
		{"Mean std error", fmt.Sprintf("%.4f", rs.MeanStdError)},
		{"Tiles", fmt.Sprintf("%d/%d", rs.CompletedTiles, rs.TotalTiles)},
		{"Workers", fmt.Sprintf("%d", rs.Workers)},
		{"Time", rs.Duration.Round(time.Millisecond).String()},
	})
	if rs.Duration > 0 {
		table.SetFooter([]string{"Samples/sec", fmt.Sprintf("%.0f", float64(rs.TotalSamples)/rs.Duration.Seconds())})
	}
	table.Render()
	return buf.String()
}

// BVHStatsTable formats the shape of a BVH as a text table
func BVHStatsTable(stats geometry.BVHStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Nodes", "Leaves", "Max depth", "Primitives"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Primitives),
	})
	table.Render()
	return buf.String()
}
