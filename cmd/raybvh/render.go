package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/kjhurst/raybvh/bvh"
	"github.com/kjhurst/raybvh/internal/ao"
	"github.com/kjhurst/raybvh/internal/objmesh"
	"github.com/kjhurst/raybvh/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/image/bmp"
)

func renderCommand(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one mesh argument; got %d", ctx.NArg())
	}
	meshPath := ctx.Args().First()

	samples := ctx.Int("samples")
	width := ctx.Int("width")
	height := ctx.Int("height")
	outPath := ctx.String("out")

	mesh, err := objmesh.Load(meshPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", meshPath, err)
	}

	tree, err := bvh.Build(mesh, bvh.BinnedSAHBuilder{})
	if err != nil {
		return fmt.Errorf("building bvh: %w", err)
	}
	logger.Noticef("built bvh over %s\n%s", meshPath, renderStatsTable(tree))

	camera, err := framingCamera(mesh, height, width)
	if err != nil {
		return err
	}

	var renderer ao.Renderer
	if err := renderer.Begin(tree, mesh, width, height, camera); err != nil {
		return fmt.Errorf("starting renderer: %w", err)
	}

	rayCount := int64(width) * int64(height)
	start := time.Now()
	for i := 0; i < samples; i++ {
		if err := renderer.Refine(); err != nil {
			return fmt.Errorf("refining sample %d: %w", i, err)
		}
		logger.Debugf("rendered sample %d/%d", i+1, samples)
	}
	elapsed := time.Since(start)
	logger.Noticef("traced %d samples\n%s", samples, renderRateTable(rayCount, samples, elapsed))

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			visibility := renderer.Value(x, y)
			shade := uint8(visibility * 255)
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}

	logger.Noticef("wrote %s (%d samples)", outPath, samples)
	return nil
}

// renderRateTable summarizes the primary-ray throughput of the just-finished
// run. Shadow-ray count varies per sample with how many primary rays hit the
// mesh, so it is reported as an upper bound rather than an exact count.
func renderRateTable(rayCount int64, samples int, elapsed time.Duration) string {
	primaryRays := rayCount * int64(samples)
	seconds := elapsed.Seconds()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"primary rays", fmt.Sprintf("%d", primaryRays)})
	table.Append([]string{"shadow rays (<=)", fmt.Sprintf("%d", primaryRays)})
	if seconds > 0 {
		table.Append([]string{"primary rays/sec", fmt.Sprintf("%.0f", float64(primaryRays)/seconds)})
	}
	table.SetFooter([]string{"elapsed", elapsed.Round(time.Millisecond).String()})
	table.Render()
	return buf.String()
}

// framingCamera places a pinhole camera far enough along +Z to see the whole
// mesh, looking back towards the center of its bounding box. It is a small convenience for the
// demonstration command; a caller with a real scene supplies its own camera.
func framingCamera(mesh bvh.MeshView, height, width int) (ao.Camera, error) {
	if mesh.VertexCount() == 0 {
		return ao.Camera{}, fmt.Errorf("mesh has no vertices")
	}

	min := mesh.Position(0)
	max := mesh.Position(0)
	for i := 1; i < mesh.VertexCount(); i++ {
		p := mesh.Position(i)
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}

	center := min.Add(max).Mul(0.5)
	extent := max.Sub(min)
	radius := extent[0]
	if extent[1] > radius {
		radius = extent[1]
	}
	if extent[2] > radius {
		radius = extent[2]
	}
	if radius <= 0 {
		radius = 1
	}

	return ao.Camera{
		From:       center.Add(types.Vec3{0, 0, radius * 2.5}),
		To:         center,
		Up:         types.Vec3{0, 1, 0},
		FOVRadians: 0.9,
	}, nil
}
