package main

import (
	"bytes"
	"fmt"

	"github.com/kjhurst/raybvh/bvh"
	"github.com/kjhurst/raybvh/internal/objmesh"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func buildCommand(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one mesh argument; got %d", ctx.NArg())
	}
	meshPath := ctx.Args().First()

	builder, err := resolveBuilder(ctx.String("builder"))
	if err != nil {
		return err
	}

	mesh, err := objmesh.Load(meshPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", meshPath, err)
	}

	tree, err := bvh.Build(mesh, builder)
	if err != nil {
		return fmt.Errorf("building bvh: %w", err)
	}

	logger.Noticef("built bvh over %s\n%s", meshPath, renderStatsTable(tree))
	return nil
}

func resolveBuilder(name string) (bvh.Builder, error) {
	switch name {
	case "simple":
		return bvh.SimpleBuilder{}, nil
	case "sah":
		return bvh.BinnedSAHBuilder{}, nil
	default:
		return nil, fmt.Errorf("unknown builder %q; expected simple or sah", name)
	}
}

func renderStatsTable(tree *bvh.BVH) string {
	stats := tree.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"nodes", fmt.Sprintf("%d", stats.Nodes)})
	table.Append([]string{"leafs", fmt.Sprintf("%d", stats.Leafs)})
	table.Append([]string{"max depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{"triangles", fmt.Sprintf("%d", stats.Triangles)})
	if stats.Leafs > 0 {
		table.Append([]string{"triangles/leaf", fmt.Sprintf("%.2f", float64(stats.Triangles)/float64(stats.Leafs))})
	}
	table.SetFooter([]string{"build time", fmt.Sprintf("%d ms", stats.BuildMillis)})
	table.Render()
	return buf.String()
}
