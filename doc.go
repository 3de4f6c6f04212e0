/*
Package iconbadge renders vector icon outlines as circular raster badges: a colored disc
with a black border and the icon drawn in black at its center.

The outlines are read from an OutlineSource (the Font Awesome icon set by default, or a local
directory of SVG files), flattened into polygons, composited on a supersampled canvas and
reduced to the requested size with a smoothing resample filter.

The package provides a command line interface which renders either a single icon
or every node icon enumerated by a graph model manifest. To check the supported commands type:

	$ iconbadge --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"
		"image/color"
		"os"

		"github.com/esimov/iconbadge"
	)

	func main() {
		src := iconbadge.NewOutlineCache(iconbadge.NewHTTPSource(""))
		p := iconbadge.NewProcessor(src)

		out, _ := os.Create("user.png")
		defer out.Close()

		req := iconbadge.RenderRequest{
			Name: "user",
			Fill: color.NRGBA{R: 0xff, A: 0xff},
			Size: 512,
		}
		if err := p.Process(context.Background(), req, out); err != nil {
			fmt.Printf("Error rendering the icon: %s", err.Error())
		}
	}
*/
package iconbadge
