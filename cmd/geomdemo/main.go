// Command geomdemo demonstrates the geom polygon kernel: it builds a
// polygon, translates it with the sequential, parallel, and device
// strategies, verifies they agree, and optionally renders the result to
// a PNG mask.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"golang.org/x/image/vector"

	"github.com/gogpu/geom"
	"github.com/gogpu/geom/backend"
	"github.com/gogpu/geom/svg"

	// Register device backends.
	_ "github.com/gogpu/geom/backend/soft"
	_ "github.com/gogpu/geom/backend/wgpu"
)

func main() {
	var (
		n       = flag.Int("n", 100000, "vertex count of the generated polygon")
		dx      = flag.Int("dx", 100, "x displacement")
		dy      = flag.Int("dy", -150, "y displacement")
		device  = flag.String("device", "", "device backend to use (empty picks the best available)")
		svgFile = flag.String("svg", "", "load the polygon from an SVG file instead of generating one")
		output  = flag.String("output", "", "render the translated polygon to a PNG mask")
		size    = flag.Int("size", 512, "PNG mask size in pixels")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		geom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	poly, err := buildPolygon(*svgFile, *n)
	if err != nil {
		log.Fatalf("Failed to load polygon: %v", err)
	}
	fmt.Printf("polygon: %d vertices, area=%d, convexity=%s, winding=%+d\n",
		poly.Len(), poly.Area(), poly.Convexity(), poly.Winding())

	runHostTranslate(poly, geom.Coordinate(*dx), geom.Coordinate(*dy))
	runDeviceTranslate(poly, *device, geom.Coordinate(*dx), geom.Coordinate(*dy))

	if *output != "" {
		if err := renderMask(poly, *output, *size); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("Mask saved to %s (%dx%d)\n", *output, *size, *size)
	}
}

// buildPolygon loads the polygon from an SVG file, or generates a jagged
// ring with n vertices when no file is given.
func buildPolygon(svgFile string, n int) (*geom.Polygon, error) {
	if svgFile != "" {
		return svg.Load(svgFile)
	}
	if n < 3 {
		n = 3
	}
	poly := geom.WithCapacity(n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		r := 400000.0
		if i%2 == 1 {
			r = 300000.0 // sawtooth boundary keeps the ring concave
		}
		poly.Push(geom.Pt(
			geom.Coordinate(r*math.Cos(angle)),
			geom.Coordinate(r*math.Sin(angle)),
		))
	}
	return poly, nil
}

// runHostTranslate translates a clone sequentially and another clone in
// parallel, times both, and checks the buffers agree.
func runHostTranslate(poly *geom.Polygon, dx, dy geom.Coordinate) {
	seq := poly.Clone()
	par := poly.Clone()

	start := time.Now()
	seq.TranslateSequential(dx, dy)
	seqTime := time.Since(start)

	start = time.Now()
	par.TranslateParallel(dx, dy)
	parTime := time.Since(start)

	if !seq.Equal(par) {
		log.Fatal("sequential and parallel translate disagree")
	}
	fmt.Printf("host translate: sequential %v, parallel %v (identical buffers)\n", seqTime, parTime)

	// Leave the caller's polygon translated too.
	poly.Translate(dx, dy)
}

// runDeviceTranslate moves the polygon once more on a compute device and
// verifies against the host result; without any usable device it reports
// and moves on.
func runDeviceTranslate(poly *geom.Polygon, name string, dx, dy geom.Coordinate) {
	var dev geom.Device
	var err error
	if name != "" {
		dev = backend.Get(name)
		if dev == nil {
			log.Printf("device %q is not registered (available: %v)", name, backend.Available())
			return
		}
		err = geom.SetDefaultDevice(dev)
	} else {
		dev, err = backend.InitDefault()
	}
	if err != nil {
		log.Printf("no usable device: %v", err)
		return
	}
	defer func() {
		_ = geom.SetDefaultDevice(nil)
	}()

	want := poly.Clone()
	want.Translate(dx, dy)

	fmt.Printf("device: %s, status before=%s\n", dev.Name(), poly.Status())
	if err := poly.TranslateDevice(dx, dy); err != nil {
		log.Printf("device translate failed, falling back to host: %v", err)
		poly.Translate(dx, dy)
		return
	}
	fmt.Printf("device translate done, status=%s\n", poly.Status())

	if !poly.Equal(want) {
		log.Fatal("device and host translate disagree")
	}
	fmt.Printf("device result matches host, status after readback=%s\n", poly.Status())
}

// renderMask rasterizes the polygon into a square alpha mask and writes
// it as PNG. The polygon is scaled uniformly to fit.
func renderMask(poly *geom.Polygon, path string, size int) error {
	vs := poly.Vertices()
	if len(vs) < 3 {
		return fmt.Errorf("polygon with %d vertices has nothing to render", len(vs))
	}

	minX, minY := vs[0].X, vs[0].Y
	maxX, maxY := vs[0].X, vs[0].Y
	for _, v := range vs[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	spanX, spanY := float32(maxX-minX), float32(maxY-minY)
	scale := float32(size-2) / max(spanX, spanY, 1)

	ras := vector.NewRasterizer(size, size)
	for i, v := range vs {
		x := (float32(v.X-minX))*scale + 1
		y := (float32(v.Y-minY))*scale + 1
		if i == 0 {
			ras.MoveTo(x, y)
		} else {
			ras.LineTo(x, y)
		}
	}
	ras.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
