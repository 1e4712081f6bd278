// Package svg loads polygons from a minimal subset of SVG markup.
//
// The loader takes the first <polygon> element in a document and builds a
// geom.Polygon from its points attribute, ignoring everything else:
// groups, transforms, styling, and any later <polygon> elements. It
// exists so test inputs and small tools can keep their polygons in a
// format any SVG viewer can display; it is nothing like a general SVG
// implementation, and a renderer honoring transforms may show a
// different shape than the loader returns.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/geom"
)

// Loader errors.
var (
	// ErrNoPolygon is returned when the document has no <polygon> element.
	ErrNoPolygon = errors.New("svg: the <polygon> element is missing")

	// ErrNoPoints is returned when the first <polygon> element has no
	// points attribute.
	ErrNoPoints = errors.New("svg: the points attribute is missing")
)

// Parse extracts the first <polygon> element from SVG markup and returns
// its vertices as a polygon, in document order starting at the seam.
func Parse(data []byte) (*geom.Polygon, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPolygon
		}
		if err != nil {
			return nil, fmt.Errorf("svg: malformed markup: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "polygon" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "points" {
				return parsePoints(attr.Value)
			}
		}
		return nil, ErrNoPoints
	}
}

// Load reads an SVG file and parses its first polygon.
func Load(path string) (*geom.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("svg: read %s: %w", path, err)
	}
	return Parse(data)
}

// MustLoad is Load for known-good fixtures: it panics on any error.
func MustLoad(path string) *geom.Polygon {
	p, err := Load(path)
	if err != nil {
		panic(err)
	}
	return p
}

// parsePoints parses a points attribute: integer coordinate pairs
// separated by whitespace and/or commas, e.g. "0,0 1000,0 1000,1000".
func parsePoints(s string) (*geom.Polygon, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("svg: odd number of coordinates (%d), the last point is incomplete", len(fields))
	}
	p := geom.WithCapacity(len(fields) / 2)
	for i := 0; i < len(fields); i += 2 {
		x, err := parseCoordinate(fields[i])
		if err != nil {
			return nil, err
		}
		y, err := parseCoordinate(fields[i+1])
		if err != nil {
			return nil, err
		}
		p.Push(geom.Pt(x, y))
	}
	return p, nil
}

// parseCoordinate parses one signed integer coordinate token, naming the
// token in the error when it is not a 32-bit integer.
func parseCoordinate(tok string) (geom.Coordinate, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("svg: coordinate does not fit in 32 bits: %s", tok)
		}
		return 0, fmt.Errorf("svg: one of the coordinates is not integer: %s", tok)
	}
	return geom.Coordinate(v), nil
}
