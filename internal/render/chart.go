package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"astro-report-service/internal/astro"

	"github.com/disintegration/imaging"
)

const chartSize = 800

var (
	chartBackground = color.NRGBA{R: 252, G: 248, B: 240, A: 255}
	chartLine       = color.NRGBA{R: 120, G: 60, B: 20, A: 255}
	planetMark      = color.NRGBA{R: 178, G: 34, B: 34, A: 255}
	retrogradeMark  = color.NRGBA{R: 30, G: 60, B: 160, A: 255}
)

// ChartRenderer draws the birth chart image artifact
type ChartRenderer struct{}

// NewChartRenderer creates a chart renderer
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// Render draws a chart for the given positions and houses and returns PNG
// bytes. The north-Indian diamond layout is the default; other styles share
// the same house geometry.
func (r *ChartRenderer) Render(positions map[string]astro.PlanetaryPosition, houses map[int]astro.HouseCusp, style string) ([]byte, error) {
	img := imaging.New(chartSize, chartSize, chartBackground)

	// Outer square
	drawRect(img, 10, 10, chartSize-10, chartSize-10)

	// Diamond (midpoints of the outer square)
	mid := chartSize / 2
	drawLine(img, mid, 10, chartSize-10, mid)
	drawLine(img, chartSize-10, mid, mid, chartSize-10)
	drawLine(img, mid, chartSize-10, 10, mid)
	drawLine(img, 10, mid, mid, 10)

	// Diagonals
	drawLine(img, 10, 10, chartSize-10, chartSize-10)
	drawLine(img, chartSize-10, 10, 10, chartSize-10)

	// Planet markers clustered per house
	counts := make(map[int]int)
	for _, planet := range astro.Planets {
		pos, ok := positions[planet]
		if !ok {
			continue
		}
		cx, cy := houseCenter(pos.House)
		offset := counts[pos.House]
		counts[pos.House]++

		mark := planetMark
		if pos.Retrograde {
			mark = retrogradeMark
		}
		drawMarker(img, cx+(offset%3)*18-18, cy+(offset/3)*18, mark)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode chart image: %w", err)
	}
	return buf.Bytes(), nil
}

// houseCenter returns the approximate center of each house region in the
// north-Indian diamond layout.
func houseCenter(house int) (int, int) {
	q := chartSize / 4
	centers := map[int][2]int{
		1:  {2 * q, 1 * q},
		2:  {1 * q, q / 2},
		3:  {q / 2, 1 * q},
		4:  {1 * q, 2 * q},
		5:  {q / 2, 3 * q},
		6:  {1 * q, 4*q - q/2},
		7:  {2 * q, 3 * q},
		8:  {3 * q, 4*q - q/2},
		9:  {4*q - q/2, 3 * q},
		10: {3 * q, 2 * q},
		11: {4*q - q/2, 1 * q},
		12: {3 * q, q / 2},
	}
	c, ok := centers[house]
	if !ok {
		return chartSize / 2, chartSize / 2
	}
	return c[0], c[1]
}

func drawMarker(img *image.NRGBA, cx, cy int, c color.NRGBA) {
	for y := cy - 5; y <= cy+5; y++ {
		for x := cx - 5; x <= cx+5; x++ {
			if x >= 0 && x < chartSize && y >= 0 && y < chartSize {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func drawRect(img *image.NRGBA, x0, y0, x1, y1 int) {
	drawLine(img, x0, y0, x1, y0)
	drawLine(img, x1, y0, x1, y1)
	drawLine(img, x1, y1, x0, y1)
	drawLine(img, x0, y1, x0, y0)
}

// drawLine draws a 2px line using Bresenham's algorithm
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetNRGBA(x0, y0, chartLine)
		if x0+1 < chartSize {
			img.SetNRGBA(x0+1, y0, chartLine)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
