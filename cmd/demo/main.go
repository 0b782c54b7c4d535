package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"strings"

	"github.com/blacktop/go-imgprev"
)

func main() {
	if len(os.Args) > 1 {
		// If a file is provided, render it
		renderFile(os.Args[1])
	} else {
		// Otherwise, create a test pattern
		renderTestPattern()
	}
}

func renderFile(path string) {
	fmt.Printf("Rendering image: %s\n", path)

	// Simple one-liner to render a file
	if err := imgprev.PrintFile(path); err != nil {
		log.Fatalf("Error rendering file: %v", err)
	}

	fmt.Println("\nUsing fluent API with custom settings:")

	p, err := imgprev.Open(path)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}

	err = p.
		MaxColumns(40).
		FitHeight(true).
		HalfCell(true).
		Print()
	if err != nil {
		log.Fatalf("Error rendering with fluent API: %v", err)
	}
}

func renderTestPattern() {
	fmt.Println("Creating test pattern...")

	img, err := imgprev.FromImage(createTestPattern())
	if err != nil {
		log.Fatalf("Error converting test pattern: %v", err)
	}

	modes := []struct {
		name string
		opts imgprev.Options
	}{
		{"Square blocks", imgprev.Options{MaxColumns: 40}},
		{"Half cells", imgprev.Options{MaxColumns: 40, HalfCell: true}},
		{"Fit height", imgprev.Options{FitHeight: true}},
	}

	for _, m := range modes {
		fmt.Printf("\n=== %s ===", m.name)
		if err := imgprev.New(img).Options(m.opts).Print(); err != nil {
			fmt.Printf("Error with %s: %v\n", m.name, err)
		}
		fmt.Print(strings.Repeat("-", 50) + "\n")
	}
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern
	for y, n := 0, size; y < n; y++ {
		for x, n := 0, size; x < n; x++ {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// Corner squares
	corners := []struct {
		rect image.Rectangle
		c    color.RGBA
	}{
		{image.Rect(20, 20, 60, 60), color.RGBA{255, 0, 0, 255}},
		{image.Rect(140, 20, 180, 60), color.RGBA{0, 255, 0, 255}},
		{image.Rect(20, 140, 60, 180), color.RGBA{0, 0, 255, 255}},
		{image.Rect(140, 140, 180, 180), color.RGBA{255, 255, 255, 255}},
	}
	for _, sq := range corners {
		draw.Draw(img, sq.rect, &image.Uniform{sq.c}, image.Point{}, draw.Src)
	}

	return img
}
