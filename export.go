package main

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	snapshotGrainPixels = 8.0
	snapshotCaption     = 20.0
)

// exportSnapshot writes the grains inside region to a PNG, one square of
// snapshotGrainPixels per grain, with the region written underneath. Grains
// never loaded are left white.
func exportSnapshot(filename string, grains []Grain, region Region) error {
	if region.Width() <= 0 || region.Height() <= 0 {
		return fmt.Errorf("nothing to export")
	}

	imageWidth := int(float64(region.Width()) * snapshotGrainPixels)
	imageHeight := int(float64(region.Height())*snapshotGrainPixels + snapshotCaption)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	for _, grain := range grains {
		if !region.Contains(grain.X, grain.Y) {
			continue
		}
		x := float64(grain.X-region.TopLeft.X) * snapshotGrainPixels
		y := float64(region.TopLeft.Y-grain.Y) * snapshotGrainPixels
		dc.SetColor(grain.Color.Clamped())
		dc.DrawRectangle(x, y, snapshotGrainPixels, snapshotGrainPixels)
		dc.Fill()
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12.0,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawString(region.String(), 4, float64(imageHeight)-6)

	return dc.SavePNG(filename)
}
