package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSnapshot(t *testing.T) {
	grains := NewGrainSet()
	grains.ApplyBatch([]GrainRecord{
		{X: 0, Y: 0, Color: "#ff0000"},
		{X: 2, Y: -1, Color: "#0000ff"},
		// outside the region, skipped
		{X: 9, Y: 9, Color: "#00ff00"},
	})
	region := Region{TopLeft: point{0, 0}, BottomRight: point{3, -2}}

	filename := filepath.Join(t.TempDir(), "snapshot.png")
	require.NoError(t, exportSnapshot(filename, grains.Grains(), region))

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 4*8, bounds.Dx())
	assert.Equal(t, 3*8+20, bounds.Dy())

	rgb := func(x, y int) [3]uint32 {
		r, g, b, _ := img.At(x, y).RGBA()
		return [3]uint32{r >> 8, g >> 8, b >> 8}
	}
	// grain (0,0) is the top left square
	assert.Equal(t, [3]uint32{255, 0, 0}, rgb(4, 4))
	// grain (2,-1) is third column, second row
	assert.Equal(t, [3]uint32{0, 0, 255}, rgb(2*8+4, 1*8+4))
	// never loaded
	assert.Equal(t, [3]uint32{255, 255, 255}, rgb(1*8+4, 2*8+4))
}

func TestExportSnapshotEmptyRegion(t *testing.T) {
	region := Region{TopLeft: point{5, 0}, BottomRight: point{0, 0}}
	err := exportSnapshot(filepath.Join(t.TempDir(), "snapshot.png"), nil, region)
	assert.Error(t, err)
}
