package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math/bits"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"maxrects2d/rectpack"
)

const (
	atlasImageName = "atlas.png"
	atlasDataName  = "atlas.json"
)

// sprite is a decoded input image and the part of it that gets packed.
type sprite struct {
	path string
	img  image.Image
	trim image.Rectangle
}

type rectJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type sizeJSON struct {
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteInfo 存储精灵图在图集中的信息
type SpriteInfo struct {
	Filename   string    `json:"filename"`
	Region     rectJSON  `json:"region"`
	SourceSize sizeJSON  `json:"sourceSize"`
	SourceRect *rectJSON `json:"sourceRect,omitempty"`
	Trimmed    bool      `json:"trimmed"`
	Rotated    bool      `json:"rotated"`
}

// AtlasData 是 atlas.json 的内容
type AtlasData struct {
	Meta struct {
		Version   string  `json:"version"`
		Timestamp string  `json:"timestamp"`
		Heuristic string  `json:"heuristic"`
		Occupancy float64 `json:"occupancy"`
	} `json:"meta"`
	Image   string                `json:"image"`
	Size    sizeJSON              `json:"size"`
	Sprites map[string]SpriteInfo `json:"sprites"`
}

// imageBBox returns the bounds of the pixels whose alpha is above threshold.
// A fully transparent image yields an empty rectangle.
func imageBBox(img image.Image, threshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	mark := func(x, y int) {
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > threshold {
					mark(x, y)
				}
				i += 4
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > threshold {
					mark(x, y)
				}
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if uint8(a>>8) > threshold {
					mark(x, y)
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// scanSprites lists the PNG files of dir in natural file name order.
func scanSprites(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PNG images found in %s", dir)
	}
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}

// loadSprites decodes every path concurrently. When trim is set the packed
// region shrinks to the non-transparent pixels; a fully transparent image keeps
// a single pixel.
func loadSprites(paths []string, trim bool, threshold uint8) ([]sprite, error) {
	sprites := make([]sprite, len(paths))
	err := parallel(len(paths), func(i int) error {
		img, err := imaging.Open(paths[i])
		if err != nil {
			return fmt.Errorf("decode %s: %w", paths[i], err)
		}
		bounds := img.Bounds()
		region := bounds
		if trim {
			region = imageBBox(img, threshold)
			if region.Empty() {
				region = image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+1, bounds.Min.Y+1)
			}
		}
		sprites[i] = sprite{path: paths[i], img: img, trim: region}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sprites, nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// composeAtlas draws every packed sprite at its rectangle. Rotated sprites are
// turned 90 degrees clockwise.
func composeAtlas(rects []rectpack.Rect, sprites []sprite, size rectpack.Size) *image.NRGBA {
	dst := imaging.New(size.Width, size.Height, color.NRGBA{0, 0, 0, 0})
	for _, r := range rects {
		s := sprites[r.ID]
		region := imaging.Crop(s.img, s.trim)
		if r.Rotated {
			region = imaging.Rotate270(region)
		}
		draw.Draw(dst, image.Rect(r.X, r.Y, r.Right(), r.Bottom()), region, image.Point{}, draw.Src)
	}
	return dst
}

func spriteInfo(r rectpack.Rect, s sprite) SpriteInfo {
	bounds := s.img.Bounds()
	info := SpriteInfo{
		Filename:   filepath.Base(s.path),
		Region:     rectJSON{X: r.X, Y: r.Y, W: r.Width, H: r.Height},
		SourceSize: sizeJSON{W: bounds.Dx(), H: bounds.Dy()},
		Rotated:    r.Rotated,
	}
	if s.trim != bounds {
		info.Trimmed = true
		info.SourceRect = &rectJSON{
			X: s.trim.Min.X - bounds.Min.X,
			Y: s.trim.Min.Y - bounds.Min.Y,
			W: s.trim.Dx(),
			H: s.trim.Dy(),
		}
	}
	return info
}

func writeAtlasData(path string, data *AtlasData) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0644)
}

// runAtlas packs the sprites of inputDir into a single atlas and writes the
// image and its metadata to outputDir. Sprites that do not fit are reported and
// left out.
func runAtlas(cfg Config, inputDir, outputDir string, debug *log.Logger) (int, error) {
	if err := cfg.validate(); err != nil {
		return exitError, err
	}
	start := time.Now()
	paths, err := scanSprites(inputDir)
	if err != nil {
		return exitError, err
	}
	debug.Printf("found %d images in %s", len(paths), inputDir)

	sprites, err := loadSprites(paths, cfg.Trim, uint8(cfg.Threshold))
	if err != nil {
		return exitError, err
	}
	items := make([]rectpack.Item, len(sprites))
	for i, s := range sprites {
		items[i] = rectpack.NewItem(i, s.trim.Dx(), s.trim.Dy())
	}
	debug.Printf("decoded images in %v", time.Since(start))

	packer, err := cfg.newPacker()
	if err != nil {
		return exitError, err
	}
	packStart := time.Now()
	if err := packItems(packer, items); err != nil {
		return exitError, err
	}
	debug.Printf("packed %d of %d sprites in %v, occupancy %.2f%%", len(packer.Rects()), len(items), time.Since(packStart), packer.Used(true)*100)

	code := exitOK
	for _, item := range packer.Unpacked() {
		debug.Printf("does not fit: %s (%dx%d)", filepath.Base(sprites[item.ID].path), item.Width, item.Height)
		code = exitUnplaced
	}
	if len(packer.Rects()) == 0 {
		return exitUnplaced, errors.New("no sprite fits into the atlas")
	}

	size := packer.Size()
	if cfg.PowerOfTwo {
		size.Width = nextPowerOfTwo(size.Width)
		size.Height = nextPowerOfTwo(size.Height)
	}
	atlas := composeAtlas(packer.Rects(), sprites, size)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return exitError, err
	}
	if err := imaging.Save(atlas, filepath.Join(outputDir, atlasImageName)); err != nil {
		return exitError, err
	}

	data := &AtlasData{
		Image:   atlasImageName,
		Size:    sizeJSON{W: size.Width, H: size.Height},
		Sprites: make(map[string]SpriteInfo, len(packer.Rects())),
	}
	data.Meta.Version = VERSION
	data.Meta.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	data.Meta.Heuristic = cfg.Heuristic.String()
	data.Meta.Occupancy = packer.Used(true)
	for _, r := range packer.Rects() {
		info := spriteInfo(r, sprites[r.ID])
		data.Sprites[info.Filename] = info
	}
	if err := writeAtlasData(filepath.Join(outputDir, atlasDataName), data); err != nil {
		return exitError, err
	}
	debug.Printf("wrote %s in %v", filepath.Join(outputDir, atlasImageName), time.Since(start))
	if code != exitOK {
		return code, fmt.Errorf("%d of %d sprites do not fit into %dx%d", len(packer.Unpacked()), len(items), cfg.Width, cfg.Height)
	}
	return code, nil
}
