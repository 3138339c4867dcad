package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// parallel runs fn for every index in [0, n) on at most runtime.NumCPU
// goroutines and returns the first error reported.
func parallel(n int, fn func(i int) error) error {
	workers := min(runtime.NumCPU(), n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	next := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := fn(i); err != nil {
					once.Do(func() { first = err })
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
	return first
}

func readAtlasData(path string) (*AtlasData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas data: %w", err)
	}
	var data AtlasData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse atlas data %s: %w", path, err)
	}
	return &data, nil
}

// extractSprite cuts info's region out of atlas and undoes rotation and trimming.
func extractSprite(atlas image.Image, info SpriteInfo) *image.NRGBA {
	region := image.Rect(info.Region.X, info.Region.Y, info.Region.X+info.Region.W, info.Region.Y+info.Region.H)
	sub := imaging.Crop(atlas, region.Add(atlas.Bounds().Min))
	if info.Rotated {
		sub = imaging.Rotate90(sub)
	}
	if info.Trimmed && info.SourceRect != nil {
		canvas := imaging.New(info.SourceSize.W, info.SourceSize.H, color.NRGBA{0, 0, 0, 0})
		sub = imaging.Paste(canvas, sub, image.Pt(info.SourceRect.X, info.SourceRect.Y))
	}
	return sub
}

// unpackAtlas 解包图集：把 atlas.json 描述的每个精灵图还原后写入 outputDir
func unpackAtlas(dataPath, outputDir string, debug *log.Logger) error {
	start := time.Now()
	data, err := readAtlasData(dataPath)
	if err != nil {
		return err
	}
	atlas, err := imaging.Open(filepath.Join(filepath.Dir(dataPath), data.Image))
	if err != nil {
		return fmt.Errorf("open atlas image: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	names := make([]string, 0, len(data.Sprites))
	for name := range data.Sprites {
		names = append(names, name)
	}
	sort.Strings(names)

	err = parallel(len(names), func(i int) error {
		info := data.Sprites[names[i]]
		out := filepath.Join(outputDir, filepath.Base(names[i]))
		if err := imaging.Save(extractSprite(atlas, info), out); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	debug.Printf("unpacked %d sprites to %s in %v", len(names), outputDir, time.Since(start))
	return nil
}
