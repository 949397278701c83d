// Package render turns a scene into an image by sphere tracing one ray per
// pixel. Rows are rendered in parallel; the scene is never mutated, so the
// workers share it without locking.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/mtarnawa/sdfray/pkg/scene"
)

// Render produces an image of the scene. Pixels whose ray never reaches a
// surface are fully transparent, so icons composite cleanly over any UI
// background. Cancellation is checked between rows; a canceled context
// returns the context's error and no image.
func Render(ctx context.Context, s *scene.Scene, cfg Settings) (*image.NRGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("render: invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if errs := s.Validate(); scene.HasBlockingErrors(errs) {
		return nil, fmt.Errorf("render: scene is not renderable: %v", errs)
	}

	vp := newViewport(s.Camera, cfg.Width, cfg.Height)
	img := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				renderRow(s, vp, cfg, img, y)
			}
		}()
	}

	var err error
feed:
	for y := 0; y < cfg.Height; y++ {
		select {
		case rows <- y:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(rows)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return img, nil
}

func renderRow(s *scene.Scene, vp viewport, cfg Settings, img *image.NRGBA, y int) {
	for x := 0; x < cfg.Width; x++ {
		hit := march(s, vp.rayThrough(x, y), cfg)
		if !hit.Hit {
			img.SetNRGBA(x, y, cfg.Background)
			continue
		}
		c := shade(hit, s.Lighting)
		img.SetNRGBA(x, y, color.NRGBA{
			R: toByte(c.X),
			G: toByte(c.Y),
			B: toByte(c.Z),
			A: 255,
		})
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
