// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/transform"
)

// maxImageWidth bounds the written image; larger back buffers are scaled.
const maxImageWidth = 1280

var (
	background = color.RGBA{0x14, 0x14, 0x18, 0xff}
	regionTint = color.RGBA{0x30, 0x60, 0x30, 0xff}
	fullColor  = color.RGBA{0x60, 0x60, 0x70, 0xff}
	boxColor   = color.RGBA{0xf0, 0xa0, 0x20, 0xff}
)

type viewportCount struct {
	vp    render.Viewport
	draws int
}

// countViewports groups the recorded draws by viewport, most used first.
func countViewports(draws []render.DrawRecord) []viewportCount {
	idx := make(map[render.Viewport]int)
	var out []viewportCount
	for _, d := range draws {
		vp := d.Viewport
		vp.MinZ, vp.MaxZ = 0, 0
		i, ok := idx[vp]
		if !ok {
			i = len(out)
			idx[vp] = i
			out = append(out, viewportCount{vp: vp})
		}
		out[i].draws++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].draws > out[b].draws })
	return out
}

// renderViewports draws the outline of every viewport the recorder saw,
// labelled with its draw count, over the centered UI region.
func renderViewports(rec *render.Recorder, p transform.Params) image.Image {
	w, h := int(p.NativeWidth), int(p.NativeHeight)
	if w <= 0 || h <= 0 {
		full := rec.Viewport
		w, h = int(full.X+full.Width), int(full.Y+full.Height)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if p.Active() {
		region := image.Rect(int(p.OffsetX), 0, int(p.OffsetX)+transform.RegionWidth(uint32(h)), h)
		draw.Draw(canvas, region, image.NewUniform(regionTint), image.Point{}, draw.Src)
	}

	d := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.White), Face: basicfont.Face7x13}
	for _, c := range countViewports(rec.Draws) {
		r := image.Rect(int(c.vp.X), int(c.vp.Y), int(c.vp.X+c.vp.Width), int(c.vp.Y+c.vp.Height))
		col := boxColor
		if r == canvas.Bounds() {
			col = fullColor
		}
		outline(canvas, r, col, 3)
		d.Dot = fixed.P(r.Min.X+6, r.Min.Y+16)
		d.DrawString(fmt.Sprintf("%dx%d+%d+%d  %d draws", c.vp.Width, c.vp.Height, c.vp.X, c.vp.Y, c.draws))
	}

	if w <= maxImageWidth {
		return canvas
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h*maxImageWidth/w))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst
}

func outline(dst draw.Image, r image.Rectangle, c color.Color, width int) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("adreplay: encode %s: %w", path, err)
	}
	return f.Close()
}
