/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderPNG rasterizes the sheet at one pixel per unit.
func RenderPNG(s Sheet) *image.RGBA {
	pal := PaletteFor(s.Options.Theme)
	blocks, height := s.layout()
	img := image.NewRGBA(image.Rect(0, 0, int(sheetWidth), int(math.Ceil(height))))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pal.Background}, image.Point{}, draw.Src)

	drawText(img, int(margin), int(margin)+16, s.Title, pal.Text)
	for _, b := range blocks {
		y := int(math.Round(b.y))
		switch b.kind {
		case blockSection:
			drawText(img, int(margin), y+18, b.text, pal.Text)
			fillRect(img, int(margin), y+24, int(sheetWidth-margin), y+24, pal.Muted)
		case blockRow:
			r := b.row
			drawText(img, int(margin)+8, y+12, r.Title, pal.Text)
			drawText(img, int(margin)+8, y+26, rowCaption(r), pal.Muted)
			top := y + int((rowH-barH)/2)
			for _, sr := range segments(r, pal) {
				x0 := int(math.Round(sr.x))
				x1 := int(math.Round(sr.x+sr.w)) - 1
				fillRect(img, x0, top, x1, top+int(barH)-1, sr.col)
			}
			bx := int(barX())
			bw := int(barW())
			strokeRect(img, bx, top, bx+bw-1, top+int(barH)-1, pal.Muted)
			if s.Options.Guides {
				for i := 1; i < 10; i++ {
					gx := bx + bw*i/10
					fillRect(img, gx, top+int(barH), gx, top+int(barH)+3, pal.Muted)
				}
			}
			if r.Total > 0 {
				drawText(img, bx+bw+8, top+10, fmt.Sprintf("%d", r.Total), pal.Muted)
			}
		}
	}
	return img
}

// WritePNG encodes the rendered sheet to w.
func WritePNG(w io.Writer, s Sheet) error {
	if err := png.Encode(w, RenderPNG(s)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// drawText draws s with its baseline at y.
func drawText(img *image.RGBA, x, y int, s string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
