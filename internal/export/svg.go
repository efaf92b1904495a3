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
	"bytes"
	"fmt"
	"image/color"
	"io"
)

// WriteSVG renders the sheet as an SVG document in point units.
func WriteSVG(w io.Writer, s Sheet) error {
	pal := PaletteFor(s.Options.Theme)
	blocks, height := s.layout()

	var buf bytes.Buffer
	wf := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
	}
	font := "Helvetica, Arial, sans-serif"

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", sheetWidth, height, sheetWidth, height)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", sheetWidth, height, svgColor(pal.Background))
	wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"16\" font-weight=\"bold\" fill=\"%s\">%s</text>\n",
		margin, margin+16, font, svgColor(pal.Text), escText(s.Title))

	for _, b := range blocks {
		switch b.kind {
		case blockSection:
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"12\" font-weight=\"bold\" fill=\"%s\">%s</text>\n",
				margin, b.y+18, font, svgColor(pal.Text), escText(b.text))
			wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.5\"/>\n",
				margin, b.y+24, sheetWidth-margin, b.y+24, svgColor(pal.Muted))
		case blockRow:
			r := b.row
			wf("  <g id=\"%s\">\n", escAttr(r.Card))
			wf("    <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"10\" fill=\"%s\">%s</text>\n",
				margin+8, b.y+12, font, svgColor(pal.Text), escText(r.Title))
			wf("    <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"8\" fill=\"%s\">%s</text>\n",
				margin+8, b.y+26, font, svgColor(pal.Muted), escText(rowCaption(r)))
			top := b.y + (rowH-barH)/2
			for _, sr := range segments(r, pal) {
				wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", sr.x, top, sr.w, barH, svgColor(sr.col))
			}
			wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\"/>\n",
				barX(), top, barW(), barH, svgColor(pal.Muted))
			if s.Options.Guides {
				for i := 1; i < 10; i++ {
					gx := barX() + barW()*float64(i)/10
					wf("    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.5\"/>\n",
						gx, top+barH, gx, top+barH+3, svgColor(pal.Muted))
				}
			}
			wf("  </g>\n")
		}
	}
	wf("</svg>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
