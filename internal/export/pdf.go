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
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the sheet as a single vector page sized to its content.
// Units are points; built-in Helvetica keeps text vector without embedding.
func WritePDF(w io.Writer, s Sheet) error {
	pal := PaletteFor(s.Options.Theme)
	blocks, height := s.layout()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sheetWidth, Ht: height},
	})
	pdf.SetTitle(s.Title, true)
	pdf.SetAuthor("lottiegrid", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	setFillColor(pdf, pal.Background)
	pdf.Rect(0, 0, sheetWidth, height, "F")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 16)
	setTextColor(pdf, pal.Text)
	pdf.Text(margin, margin+16, tr(s.Title))

	for _, b := range blocks {
		switch b.kind {
		case blockSection:
			pdf.SetFont("Helvetica", "B", 12)
			setTextColor(pdf, pal.Text)
			pdf.Text(margin, b.y+18, tr(b.text))
			setDrawColor(pdf, pal.Muted)
			pdf.SetLineWidth(0.5)
			pdf.Line(margin, b.y+24, sheetWidth-margin, b.y+24)
		case blockRow:
			r := b.row
			pdf.SetFont("Helvetica", "", 10)
			setTextColor(pdf, pal.Text)
			pdf.Text(margin+8, b.y+12, tr(r.Title))
			pdf.SetFont("Helvetica", "", 8)
			setTextColor(pdf, pal.Muted)
			pdf.Text(margin+8, b.y+26, tr(rowCaption(r)))

			top := b.y + (rowH-barH)/2
			for _, sr := range segments(r, pal) {
				setFillColor(pdf, sr.col)
				pdf.Rect(sr.x, top, sr.w, barH, "F")
			}
			setDrawColor(pdf, pal.Muted)
			pdf.SetLineWidth(0.5)
			pdf.Rect(barX(), top, barW(), barH, "D")
			if s.Options.Guides {
				for i := 1; i < 10; i++ {
					gx := barX() + barW()*float64(i)/10
					pdf.Line(gx, top+barH, gx, top+barH+3)
				}
			}
			if r.Total > 0 {
				pdf.Text(barX()+barW()+8, top+9, fmt.Sprintf("%d", r.Total))
			}
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
