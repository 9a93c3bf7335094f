package biweekly

import (
	"math"
	"sort"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// pageChar is one character with its bounding box, in top-left origin page
// coordinates.
type pageChar struct {
	text           rune
	x0, y0, x1, y1 float64
}

// Extractor pulls ruled tables out of report PDFs using pdfium. It is the
// page/table extraction collaborator for the walker: pdfium supplies the
// character boxes and rule-line path objects, the geometry pass turns them
// into cell lattices.
type Extractor struct {
	instance pdfium.Pdfium
	settings ExtractSettings
}

// NewExtractor returns an extractor with the fixed report tolerances.
func NewExtractor(instance pdfium.Pdfium) *Extractor {
	return &Extractor{
		instance: instance,
		settings: DefaultExtractSettings(),
	}
}

// ExtractDocument extracts the tables of every page of a PDF, in page order.
// Pages without ruled tables contribute an empty slice.
func (e *Extractor) ExtractDocument(pdfBytes []byte) ([][]RawTable, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	pages := make([][]RawTable, 0, pageCount.PageCount)
	for i := 0; i < pageCount.PageCount; i++ {
		pageResp, err := e.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
			Document: doc.Document,
			Index:    i,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load page %d", i+1)
		}

		tables, err := e.extractPage(pageResp.Page)
		e.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: pageResp.Page,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		pages = append(pages, tables)
	}

	return pages, nil
}

// extractPage finds the ruled tables of one page and reads their cell text.
func (e *Extractor) extractPage(page references.FPDF_PAGE) ([]RawTable, error) {
	widthResp, err := e.instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}
	heightResp, err := e.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}
	pageWidth := float64(widthResp.PageWidth)
	pageHeight := float64(heightResp.PageHeight)

	edges, err := e.extractRuleEdges(page, pageWidth, pageHeight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract rule lines")
	}
	if len(edges) == 0 {
		return nil, nil
	}

	chars, err := e.extractChars(page, pageHeight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract text")
	}

	edges = snapEdges(edges, e.settings.SnapTolerance)
	edges = joinEdges(edges, e.settings.JoinTolerance)
	edges = filterShortEdges(edges, e.settings.EdgeMinLength)

	crossings := intersections(edges, e.settings.IntersectionTolerance)
	cells := crossingsToCells(crossings)

	var tables []RawTable
	for _, group := range groupCellsIntoTables(cells) {
		if table := readTable(group, chars); len(table) > 0 {
			tables = append(tables, table)
		}
	}

	return tables, nil
}

// extractChars reads every character on the page with its bounding box,
// converted from PDF bottom-left origin to top-left origin.
func (e *Extractor) extractChars(page references.FPDF_PAGE, pageHeight float64) ([]pageChar, error) {
	textPage, err := e.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer e.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	countResp, err := e.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	chars := make([]pageChar, 0, countResp.Count)
	for i := 0; i < countResp.Count; i++ {
		unicodeResp, err := e.instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeResp.Unicode == 0 {
			continue
		}
		boxResp, err := e.instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}
		chars = append(chars, pageChar{
			text: rune(unicodeResp.Unicode),
			x0:   boxResp.Left,
			y0:   pageHeight - boxResp.Top,
			x1:   boxResp.Right,
			y1:   pageHeight - boxResp.Bottom,
		})
	}

	return chars, nil
}

// extractRuleEdges reads the page's path objects and keeps the horizontal and
// vertical rule segments, dropping page borders. Only explicit lines count:
// the reports draw their tables with visible rules, and text alignment alone
// is deliberately not trusted to invent boundaries.
func (e *Extractor) extractRuleEdges(page references.FPDF_PAGE, pageWidth, pageHeight float64) ([]edge, error) {
	countResp, err := e.instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, err
	}

	var edges []edge
	for i := 0; i < countResp.Count; i++ {
		objResp, err := e.instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  requests.Page{ByReference: &page},
			Index: i,
		})
		if err != nil {
			continue
		}

		typeResp, err := e.instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_PATH {
			continue
		}

		boundsResp, err := e.instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}

		x0 := float64(boundsResp.Left)
		y0 := pageHeight - float64(boundsResp.Top)
		x1 := float64(boundsResp.Right)
		y1 := pageHeight - float64(boundsResp.Bottom)

		segResp, err := e.instance.FPDFPath_CountSegments(&requests.FPDFPath_CountSegments{
			PageObject: objResp.PageObject,
		})
		if err != nil || segResp.Count < 2 {
			continue
		}

		if segResp.Count == 2 {
			// A two-segment path is a single stroke.
			if ln := strokeToEdge(x0, y0, x1, y1); ln != nil && !isPageBorder(*ln, pageWidth, pageHeight) {
				edges = append(edges, *ln)
			}
		} else {
			// Longer closed paths are cell rectangles; their bounds
			// contribute all four sides.
			for _, ln := range rectEdges(x0, y0, x1, y1) {
				if !isPageBorder(ln, pageWidth, pageHeight) {
					edges = append(edges, ln)
				}
			}
		}
	}

	return edges, nil
}

// strokeToEdge converts a simple stroke to an edge when it is close enough
// to horizontal or vertical.
func strokeToEdge(x0, y0, x1, y1 float64) *edge {
	width := x1 - x0
	height := y1 - y0
	if height < 2.0 && width > 1.0 {
		return &edge{x0: x0, x1: x1, top: y0, bottom: y1, vertical: false}
	}
	if width < 2.0 && height > 1.0 {
		return &edge{x0: x0, x1: x1, top: y0, bottom: y1, vertical: true}
	}
	return nil
}

// rectEdges explodes a rectangle's bounds into its four border edges.
func rectEdges(x0, y0, x1, y1 float64) []edge {
	return []edge{
		{x0: x0, x1: x1, top: y0, bottom: y0, vertical: false},
		{x0: x0, x1: x1, top: y1, bottom: y1, vertical: false},
		{x0: x0, x1: x0, top: y0, bottom: y1, vertical: true},
		{x0: x1, x1: x1, top: y0, bottom: y1, vertical: true},
	}
}

// isPageBorder reports whether an edge hugs the page boundary or spans
// nearly the whole page, which would make the entire page one giant table.
func isPageBorder(e edge, pageWidth, pageHeight float64) bool {
	const borderTolerance = 20.0
	const fullSpanThreshold = 0.90

	if !e.vertical {
		if e.top < borderTolerance || e.top > pageHeight-borderTolerance {
			return true
		}
		return e.length() > pageWidth*fullSpanThreshold
	}
	if e.x0 < borderTolerance || e.x0 > pageWidth-borderTolerance {
		return true
	}
	return e.length() > pageHeight*fullSpanThreshold
}

// readTable builds the dense text grid for one group of cells.
func readTable(cells []cellBox, chars []pageChar) RawTable {
	grid := cellGrid(cells)
	if len(grid) == 0 {
		return nil
	}

	table := make(RawTable, len(grid))
	for r, row := range grid {
		table[r] = make([]string, len(row))
		for c, cell := range row {
			if cell != nil {
				table[r][c] = cellText(*cell, chars)
			}
		}
	}
	return table
}

// cellText collects the characters whose centers fall inside the cell and
// rebuilds their reading order: lines top to bottom, characters left to
// right, with newlines between lines.
func cellText(cell cellBox, chars []pageChar) string {
	const tolerance = 1.0
	const lineBreakGap = 2.0

	var inside []pageChar
	for _, ch := range chars {
		cx := (ch.x0 + ch.x1) / 2
		cy := (ch.y0 + ch.y1) / 2
		if cx >= cell.x0-tolerance && cx <= cell.x1+tolerance &&
			cy >= cell.top-tolerance && cy <= cell.bottom+tolerance {
			inside = append(inside, ch)
		}
	}
	if len(inside) == 0 {
		return ""
	}

	sort.Slice(inside, func(i, j int) bool {
		if math.Abs(inside[i].y0-inside[j].y0) < lineBreakGap {
			return inside[i].x0 < inside[j].x0
		}
		return inside[i].y0 < inside[j].y0
	})

	text := make([]rune, 0, len(inside))
	for i, ch := range inside {
		if i > 0 && ch.y0-inside[i-1].y1 > lineBreakGap {
			text = append(text, '\n')
		}
		text = append(text, ch.text)
	}
	return string(text)
}
