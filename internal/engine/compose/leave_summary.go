package compose

import (
	"strconv"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/locale"
	"saraban-stamp/internal/engine/textlayout"
	"saraban-stamp/internal/infrastructure/document"
)

const (
	summaryMargin       = 56.0
	summaryEmblemSize   = 40.0
	summaryHeadingSize  = 24.0
	summaryBodySize     = 16.0
	summaryLineHeight   = 20.0
	summaryTableSize    = 14.0
	summaryHeaderHeight = 24.0
	summaryRowHeight    = 20.0
	summarySignature    = 110.0
	summaryIndent       = 56.0
)

// SummaryColumn is one fixed column of the summary table.
type SummaryColumn struct {
	Title string
	Width float64
}

// SummaryColumns are the table columns; their widths span A4 between the margins.
var SummaryColumns = []SummaryColumn{
	{"ลำดับ", 30},
	{"ชื่อ-สกุล", 135},
	{"ตำแหน่ง", 105},
	{"ลาป่วย", 43},
	{"ลากิจ", 43},
	{"ลาพักผ่อน", 43},
	{"ลาคลอด", 43},
	{"รวม", 41.28},
}

// Placement is a vertical position on a 1-based page.
type Placement struct {
	Page int
	Y    float64 // top edge
}

// SummaryPlan is the pagination of a summary report, computed before drawing.
type SummaryPlan struct {
	Pages     int
	Intro     []Placement // baselines of the intro paragraph lines
	Headers   []Placement // one table header per page that carries rows
	Rows      []Placement
	Signature Placement
}

// PlanSummary paginates a report whose intro paragraph of introLines lines
// starts with its first baseline at introTop on the first page, followed by
// rows table rows. Intro lines past the bottom threshold continue on a new
// page. The table header starts where the intro ends if it fits there together
// with one row, otherwise on a fresh page. A row that would cross the bottom
// threshold moves to a new page, which first gets a repeated table header. The
// signature block moves to a new page when it does not fit under the last row.
func PlanSummary(page document.PageSize, introTop float64, introLines, rows int) SummaryPlan {
	bottom := page.Height - summaryMargin
	plan := SummaryPlan{Pages: 1}

	y := introTop
	for i := 0; i < introLines; i++ {
		if y > bottom {
			plan.Pages++
			y = summaryMargin + summaryLineHeight
		}
		plan.Intro = append(plan.Intro, Placement{Page: plan.Pages, Y: y})
		y += summaryLineHeight
	}

	need := summaryHeaderHeight
	if rows > 0 {
		need += summaryRowHeight
	}
	if y+need > bottom {
		plan.Pages++
		y = summaryMargin
	}
	plan.Headers = append(plan.Headers, Placement{Page: plan.Pages, Y: y})
	y += summaryHeaderHeight

	for i := 0; i < rows; i++ {
		if y+summaryRowHeight > bottom {
			plan.Pages++
			plan.Headers = append(plan.Headers, Placement{Page: plan.Pages, Y: summaryMargin})
			y = summaryMargin + summaryHeaderHeight
		}
		plan.Rows = append(plan.Rows, Placement{Page: plan.Pages, Y: y})
		y += summaryRowHeight
	}

	if y+summarySignature > bottom {
		plan.Pages++
		y = summaryMargin
	}
	plan.Signature = Placement{Page: plan.Pages, Y: y}
	return plan
}

// SummaryImages are the raw optional images of a summary report.
type SummaryImages struct {
	Emblem            []byte
	ApproverSignature []byte
}

// memoIntroTop is the first intro baseline, below the memo header.
const memoIntroTop = summaryMargin + summaryEmblemSize + 5*summaryLineHeight + 10

func wrapIntro(env Env, req *entity.LeaveSummaryRequest) []string {
	width := env.pageSize().Width - 2*summaryMargin
	return textlayout.WrapIndented(req.Intro, width-summaryIndent, width, summaryBodySize, env.Measurer)
}

// StaffTotal sums every leave count of a staff record.
func StaffTotal(r entity.StaffLeaveRecord) float64 {
	var total float64
	for _, v := range r.Counts {
		total += v
	}
	return total
}

// ComposeLeaveSummary draws the leave summary report onto new pages of c and
// returns the pagination it followed.
func ComposeLeaveSummary(c document.Canvas, env Env, req *entity.LeaveSummaryRequest, images SummaryImages) SummaryPlan {
	size := env.pageSize()
	intro := wrapIntro(env, req)
	plan := PlanSummary(size, memoIntroTop, len(intro), len(req.Staff))

	pages := make([]document.Surface, plan.Pages)
	for i := range pages {
		pages[i] = c.AddPage(size)
	}
	on := func(n int) pen {
		return pen{s: pages[n-1], m: env.Measurer, ink: env.Ink, size: summaryBodySize}
	}

	drawMemo(c, env, on(1), req, images.Emblem)
	for i, at := range plan.Intro {
		x := summaryMargin
		if i == 0 {
			x += summaryIndent
		}
		on(at.Page).left(x, at.Y, intro[i])
	}

	for _, h := range plan.Headers {
		drawSummaryRow(on(h.Page).withSize(summaryTableSize), h.Y, summaryHeaderHeight, summaryHeader(), true)
	}
	for i, r := range plan.Rows {
		drawSummaryRow(on(r.Page).withSize(summaryTableSize), r.Y, summaryRowHeight, summaryCells(i, req.Staff[i], req.LocalizedDigits), false)
	}

	p := on(plan.Signature.Page)
	cx := summaryMargin + (size.Width-2*summaryMargin)*0.7
	y := plan.Signature.Y + 20 + signatureHeight
	sig := env.embed(c, images.ApproverSignature, "approver signature")
	signature(p.s, sig, cx, y, signatureWidth, signatureHeight, req.SignatureScale, req.SignatureYOffset)
	y += summaryLineHeight - 2
	p.center(cx, y, "("+req.ApproverName+")")
	y += summaryLineHeight
	p.center(cx, y, req.ApproverTitle)
	return plan
}

// drawMemo draws the memo header of the first page, down to the salutation.
func drawMemo(c document.Canvas, env Env, p pen, req *entity.LeaveSummaryRequest, emblemData []byte) {
	size := env.pageSize()
	left := summaryMargin
	right := size.Width - summaryMargin
	loc := req.LocalizedDigits

	emblem := env.embed(c, emblemData, "emblem")
	signature(p.s, emblem, left+summaryEmblemSize/2, summaryMargin+summaryEmblemSize, summaryEmblemSize, summaryEmblemSize, 1, 0)
	p.withSize(summaryHeadingSize).center(size.Width/2, summaryMargin+30, "บันทึกข้อความ")

	y := summaryMargin + summaryEmblemSize + summaryLineHeight
	p.fit(left, y, right-left, "ส่วนราชการ  "+req.OrgName)
	y += summaryLineHeight
	p.left(left, y, "ที่  "+locale.Digits(req.ReferenceNo, loc))
	p.left(size.Width/2, y, "วันที่  "+locale.FormatDate(req.ReportDate.Time, loc))
	y += summaryLineHeight
	p.fit(left, y, right-left, "เรื่อง  สรุปการลาของบุคลากร "+locale.Digits(req.Period, loc))
	p.s.Line(left, y+8, right, y+8, 0.5, p.ink)
	y += summaryLineHeight + 10
	p.left(left, y, "เรียน  "+req.Addressee)
}

func summaryHeader() []string {
	cells := make([]string, len(SummaryColumns))
	for i, col := range SummaryColumns {
		cells[i] = col.Title
	}
	return cells
}

func summaryCells(i int, r entity.StaffLeaveRecord, loc bool) []string {
	count := func(types ...entity.LeaveType) string {
		var v float64
		for _, t := range types {
			v += r.Counts[t]
		}
		return locale.Number(v, loc)
	}
	return []string{
		locale.Digits(strconv.Itoa(i+1), loc),
		r.Name,
		r.Title,
		count(entity.LeaveSick),
		count(entity.LeavePersonal, entity.LeaveHourly),
		count(entity.LeaveVacation),
		count(entity.LeaveMaternity),
		locale.Number(StaffTotal(r), loc),
	}
}

// drawSummaryRow draws one table row with its top edge at top. Name and title
// cells are left-aligned and shrunk to fit; the others are centered.
func drawSummaryRow(p pen, top, height float64, cells []string, header bool) {
	style := document.BoxStyle{Border: p.ink, BorderWidth: 0.5}
	if header {
		shade := document.Color{R: 230, G: 230, B: 230}
		style.Fill = &shade
	}
	baseline := top + height/2 + p.size*0.35
	x := summaryMargin
	for i, col := range SummaryColumns {
		p.s.Rect(x, top, col.Width, height, style)
		if !header && (i == 1 || i == 2) {
			p.fit(x+4, baseline, col.Width-8, cells[i])
		} else {
			p.center(x+col.Width/2, baseline, cells[i])
		}
		x += col.Width
	}
}
