package compose

import (
	"fmt"
	"strings"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/locale"
	"saraban-stamp/internal/engine/textlayout"
	"saraban-stamp/internal/infrastructure/document"
)

const (
	formMarginLeft  = 85.0
	formMarginRight = 57.0
	formTop         = 36.0
	formEmblemSize  = 56.0
	formTitleSize   = 20.0
	formBodySize    = 16.0
	formLineHeight  = 20.0
	formIndent      = 56.0
	formGap         = 10.0
	formMinBodySize = 8.0

	formSmallSize   = 14.0
	formSmallLine   = 18.0
	statsColumnGap  = 25.0
	statsLabelWidth = 85.0
	statsValueWidth = 45.0
	statsRowHeight  = 20.0

	signatureWidth  = 100.0
	signatureHeight = 32.0
	checkboxSide    = 10.0

	dottedSignature = "ลงชื่อ......................................."
)

// LeaveFormImages are the raw optional images of a leave form. Emblem should
// already hold the default emblem when the request carried none.
type LeaveFormImages struct {
	Emblem             []byte
	RequesterSignature []byte
	ApproverSignature  []byte
}

// leaveFormLayout is the text of a leave form wrapped to its columns at one
// body size. Line heights scale with the size.
type leaveFormLayout struct {
	size        float64
	lineHeight  float64
	intro       []string
	request     []string
	lastLeave   []string
	contact     []string
	commentSize float64
	commentLine float64
	comment     []string
	statsRows   []entity.LeaveType
}

// LeaveFormTitle is the heading printed for a leave type.
func LeaveFormTitle(t entity.LeaveType) string {
	if t == entity.LeaveVacation {
		return "แบบใบลาพักผ่อน"
	}
	return "แบบใบลาป่วย ลาคลอดบุตร ลากิจส่วนตัว"
}

// StatisticsRows lists the leave types shown in the statistics table of a form.
func StatisticsRows(t entity.LeaveType) []entity.LeaveType {
	switch t {
	case entity.LeaveVacation:
		return []entity.LeaveType{entity.LeaveVacation}
	case entity.LeaveHourly:
		return []entity.LeaveType{entity.LeaveHourly}
	default:
		return []entity.LeaveType{entity.LeaveSick, entity.LeavePersonal, entity.LeaveMaternity}
	}
}

func layoutLeaveForm(env Env, req *entity.LeaveFormRequest, size float64) leaveFormLayout {
	m := env.Measurer
	scale := size / formBodySize
	width := env.pageSize().Width - formMarginLeft - formMarginRight
	loc := req.LocalizedDigits
	kind := req.LeaveType.ThaiName()

	intro := "ข้าพเจ้า " + req.Name + " ตำแหน่ง " + req.Title + " สังกัด " + req.OrgName

	var request strings.Builder
	request.WriteString("ขอ" + kind)
	if req.Reason != "" {
		request.WriteString(" เนื่องจาก " + req.Reason)
	}
	request.WriteString(" ตั้งแต่วันที่ " + locale.FormatDate(req.StartDate.Time, loc))
	request.WriteString(" ถึงวันที่ " + locale.FormatDate(req.EndDate.Time, loc))
	if req.LeaveType.TimeScoped() {
		request.WriteString(" เวลา " + locale.Digits(req.StartTime, loc) + " น. ถึงเวลา " + locale.Digits(req.EndTime, loc) + " น.")
	}
	request.WriteString(" มีกำหนด " + locale.Number(req.Days, loc) + " วัน")

	lastLeave := "ข้าพเจ้าได้" + kind + "ครั้งสุดท้ายตั้งแต่วันที่ " + locale.FormatDate(req.LastLeaveStart.Time, loc) +
		" ถึงวันที่ " + locale.FormatDate(req.LastLeaveEnd.Time, loc) +
		" มีกำหนด " + locale.Number(req.LastLeaveDays, loc) + " วัน"

	contact := "ในระหว่างลาจะติดต่อข้าพเจ้าได้ที่ " + locale.Digits(req.Contact, loc)

	_, approverWidth := approverColumn(env)
	commentSize := formSmallSize * scale
	return leaveFormLayout{
		size:        size,
		lineHeight:  formLineHeight * scale,
		intro:       textlayout.WrapIndented(intro, width-formIndent, width, size, m),
		request:     textlayout.Wrap(request.String(), width, size, m),
		lastLeave:   textlayout.Wrap(lastLeave, width, size, m),
		contact:     textlayout.Wrap(contact, width, size, m),
		commentSize: commentSize,
		commentLine: formSmallLine * scale,
		comment:     textlayout.Wrap(req.ApproverComment, approverWidth, commentSize, m),
		statsRows:   StatisticsRows(req.LeaveType),
	}
}

// approverColumn is the x and width of the approver block at the bottom right.
func approverColumn(env Env) (x, width float64) {
	x = formMarginLeft + statsLabelWidth + 3*statsValueWidth + statsColumnGap
	return x, env.pageSize().Width - formMarginRight - x
}

// formImages are the images of a leave form, embedded once ahead of layout.
type formImages struct {
	emblem    document.ImageResult
	requester document.ImageResult
	approver  document.ImageResult
}

// extent is a surface that only tracks how far down the page anything reaches.
type extent struct {
	size   document.PageSize
	bottom float64
}

func (e *extent) Size() document.PageSize { return e.size }

func (e *extent) Text(_, y, _ float64, _ document.Color, _ string) { e.reach(y) }

func (e *extent) Rect(_, y, _, h float64, _ document.BoxStyle) { e.reach(y + h) }

func (e *extent) Line(_, y1, _, y2, _ float64, _ document.Color) { e.reach(max(y1, y2)) }

func (e *extent) Image(_ document.Image, _, y, _, h float64) { e.reach(y + h) }

func (e *extent) reach(y float64) {
	if y > e.bottom {
		e.bottom = y
	}
}

// ComposeLeaveForm draws a leave request form on a new page of c. When the
// text runs past the bottom margin the body paragraphs are set smaller, down to
// formMinBodySize; a form that still does not fit is rejected with
// entity.ErrInvalidRequest before any page is added.
func ComposeLeaveForm(c document.Canvas, env Env, req *entity.LeaveFormRequest, images LeaveFormImages) error {
	size := env.pageSize()
	bottom := size.Height - formTop

	imgs := formImages{
		emblem:    env.embed(c, images.Emblem, "emblem"),
		requester: env.embed(c, images.RequesterSignature, "requester signature"),
		approver:  document.NoImage(),
	}
	if req.Outcome == entity.OutcomeApproved {
		imgs.approver = env.embed(c, images.ApproverSignature, "approver signature")
	}

	for body := formBodySize; body >= formMinBodySize; body -= 0.5 {
		layout := layoutLeaveForm(env, req, body)
		ext := &extent{size: size}
		drawLeaveForm(ext, env, req, layout, imgs)
		if ext.bottom <= bottom {
			drawLeaveForm(c.AddPage(size), env, req, layout, imgs)
			return nil
		}
	}
	return fmt.Errorf("%w: leave form text does not fit on one page", entity.ErrInvalidRequest)
}

func drawLeaveForm(s document.Surface, env Env, req *entity.LeaveFormRequest, layout leaveFormLayout, imgs formImages) {
	size := s.Size()
	p := pen{s: s, m: env.Measurer, ink: env.Ink, size: formBodySize}
	loc := req.LocalizedDigits

	left := formMarginLeft
	right := size.Width - formMarginRight
	cx := size.Width / 2

	signature(s, imgs.emblem, cx, formTop+formEmblemSize, formEmblemSize, formEmblemSize, 1, 0)

	y := formTop + formEmblemSize + 28
	p.withSize(formTitleSize).center(cx, y, LeaveFormTitle(req.LeaveType))

	y += formLineHeight + formGap
	p.right(right, y, "เขียนที่ "+req.WrittenAt)
	y += formLineHeight
	p.right(right, y, "วันที่ "+locale.FormatDate(req.WrittenDate.Time, loc))

	y += formLineHeight + formGap
	p.left(left, y, "เรื่อง  ขอ"+req.LeaveType.ThaiName())
	y += formLineHeight
	p.left(left, y, "เรียน  "+req.Addressee)

	y += formLineHeight + formGap
	body := p.withSize(layout.size)
	y = body.lines(left, y, formIndent, layout.lineHeight, layout.intro)
	y = body.lines(left, y, 0, layout.lineHeight, layout.request)
	y = body.lines(left, y, 0, layout.lineHeight, layout.lastLeave)
	y = body.lines(left, y, 0, layout.lineHeight, layout.contact)
	p.left(left+formIndent, y, "จึงเรียนมาเพื่อโปรดพิจารณา")

	// Requester signature block, centered on the right half.
	sigX := left + (right-left)*0.7
	y += formLineHeight + signatureHeight
	if !signature(s, imgs.requester, sigX, y-4, signatureWidth, signatureHeight, 1, 0) {
		p.center(sigX, y, dottedSignature)
	}
	y += formLineHeight
	p.center(sigX, y, "("+req.Name+")")
	y += formLineHeight
	p.center(sigX, y, "ตำแหน่ง "+req.Title)

	y += formLineHeight + formGap
	drawStatistics(p.withSize(formSmallSize), left, y, layout.statsRows, req)
	drawApprover(env, p.withSize(formSmallSize), y, layout, req, imgs.approver)
}

// drawStatistics draws the leave statistics table with its heading baseline at y.
func drawStatistics(p pen, x, y float64, rows []entity.LeaveType, req *entity.LeaveFormRequest) {
	loc := req.LocalizedDigits
	p.left(x, y, "สถิติการลาในปีงบประมาณนี้")

	columns := []float64{statsLabelWidth, statsValueWidth, statsValueWidth, statsValueWidth}
	header := []string{"ประเภทการลา", "ลามาแล้ว", "ลาครั้งนี้", "รวมเป็น"}
	top := y + formSmallLine/2

	row := func(top float64, cells []string) {
		cx := x
		for i, w := range columns {
			p.s.Rect(cx, top, w, statsRowHeight, document.BoxStyle{Border: p.ink, BorderWidth: 0.5})
			p.center(cx+w/2, top+statsRowHeight-6, cells[i])
			cx += w
		}
	}

	row(top, header)
	for _, t := range rows {
		top += statsRowHeight
		stat := req.Statistics[t]
		row(top, []string{
			t.ThaiName(),
			locale.Number(stat.Prior, loc),
			locale.Number(stat.ThisTime, loc),
			locale.Number(stat.Cumulative, loc),
		})
	}
}

// drawApprover draws the approver's opinion, the approve/reject checkboxes and
// the approver identity. The signature is drawn only for an approved request.
func drawApprover(env Env, p pen, y float64, layout leaveFormLayout, req *entity.LeaveFormRequest, sig document.ImageResult) {
	x, width := approverColumn(env)
	cx := x + width/2
	loc := req.LocalizedDigits

	p.left(x, y, "ความเห็นผู้บังคับบัญชา")
	y += formSmallLine
	y = p.withSize(layout.commentSize).lines(x, y, 0, layout.commentLine, layout.comment)

	for _, choice := range []struct {
		label   string
		outcome entity.ApprovalOutcome
	}{
		{"อนุญาต", entity.OutcomeApproved},
		{"ไม่อนุญาต", entity.OutcomeRejected},
	} {
		document.Checkbox(p.s, x, y-checkboxSide, checkboxSide, req.Outcome == choice.outcome, p.ink)
		p.left(x+checkboxSide+6, y, choice.label)
		y += formSmallLine
	}

	y += signatureHeight
	drawn := false
	if req.Outcome == entity.OutcomeApproved {
		drawn = signature(p.s, sig, cx, y-4, signatureWidth, signatureHeight, 1, 0)
	}
	if !drawn {
		p.center(cx, y, dottedSignature)
	}
	y += formSmallLine
	p.center(cx, y, "("+req.ApproverName+")")
	y += formSmallLine
	p.center(cx, y, "ตำแหน่ง "+req.ApproverTitle)
	y += formSmallLine
	p.center(cx, y, "วันที่ "+locale.FormatDate(req.ApprovalDate.Time, loc))
}
