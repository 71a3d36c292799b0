// Package engine renders registry stamps, command stamps, leave forms and leave
// summary reports to PDF.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/codec"
	"saraban-stamp/internal/engine/compose"
	"saraban-stamp/internal/engine/fontface"
	"saraban-stamp/internal/engine/locale"
	"saraban-stamp/internal/engine/stamp"
	"saraban-stamp/internal/infrastructure/document"
)

// FontProvider supplies the parsed text font.
type FontProvider interface {
	Font(ctx context.Context) (*fontface.Font, error)
}

// EmblemSource supplies the default emblem used when a request carries none.
// It returns nil bytes when there is no default.
type EmblemSource interface {
	Emblem(ctx context.Context) ([]byte, error)
}

type Engine interface {
	StampReceiveNumber(ctx context.Context, req *entity.ReceiveNumberRequest) (*entity.RenderedDocument, error)
	StampCommand(ctx context.Context, req *entity.CommandStampRequest) (*entity.RenderedDocument, error)
	ComposeLeaveForm(ctx context.Context, req *entity.LeaveFormRequest) (*entity.RenderedDocument, error)
	ComposeLeaveSummary(ctx context.Context, req *entity.LeaveSummaryRequest) (*entity.RenderedDocument, error)
}

// Options configures rendering.
type Options struct {
	PageSize document.PageSize // for synthesized pages
	Style    stamp.Style
	Clock    func() time.Time // supplies default dates and the document timestamp
}

type engine struct {
	fonts   FontProvider
	emblems EmblemSource
	opts    Options
	logger  *zap.Logger
}

func New(fonts FontProvider, emblems EmblemSource, opts Options, logger *zap.Logger) Engine {
	if opts.PageSize.Width <= 0 || opts.PageSize.Height <= 0 {
		opts.PageSize = document.PageSizeA4
	}
	if opts.Style.FontSize <= 0 {
		opts.Style = stamp.DefaultStyle()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &engine{fonts: fonts, emblems: emblems, opts: opts, logger: logger}
}

func (e *engine) documentOptions(font *fontface.Font) document.Options {
	return document.Options{Font: font, Now: e.opts.Clock(), Logger: e.logger}
}

func (e *engine) composeEnv(font *fontface.Font) compose.Env {
	return compose.Env{
		Measurer: font,
		PageSize: e.opts.PageSize,
		Ink:      document.Black,
		Logger:   e.logger,
	}
}

// embed embeds an optional image on doc, logging a supplied image that failed.
func (e *engine) embed(doc *document.Document, blob, what string) document.ImageResult {
	res := doc.EmbedImage(codec.Decode(blob))
	if !res.OK() && res.Supplied() {
		e.logger.Warn("Skipping image that failed to embed",
			zap.String("image", what),
			zap.Error(res.Err),
		)
	}
	return res
}

// emblem returns the request's emblem bytes, else the default emblem. Failing
// to get the default only costs the emblem.
func (e *engine) emblem(ctx context.Context, blob string) []byte {
	if data := codec.Decode(blob); len(data) > 0 {
		return data
	}
	if e.emblems == nil {
		return nil
	}
	data, err := e.emblems.Emblem(ctx)
	if err != nil {
		e.logger.Warn("Default emblem unavailable", zap.Error(err))
		return nil
	}
	return data
}

func (e *engine) finish(doc *document.Document) (*entity.RenderedDocument, error) {
	pdf, err := doc.Serialize()
	if err != nil {
		return nil, err
	}
	return &entity.RenderedDocument{
		Document:  codec.Encode(pdf, entity.MediaTypePDF),
		PageCount: doc.PageCount(),
		SizeBytes: len(pdf),
	}, nil
}

func (e *engine) StampReceiveNumber(ctx context.Context, req *entity.ReceiveNumberRequest) (*entity.RenderedDocument, error) {
	font, err := e.fonts.Font(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := document.Open(codec.Decode(req.Document), e.documentOptions(font))
	if err != nil {
		return nil, err
	}

	now := e.opts.Clock()
	date := req.Date.Time
	if date.IsZero() {
		date = now
	}
	clock := req.Time
	if clock == "" {
		clock = locale.FormatTime(now, false)
	}
	loc := req.LocalizedDigits

	page := doc.Page(req.Page)
	stamp.DrawReceiveNumber(page, font, e.opts.Style, stamp.ReceiveContent{
		OrgName:        req.OrgName,
		RegistryNumber: locale.Digits(req.RegistryNumber, loc),
		Date:           locale.FormatShortDate(date, loc),
		Time:           locale.Digits(clock, loc),
		Logo:           e.embed(doc, req.OrgLogo, "org logo"),
	})
	doc.SetMetadata("เลขรับที่ "+req.RegistryNumber, req.OrgName)

	e.logger.Debug("Registry number stamped",
		zap.Int("page", page.Number()),
		zap.Int("pages", doc.PageCount()),
	)
	return e.finish(doc)
}

func (e *engine) StampCommand(ctx context.Context, req *entity.CommandStampRequest) (*entity.RenderedDocument, error) {
	font, err := e.fonts.Font(ctx)
	if err != nil {
		return nil, err
	}

	var doc *document.Document
	if req.Document == "" {
		doc, err = document.CreateBlank(e.opts.PageSize, e.documentOptions(font))
	} else {
		doc, err = document.Open(codec.Decode(req.Document), e.documentOptions(font))
	}
	if err != nil {
		return nil, err
	}

	date := req.Date.Time
	if date.IsZero() {
		date = e.opts.Clock()
	}
	align := req.Alignment
	if align != entity.AlignLeft {
		align = entity.AlignRight
	}
	loc := req.LocalizedDigits

	page := doc.Page(req.Page)
	layout, err := stamp.LayoutCommand(page.Size(), locale.Digits(req.CommandText, loc), align, e.opts.Style.FontSize, font)
	if err != nil {
		return nil, err
	}
	stamp.DrawCommand(page, font, e.opts.Style, layout, stamp.CommandContent{
		Date:             locale.FormatDate(date, loc),
		SignerTitle:      req.SignerTitle,
		SignerName:       req.SignerName,
		Signature:        e.embed(doc, req.Signature, "signature"),
		SignatureScale:   req.SignatureScale,
		SignatureYOffset: req.SignatureYOffset,
	})
	doc.SetMetadata("คำสั่งการ", req.OrgName)

	e.logger.Debug("Command stamped",
		zap.Int("page", page.Number()),
		zap.Int("lines", len(layout.Lines)),
		zap.Float64("box_height", layout.Box.Height),
		zap.String("alignment", string(align)),
	)
	return e.finish(doc)
}

func (e *engine) ComposeLeaveForm(ctx context.Context, req *entity.LeaveFormRequest) (*entity.RenderedDocument, error) {
	font, err := e.fonts.Font(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := document.New(e.documentOptions(font))
	if err != nil {
		return nil, err
	}

	err = compose.ComposeLeaveForm(doc, e.composeEnv(font), req, compose.LeaveFormImages{
		Emblem:             e.emblem(ctx, req.Emblem),
		RequesterSignature: codec.Decode(req.RequesterSignature),
		ApproverSignature:  codec.Decode(req.ApproverSignature),
	})
	if err != nil {
		return nil, err
	}
	doc.SetMetadata(compose.LeaveFormTitle(req.LeaveType), req.Name)
	return e.finish(doc)
}

func (e *engine) ComposeLeaveSummary(ctx context.Context, req *entity.LeaveSummaryRequest) (*entity.RenderedDocument, error) {
	font, err := e.fonts.Font(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := document.New(e.documentOptions(font))
	if err != nil {
		return nil, err
	}

	plan := compose.ComposeLeaveSummary(doc, e.composeEnv(font), req, compose.SummaryImages{
		Emblem:            e.emblem(ctx, req.Emblem),
		ApproverSignature: codec.Decode(req.ApproverSignature),
	})
	doc.SetMetadata("สรุปการลา "+req.Period, req.OrgName)

	e.logger.Debug("Leave summary composed",
		zap.Int("staff", len(req.Staff)),
		zap.Int("pages", plan.Pages),
	)
	return e.finish(doc)
}
