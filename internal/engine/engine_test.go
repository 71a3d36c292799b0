package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine/codec"
	"saraban-stamp/internal/engine/fontface"
	"saraban-stamp/internal/infrastructure/document"
)

type staticFont struct {
	font *fontface.Font
	err  error
}

func (s staticFont) Font(context.Context) (*fontface.Font, error) {
	return s.font, s.err
}

type emblemFunc func(ctx context.Context) ([]byte, error)

func (f emblemFunc) Emblem(ctx context.Context) ([]byte, error) { return f(ctx) }

var fixedClock = func() time.Time { return time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC) }

func newTestEngine(t *testing.T, emblems EmblemSource) Engine {
	t.Helper()
	font, err := fontface.Parse(goregular.TTF)
	require.NoError(t, err)
	return New(staticFont{font: font}, emblems, Options{Clock: fixedClock}, nil)
}

func pngBlob(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 60, 20))))
	return codec.Encode(buf.Bytes(), "image/png")
}

// sourcePDF builds a PDF with the given number of A4 pages.
func sourcePDF(t *testing.T, pages int) string {
	t.Helper()
	font, err := fontface.Parse(goregular.TTF)
	require.NoError(t, err)
	doc, err := document.CreateBlank(document.PageSizeA4, document.Options{Font: font, Now: fixedClock()})
	require.NoError(t, err)
	for i := 1; i < pages; i++ {
		doc.AddPage(document.PageSizeA4)
	}
	raw, err := doc.Serialize()
	require.NoError(t, err)
	return codec.Encode(raw, entity.MediaTypePDF)
}

// reopen checks that a rendered document is a readable PDF and returns its page count.
func reopen(t *testing.T, rendered *entity.RenderedDocument) int {
	t.Helper()
	require.NotNil(t, rendered)
	assert.Equal(t, entity.MediaTypePDF, codec.MediaType(rendered.Document))

	raw := codec.Decode(rendered.Document)
	assert.Equal(t, len(raw), rendered.SizeBytes)
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	font, err := fontface.Parse(goregular.TTF)
	require.NoError(t, err)
	doc, err := document.Open(raw, document.Options{Font: font})
	require.NoError(t, err)
	return doc.PageCount()
}

func receiveRequest(t *testing.T) *entity.ReceiveNumberRequest {
	return &entity.ReceiveNumberRequest{
		Document:       sourcePDF(t, 1),
		RegistryNumber: "123",
		Date:           entity.NewDate(2024, time.January, 1),
		Time:           "09:30",
		OrgName:        "Registry Office",
		OrgLogo:        pngBlob(t),
	}
}

func TestStampReceiveNumber(t *testing.T) {
	e := newTestEngine(t, nil)

	out, err := e.StampReceiveNumber(context.Background(), receiveRequest(t))
	require.NoError(t, err)
	assert.Equal(t, 1, out.PageCount)
	assert.Equal(t, 1, reopen(t, out))
}

func TestStampReceiveNumberClampsPage(t *testing.T) {
	e := newTestEngine(t, nil)
	req := receiveRequest(t)
	req.Page = 99

	out, err := e.StampReceiveNumber(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, reopen(t, out))
}

func TestStampReceiveNumberSurvivesBadLogo(t *testing.T) {
	e := newTestEngine(t, nil)
	req := receiveRequest(t)
	req.OrgLogo = codec.Encode([]byte("definitely not an image"), "image/png")

	out, err := e.StampReceiveNumber(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, reopen(t, out))
}

func TestStampReceiveNumberCorruptDocument(t *testing.T) {
	e := newTestEngine(t, nil)
	req := receiveRequest(t)
	req.Document = codec.Encode([]byte("not a pdf"), entity.MediaTypePDF)

	out, err := e.StampReceiveNumber(context.Background(), req)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, entity.ErrCorruptDocument)
}

func TestFontUnavailableAbortsEveryOperation(t *testing.T) {
	fontErr := fmt.Errorf("%w: %w", entity.ErrFontUnavailable, entity.ErrAssetFetchTimeout)
	e := New(staticFont{err: fontErr}, nil, Options{Clock: fixedClock}, nil)
	ctx := context.Background()

	calls := map[string]func() (*entity.RenderedDocument, error){
		"receive": func() (*entity.RenderedDocument, error) {
			return e.StampReceiveNumber(ctx, receiveRequest(t))
		},
		"command": func() (*entity.RenderedDocument, error) {
			return e.StampCommand(ctx, &entity.CommandStampRequest{CommandText: "OK"})
		},
		"leave form": func() (*entity.RenderedDocument, error) {
			return e.ComposeLeaveForm(ctx, &entity.LeaveFormRequest{LeaveType: entity.LeaveSick})
		},
		"leave summary": func() (*entity.RenderedDocument, error) {
			return e.ComposeLeaveSummary(ctx, &entity.LeaveSummaryRequest{})
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			out, err := call()
			assert.Nil(t, out)
			assert.ErrorIs(t, err, entity.ErrFontUnavailable)
			assert.ErrorIs(t, err, entity.ErrAssetFetchTimeout)
		})
	}
}

func TestStampCommandWithoutDocument(t *testing.T) {
	e := newTestEngine(t, nil)

	out, err := e.StampCommand(context.Background(), &entity.CommandStampRequest{
		CommandText: "Approved.\nProceed as proposed.",
		SignerName:  "Somchai",
		SignerTitle: "Director",
		Signature:   pngBlob(t),
		Alignment:   entity.AlignLeft,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, reopen(t, out))
}

func TestStampCommandOnExistingPage(t *testing.T) {
	e := newTestEngine(t, nil)

	out, err := e.StampCommand(context.Background(), &entity.CommandStampRequest{
		Document:       sourcePDF(t, 2),
		Page:           2,
		CommandText:    "Acknowledged",
		SignerName:     "Somchai",
		SignatureScale: 1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reopen(t, out))
}

func TestStampCommandRejectsTextTallerThanThePage(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.StampCommand(context.Background(), &entity.CommandStampRequest{
		CommandText: strings.Repeat("Proceed as proposed. ", 2000),
		SignerName:  "Somchai",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestStampCommandIsDeterministic(t *testing.T) {
	e := newTestEngine(t, nil)
	req := &entity.CommandStampRequest{CommandText: "Acknowledged", SignerName: "Somchai"}

	first, err := e.StampCommand(context.Background(), req)
	require.NoError(t, err)
	second, err := e.StampCommand(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Document, second.Document)
}

func TestComposeLeaveFormUsesDefaultEmblem(t *testing.T) {
	calls := 0
	emblem := pngBlob(t)
	e := newTestEngine(t, emblemFunc(func(context.Context) ([]byte, error) {
		calls++
		return codec.Decode(emblem), nil
	}))

	req := &entity.LeaveFormRequest{
		Name:      "Somying",
		LeaveType: entity.LeaveVacation,
		Outcome:   entity.OutcomeApproved,
		StartDate: entity.NewDate(2024, time.January, 2),
		EndDate:   entity.NewDate(2024, time.January, 3),
		Days:      2,
	}
	out, err := e.ComposeLeaveForm(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, reopen(t, out))
	assert.Equal(t, 1, calls)

	req.Emblem = pngBlob(t)
	_, err = e.ComposeLeaveForm(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "a supplied emblem skips the default")
}

func TestComposeLeaveFormSurvivesEmblemFailure(t *testing.T) {
	e := newTestEngine(t, emblemFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("emblem host unreachable")
	}))

	out, err := e.ComposeLeaveForm(context.Background(), &entity.LeaveFormRequest{LeaveType: entity.LeaveSick})
	require.NoError(t, err)
	assert.Equal(t, 1, out.PageCount)
}

func TestComposeLeaveSummaryPaginates(t *testing.T) {
	e := newTestEngine(t, nil)
	req := &entity.LeaveSummaryRequest{
		OrgName:      "Registry Office",
		Period:       "2024",
		ApproverName: "Somchai",
	}
	for i := 0; i < 80; i++ {
		req.Staff = append(req.Staff, entity.StaffLeaveRecord{
			Name:   fmt.Sprintf("Staff %d", i+1),
			Counts: map[entity.LeaveType]float64{entity.LeaveSick: 1},
		})
	}

	out, err := e.ComposeLeaveSummary(context.Background(), req)
	require.NoError(t, err)
	assert.Greater(t, out.PageCount, 1)
	assert.Equal(t, out.PageCount, reopen(t, out))
}
