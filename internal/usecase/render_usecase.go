package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/domain/repository"
	"saraban-stamp/internal/engine"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"

	defaultLogLimit = 50
	maxLogLimit     = 500
)

type RenderUsecase interface {
	StampReceiveNumber(ctx context.Context, req *entity.ReceiveNumberRequest) (*entity.RenderedDocument, error)
	StampCommand(ctx context.Context, req *entity.CommandStampRequest) (*entity.RenderedDocument, error)
	ComposeLeaveForm(ctx context.Context, req *entity.LeaveFormRequest) (*entity.RenderedDocument, error)
	ComposeLeaveSummary(ctx context.Context, req *entity.LeaveSummaryRequest) (*entity.RenderedDocument, error)
	// RecentLogs returns the newest render audit entries
	RecentLogs(ctx context.Context, limit int) ([]entity.RenderLog, error)
}

type renderUsecase struct {
	config *config.Config
	engine engine.Engine
	repo   repository.RenderLogRepository
	logger *zap.Logger
}

func NewRenderUsecase(cfg *config.Config, eng engine.Engine, repo repository.RenderLogRepository, logger *zap.Logger) RenderUsecase {
	return &renderUsecase{
		config: cfg,
		engine: eng,
		repo:   repo,
		logger: logger,
	}
}

func (u *renderUsecase) StampReceiveNumber(ctx context.Context, req *entity.ReceiveNumberRequest) (*entity.RenderedDocument, error) {
	return u.run(ctx, entity.OperationReceiveNumber, func() (*entity.RenderedDocument, error) {
		if req.Document == "" {
			return nil, fmt.Errorf("%w: document is required", entity.ErrInvalidRequest)
		}
		if req.RegistryNumber == "" {
			return nil, fmt.Errorf("%w: registry_number is required", entity.ErrInvalidRequest)
		}
		req.LocalizedDigits = req.LocalizedDigits || u.config.Render.LocalizedDigits
		return u.engine.StampReceiveNumber(ctx, req)
	})
}

func (u *renderUsecase) StampCommand(ctx context.Context, req *entity.CommandStampRequest) (*entity.RenderedDocument, error) {
	return u.run(ctx, entity.OperationCommand, func() (*entity.RenderedDocument, error) {
		if req.CommandText == "" && req.SignerName == "" {
			return nil, fmt.Errorf("%w: command_text or signer_name is required", entity.ErrInvalidRequest)
		}
		switch req.Alignment {
		case "", entity.AlignLeft, entity.AlignRight:
		default:
			return nil, fmt.Errorf("%w: alignment must be left or right", entity.ErrInvalidRequest)
		}
		if req.SignatureScale < 0 {
			return nil, fmt.Errorf("%w: signature_scale must not be negative", entity.ErrInvalidRequest)
		}
		req.LocalizedDigits = req.LocalizedDigits || u.config.Render.LocalizedDigits
		return u.engine.StampCommand(ctx, req)
	})
}

func (u *renderUsecase) ComposeLeaveForm(ctx context.Context, req *entity.LeaveFormRequest) (*entity.RenderedDocument, error) {
	return u.run(ctx, entity.OperationLeaveForm, func() (*entity.RenderedDocument, error) {
		if !req.LeaveType.Valid() {
			return nil, fmt.Errorf("%w: unknown leave_type %q", entity.ErrInvalidRequest, req.LeaveType)
		}
		switch req.Outcome {
		case "":
			req.Outcome = entity.OutcomePending
		case entity.OutcomePending, entity.OutcomeApproved, entity.OutcomeRejected:
		default:
			return nil, fmt.Errorf("%w: unknown outcome %q", entity.ErrInvalidRequest, req.Outcome)
		}
		if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate.Time) {
			return nil, fmt.Errorf("%w: end_date is before start_date", entity.ErrInvalidRequest)
		}
		req.LocalizedDigits = req.LocalizedDigits || u.config.Render.LocalizedDigits
		return u.engine.ComposeLeaveForm(ctx, req)
	})
}

func (u *renderUsecase) ComposeLeaveSummary(ctx context.Context, req *entity.LeaveSummaryRequest) (*entity.RenderedDocument, error) {
	return u.run(ctx, entity.OperationLeaveSummary, func() (*entity.RenderedDocument, error) {
		for i, staff := range req.Staff {
			for t := range staff.Counts {
				if !t.Valid() {
					return nil, fmt.Errorf("%w: staff[%d] has unknown leave type %q", entity.ErrInvalidRequest, i, t)
				}
			}
		}
		req.LocalizedDigits = req.LocalizedDigits || u.config.Render.LocalizedDigits
		return u.engine.ComposeLeaveSummary(ctx, req)
	})
}

func (u *renderUsecase) RecentLogs(ctx context.Context, limit int) ([]entity.RenderLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	return u.repo.FindRecent(ctx, limit)
}

// run times one render, stamps the result with a fresh render id and records
// the outcome in the audit log.
func (u *renderUsecase) run(ctx context.Context, operation string, render func() (*entity.RenderedDocument, error)) (*entity.RenderedDocument, error) {
	renderID := uuid.NewString()
	startTime := time.Now()

	u.logger.Info("Rendering document",
		zap.String("render_id", renderID),
		zap.String("operation", operation),
	)

	result, err := render()
	duration := time.Since(startTime)

	renderLog := &entity.RenderLog{
		RenderID:  renderID,
		Operation: operation,
		Status:    statusSuccess,
		Duration:  duration.Milliseconds(),
		CreatedAt: time.Now(),
	}

	if err != nil {
		renderLog.Status = statusError
		renderLog.ErrorCode = entity.ErrorCode(err)
		u.logger.Error("Failed to render document",
			zap.String("render_id", renderID),
			zap.String("operation", operation),
			zap.String("error_code", renderLog.ErrorCode),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		u.saveLog(renderLog)
		return nil, err
	}

	result.RenderID = renderID
	renderLog.PageCount = result.PageCount
	renderLog.SizeBytes = result.SizeBytes

	u.logger.Info("Document rendered",
		zap.String("render_id", renderID),
		zap.String("operation", operation),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", result.SizeBytes),
		zap.Duration("duration", duration),
	)
	u.saveLog(renderLog)
	return result, nil
}

// saveLog saves the audit entry asynchronously to not block the response.
func (u *renderUsecase) saveLog(renderLog *entity.RenderLog) {
	go func() {
		if err := u.repo.Save(context.Background(), renderLog); err != nil {
			u.logger.Warn("Failed to save render log",
				zap.String("render_id", renderLog.RenderID),
				zap.Error(err),
			)
		}
	}()
}
