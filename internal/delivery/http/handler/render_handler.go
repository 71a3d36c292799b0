package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/usecase"
)

type RenderHandler struct {
	usecase usecase.RenderUsecase
	logger  *zap.Logger
}

func NewRenderHandler(usecase usecase.RenderUsecase, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// StampReceiveNumber godoc
// @Summary Stamp a registry number
// @Description Draw the receive-number box on a page of an existing PDF
// @Tags documents
// @Accept json
// @Produce json
// @Param request body entity.ReceiveNumberRequest true "Receive number request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 422 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /api/v1/documents/receive-number [post]
func (h *RenderHandler) StampReceiveNumber(c *fiber.Ctx) error {
	var req entity.ReceiveNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c, err)
	}

	result, err := h.usecase.StampReceiveNumber(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Receive number stamped successfully"))
}

// StampCommand godoc
// @Summary Stamp a command
// @Description Draw the command and signature block on a PDF, or on a blank page
// @Tags documents
// @Accept json
// @Produce json
// @Param request body entity.CommandStampRequest true "Command stamp request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 422 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /api/v1/documents/command [post]
func (h *RenderHandler) StampCommand(c *fiber.Ctx) error {
	var req entity.CommandStampRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c, err)
	}

	result, err := h.usecase.StampCommand(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Command stamped successfully"))
}

// ComposeLeaveForm godoc
// @Summary Compose a leave form
// @Tags documents
// @Accept json
// @Produce json
// @Param request body entity.LeaveFormRequest true "Leave form request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /api/v1/documents/leave-form [post]
func (h *RenderHandler) ComposeLeaveForm(c *fiber.Ctx) error {
	var req entity.LeaveFormRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c, err)
	}

	result, err := h.usecase.ComposeLeaveForm(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Leave form composed successfully"))
}

// ComposeLeaveSummary godoc
// @Summary Compose a leave summary report
// @Tags documents
// @Accept json
// @Produce json
// @Param request body entity.LeaveSummaryRequest true "Leave summary request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /api/v1/documents/leave-summary [post]
func (h *RenderHandler) ComposeLeaveSummary(c *fiber.Ctx) error {
	var req entity.LeaveSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c, err)
	}

	result, err := h.usecase.ComposeLeaveSummary(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Leave summary composed successfully"))
}

func (h *RenderHandler) badBody(c *fiber.Ctx, err error) error {
	h.logger.Error("Failed to parse request body", zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(
		entity.NewErrorResponse(entity.CodeBadRequest, "Invalid request body"),
	)
}

func (h *RenderHandler) fail(c *fiber.Ctx, err error) error {
	code := entity.ErrorCode(err)
	return c.Status(StatusFor(code)).JSON(entity.NewErrorResponse(code, err.Error()))
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case entity.CodeBadRequest:
		return fiber.StatusBadRequest
	case entity.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case entity.CodeCorruptDocument:
		return fiber.StatusUnprocessableEntity
	case entity.CodeFontUnavailable:
		return fiber.StatusServiceUnavailable
	case entity.CodeAssetTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
