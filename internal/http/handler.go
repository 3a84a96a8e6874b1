package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/h2316307-design/adhub-pro-sub002/internal/excel"
	"github.com/h2316307-design/adhub-pro-sub002/internal/http/middleware"
	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
	"github.com/h2316307-design/adhub-pro-sub002/internal/payment"
	"github.com/h2316307-design/adhub-pro-sub002/internal/pdf"
	"github.com/h2316307-design/adhub-pro-sub002/internal/pricing"
	"github.com/h2316307-design/adhub-pro-sub002/internal/schedule"
	"github.com/h2316307-design/adhub-pro-sub002/internal/service"
)

type Handler struct {
	contracts *service.ContractService
	payments  *service.PaymentService
	workbook  *excel.Generator
	receipts  *pdf.Generator
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	payments *service.PaymentService,
	workbook *excel.Generator,
	receipts *pdf.Generator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts: contracts,
		payments:  payments,
		workbook:  workbook,
		receipts:  receipts,
		validate:  validator.New(),
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/contracts/preview", h.previewTotals)
	protected.POST("/contracts/redistribute", h.redistribute)
	protected.POST("/contracts/schedule/preview", h.previewSchedule)
	protected.POST("/contracts", h.saveContract)
	protected.GET("/contracts/:id/export", h.exportContract)

	protected.GET("/obligations", h.listObligations)
	protected.POST("/payments/distribute", h.distribute)
	protected.POST("/payments", h.commitPayment)
	protected.GET("/payments/:id/receipt", h.receiptPDF)
}

type discountRequest struct {
	Type          string             `json:"type" validate:"omitempty,oneof=PERCENT FIXED"`
	Value         float64            `json:"value"`
	LevelPercents map[string]float64 `json:"level_percents"`
}

type editRequest struct {
	ContractID          string             `json:"contract_id"`
	BillboardIDs        []string           `json:"billboard_ids" validate:"required,min=1"`
	Category            string             `json:"category" validate:"required"`
	PricingMode         string             `json:"pricing_mode" validate:"omitempty,oneof=RATE_TABLE FACTORS"`
	DurationUnit        string             `json:"duration_unit" validate:"omitempty,oneof=MONTHS DAYS"`
	DurationValue       int                `json:"duration_value" validate:"required,gt=0"`
	Discount            discountRequest    `json:"discount"`
	InstallationInPrice bool               `json:"installation_in_price"`
	PrintInPrice        bool               `json:"print_in_price"`
	PrintEnabled        bool               `json:"print_enabled"`
	Overrides           map[string]float64 `json:"overrides"`
}

func (h *Handler) parseEditInput(req editRequest) (service.EditInput, error) {
	input := service.EditInput{
		Category:      req.Category,
		PricingMode:   model.PricingMode(defaultString(req.PricingMode, string(model.PricingModeRateTable))),
		DurationUnit:  model.DurationUnit(defaultString(req.DurationUnit, string(model.DurationMonths))),
		DurationValue: req.DurationValue,
		Discount: pricing.DiscountConfig{
			Type:          pricing.DiscountType(defaultString(req.Discount.Type, string(pricing.DiscountPercent))),
			Value:         req.Discount.Value,
			LevelPercents: req.Discount.LevelPercents,
		},
		Inclusion: pricing.CostInclusion{
			InstallationInPrice: req.InstallationInPrice,
			PrintInPrice:        req.PrintInPrice,
		},
		PrintEnabled: req.PrintEnabled,
	}

	if req.ContractID != "" {
		id, err := uuid.Parse(req.ContractID)
		if err != nil {
			return input, service.ErrInvalidInput
		}
		input.ContractID = &id
	}
	for _, raw := range req.BillboardIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return input, service.ErrInvalidInput
		}
		input.BillboardIDs = append(input.BillboardIDs, id)
	}
	if len(req.Overrides) > 0 {
		input.Overrides = make(map[uuid.UUID]float64, len(req.Overrides))
		for raw, price := range req.Overrides {
			id, err := uuid.Parse(raw)
			if err != nil {
				return input, service.ErrInvalidInput
			}
			input.Overrides[id] = price
		}
	}
	return input, nil
}

func (h *Handler) previewTotals(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.parseEditInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifiers in request"})
		return
	}

	result, err := h.contracts.PreviewTotals(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type redistributeRequest struct {
	Edit         editRequest `json:"edit"`
	DesiredTotal float64     `json:"desired_total" validate:"required"`
}

func (h *Handler) redistribute(c *gin.Context) {
	var req redistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.parseEditInput(req.Edit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifiers in request"})
		return
	}

	overrides, err := h.contracts.RedistributeTotal(c.Request.Context(), input, req.DesiredTotal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"overrides": overrides})
}

type scheduleRequest struct {
	FinalTotal        float64 `json:"final_total" validate:"required,gt=0"`
	DistributionType  string  `json:"distribution_type" validate:"required,oneof=EVEN FIRST_PAYMENT MANUAL"`
	Count             int     `json:"count"`
	FirstPaymentMode  string  `json:"first_payment_mode" validate:"omitempty,oneof=AMOUNT PERCENT"`
	FirstPaymentValue float64 `json:"first_payment_value"`
	RecurringCount    int     `json:"recurring_count"`
	IntervalMonths    int     `json:"interval_months"`
	StartDate         string  `json:"start_date" validate:"required"`
	EndDate           string  `json:"end_date"`
}

func (h *Handler) previewSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.parseScheduleConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	installments, err := h.contracts.PreviewSchedule(req.FinalTotal, cfg)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installments": installments})
}

func (h *Handler) parseScheduleConfig(req scheduleRequest) (schedule.Config, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return schedule.Config{}, err
	}
	cfg := schedule.Config{
		Type:              schedule.DistributionType(req.DistributionType),
		Count:             req.Count,
		FirstPaymentMode:  schedule.FirstPaymentMode(defaultString(req.FirstPaymentMode, string(schedule.FirstPaymentAmount))),
		FirstPaymentValue: req.FirstPaymentValue,
		RecurringCount:    req.RecurringCount,
		IntervalMonths:    req.IntervalMonths,
		StartDate:         start,
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return schedule.Config{}, err
		}
		cfg.EndDate = &end
	}
	return cfg, nil
}

type installmentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	DueDate     string  `json:"due_date" validate:"required"`
}

type saveContractRequest struct {
	Edit         editRequest          `json:"edit"`
	CustomerID   string               `json:"customer_id" validate:"required"`
	CustomerName string               `json:"customer_name"`
	StartAt      string               `json:"start_at" validate:"required"`
	EndAt        string               `json:"end_at" validate:"required"`
	Installments []installmentRequest `json:"installments" validate:"required,min=1,dive"`
}

func (h *Handler) saveContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req saveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit, err := h.parseEditInput(req.Edit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifiers in request"})
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}
	startAt, err := parseDate(req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_at"})
		return
	}
	endAt, err := parseDate(req.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_at"})
		return
	}

	installments := make([]model.Installment, 0, len(req.Installments))
	for _, inst := range req.Installments {
		due, err := parseDate(inst.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid installment due_date"})
			return
		}
		installments = append(installments, model.Installment{
			Amount:      inst.Amount,
			PaymentType: inst.PaymentType,
			DueDate:     due,
		})
	}

	contract, err := h.contracts.SaveContract(c.Request.Context(), service.SaveInput{
		Edit:         edit,
		CustomerID:   customerID,
		CustomerName: req.CustomerName,
		StartAt:      startAt,
		EndAt:        endAt,
		Installments: installments,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.workbook.Generate(contract)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileName := excel.FileName(contract)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, content)
}

func (h *Handler) listObligations(c *gin.Context) {
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		customerID = &id
	}

	obligations, err := h.payments.ListOpenObligations(c.Request.Context(), customerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"obligations": obligations})
}

type distributeRequest struct {
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) distribute(c *gin.Context) {
	var req distributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		customerID = &id
	}

	result, err := h.payments.Distribute(c.Request.Context(), customerID, req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type allocationRequest struct {
	ObligationID string  `json:"obligation_id" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	Amount       float64 `json:"amount" validate:"gte=0"`
}

type commitPaymentRequest struct {
	CustomerID  string              `json:"customer_id" validate:"required"`
	PayerName   string              `json:"payer_name"`
	Amount      float64             `json:"amount" validate:"required,gt=0"`
	Method      string              `json:"method"`
	Notes       string              `json:"notes"`
	Allocations []allocationRequest `json:"allocations" validate:"required,min=1,dive"`
}

func (h *Handler) commitPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req commitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}

	allocations := make([]model.PaymentAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		id, err := uuid.Parse(a.ObligationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid obligation_id"})
			return
		}
		allocations = append(allocations, model.PaymentAllocation{
			ObligationID: id,
			Type:         model.ObligationType(a.Type),
			Amount:       a.Amount,
		})
	}

	receipt, err := h.payments.CommitPayment(c.Request.Context(), service.CommitInput{
		CustomerID:  customerID,
		PayerName:   req.PayerName,
		Amount:      req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
		Allocations: allocations,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) receiptPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
		return
	}

	receipt, err := h.payments.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.receipts.Generate(*receipt)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+pdf.FileName(*receipt)+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidOverride),
		errors.Is(err, pricing.ErrDiscountExceedsBase),
		errors.Is(err, schedule.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrScheduleMismatch),
		errors.Is(err, payment.ErrAllocationMismatch),
		errors.Is(err, payment.ErrOverAllocation),
		errors.Is(err, payment.ErrExceedsAllocatable),
		errors.Is(err, payment.ErrNoAllocations),
		errors.Is(err, payment.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
