package http

import (
	"net/http"
	"sort"
	"time"

	"github.com/venturehub/investment-service/internal/application"
	"github.com/venturehub/investment-service/internal/contracts"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	var req contracts.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_order", err)
		return
	}

	res, err := h.service.CreateOrder(r.Context(), actor, application.CreateOrderInput{
		Amount:          req.Amount,
		FundingTargetID: req.FundingTargetID,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "create_order", err)
		return
	}
	writeSuccess(w, http.StatusCreated, contracts.CreateOrderResponse{
		OrderID:     res.OrderID,
		KeyID:       res.KeyID,
		AmountMinor: res.AmountMinor,
		Currency:    res.Currency,
	})
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	var req contracts.VerifyPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "verify_payment", err)
		return
	}

	res, err := h.service.VerifyAndSettle(r.Context(), actor, application.VerifyPaymentInput{
		OrderID:         req.OrderID,
		PaymentID:       req.PaymentID,
		Signature:       req.Signature,
		FundingTargetID: req.FundingTargetID,
		Amount:          req.Amount,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "verify_payment", err)
		return
	}

	status := http.StatusCreated
	if res.AlreadySettled {
		status = http.StatusOK
	}
	writeSuccess(w, status, toInvestmentResponse(res.Investment, "", "", ""))
}

func (h *Handler) listInvestments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	items, err := h.service.ListInvestments(r.Context(), actor)
	if err != nil {
		writeMappedError(r.Context(), w, "list_investments", err)
		return
	}

	out := make([]contracts.InvestmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toInvestmentResponse(item.Investment, item.CompanyName, item.Industry, item.Stage))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"investments": out})
}

func (h *Handler) investorStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	stats, err := h.service.InvestorStats(r.Context(), actor)
	if err != nil {
		writeMappedError(r.Context(), w, "investor_stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, toStatsResponse(stats))
}

func toInvestmentResponse(inv domain.Investment, companyName, industry, stage string) contracts.InvestmentResponse {
	return contracts.InvestmentResponse{
		InvestmentID:     inv.InvestmentID.String(),
		TargetID:         inv.TargetID.String(),
		CompanyName:      companyName,
		Industry:         industry,
		Stage:            stage,
		Amount:           inv.Amount,
		Status:           inv.Status,
		GatewayPaymentID: inv.GatewayPaymentID,
		CreatedAt:        inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toStatsResponse renders all twelve month buckets in calendar order and the
// category slices sorted by name so the payload is stable between calls.
func toStatsResponse(stats ports.InvestorStats) contracts.InvestorStatsResponse {
	monthly := make([]contracts.MonthlyBucket, 0, 12)
	for i := 0; i < 12; i++ {
		monthly = append(monthly, contracts.MonthlyBucket{
			Name:  time.Month(i + 1).String()[:3],
			Value: stats.Monthly[i],
		})
	}

	names := make([]string, 0, len(stats.Categories))
	for name := range stats.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	diversity := make([]contracts.CategorySlice, 0, len(names))
	for _, name := range names {
		diversity = append(diversity, contracts.CategorySlice{Name: name, Value: stats.Categories[name]})
	}

	return contracts.InvestorStatsResponse{
		TotalInvested:      stats.TotalInvested,
		ActiveAllocations:  stats.ActiveAllocations,
		MonthlyData:        monthly,
		PortfolioDiversity: diversity,
	}
}
