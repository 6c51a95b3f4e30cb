package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/venturehub/investment-service/internal/application"
	"github.com/venturehub/investment-service/internal/contracts"
	"github.com/venturehub/investment-service/internal/domain"
)

func (h *Handler) listTargets(w http.ResponseWriter, r *http.Request) {
	input := application.TargetListInput{
		Limit:  parseIntDefault(r.URL.Query().Get("limit"), 20),
		Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
	}
	targets, total, err := h.service.ListTargets(r.Context(), input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_targets", err)
		return
	}

	out := make([]contracts.FundingTargetResponse, 0, len(targets))
	for _, target := range targets {
		out = append(out, toTargetResponse(target))
	}
	writeSuccess(w, http.StatusOK, contracts.TargetListResponse{Targets: out, Total: total})
}

func (h *Handler) getTarget(w http.ResponseWriter, r *http.Request) {
	target, err := h.service.GetTarget(r.Context(), chi.URLParam(r, "target_id"))
	if err != nil {
		writeMappedError(r.Context(), w, "get_target", err)
		return
	}
	writeSuccess(w, http.StatusOK, toTargetResponse(target))
}

func toTargetResponse(target domain.FundingTarget) contracts.FundingTargetResponse {
	return contracts.FundingTargetResponse{
		TargetID:     target.TargetID.String(),
		CompanyName:  target.CompanyName,
		Description:  target.Description,
		Industry:     target.Industry,
		Stage:        target.Stage,
		Status:       target.Status,
		Location:     target.Location,
		Website:      target.Website,
		FundingGoal:  target.FundingGoal,
		RaisedAmount: target.RaisedAmount,
		CreatedAt:    target.CreatedAt.UTC().Format(time.RFC3339),
	}
}
