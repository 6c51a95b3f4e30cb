package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

// Settle commits the settlement unit in one transaction: the investment row,
// the atomic raised-amount increment, and the outbox event. The increment is
// a SQL expression, never read-modify-write in application code, so
// concurrent settlements against the same target cannot lose updates.
//
// A duplicate gateway payment id found by the pre-check returns the existing
// record without touching raised_amount. A duplicate that slips past the
// pre-check (two concurrent calls) aborts the transaction on the unique
// index; the caller resolves ErrConflict by re-reading the winner's record.
func (r *InvestmentRepository) Settle(ctx context.Context, params ports.SettleParams) (domain.Investment, bool, error) {
	var (
		result         domain.Investment
		alreadySettled bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing investmentModel
		err := tx.Where("gateway_payment_id = ?", params.Investment.GatewayPaymentID).Take(&existing).Error
		if err == nil {
			result = toDomainInvestment(existing)
			alreadySettled = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rec := investmentModel{
			InvestmentID:     params.Investment.InvestmentID,
			InvestorID:       params.Investment.InvestorID,
			TargetID:         params.Investment.TargetID,
			Amount:           params.Investment.Amount,
			Status:           params.Investment.Status,
			GatewayPaymentID: params.Investment.GatewayPaymentID,
			CreatedAt:        params.Investment.CreatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}

		res := tx.Model(&fundingTargetModel{}).
			Where("target_id = ?", rec.TargetID).
			UpdateColumn("raised_amount", gorm.Expr("raised_amount + ?", rec.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		outbox := outboxModel{
			OutboxID:     params.Outbox.EventID,
			EventType:    params.Outbox.EventType,
			PartitionKey: params.Outbox.PartitionKey,
			Payload:      string(params.Outbox.Payload),
			CreatedAt:    params.Outbox.OccurredAt,
			FirstSeenAt:  params.Outbox.OccurredAt,
		}
		if err := tx.Create(&outbox).Error; err != nil {
			return err
		}

		result = toDomainInvestment(rec)
		return nil
	})
	if err != nil {
		return domain.Investment{}, false, err
	}
	return result, alreadySettled, nil
}

func (r *InvestmentRepository) GetByPaymentID(ctx context.Context, gatewayPaymentID string) (domain.Investment, error) {
	var rec investmentModel
	if err := r.db.WithContext(ctx).Where("gateway_payment_id = ?", gatewayPaymentID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Investment{}, domain.ErrNotFound
		}
		return domain.Investment{}, err
	}
	return toDomainInvestment(rec), nil
}

func (r *InvestmentRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.PortfolioItem, error) {
	var rows []portfolioRow
	if err := r.db.WithContext(ctx).
		Table("investments").
		Select("investments.*, funding_targets.company_name, funding_targets.industry, funding_targets.stage").
		Joins("JOIN funding_targets ON funding_targets.target_id = investments.target_id").
		Where("investments.investor_id = ?", investorID).
		Order("investments.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.PortfolioItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PortfolioItem{
			Investment:  toDomainInvestment(row.investmentModel),
			CompanyName: row.CompanyName,
			Industry:    row.Industry,
			Stage:       row.Stage,
		})
	}
	return out, nil
}
