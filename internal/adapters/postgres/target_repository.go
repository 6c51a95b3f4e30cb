package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
	"github.com/venturehub/investment-service/internal/ports"
	"gorm.io/gorm"
)

type FundingTargetRepository struct {
	db *gorm.DB
}

func (r *FundingTargetRepository) GetByID(ctx context.Context, targetID uuid.UUID) (domain.FundingTarget, error) {
	var rec fundingTargetModel
	if err := r.db.WithContext(ctx).Where("target_id = ?", targetID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FundingTarget{}, domain.ErrNotFound
		}
		return domain.FundingTarget{}, err
	}
	return toDomainTarget(rec), nil
}

func (r *FundingTargetRepository) List(ctx context.Context, query ports.TargetQuery) ([]domain.FundingTarget, int, error) {
	q := r.db.WithContext(ctx).Model(&fundingTargetModel{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []fundingTargetModel
	if err := q.Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.FundingTarget, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainTarget(row))
	}
	return out, int(total), nil
}
