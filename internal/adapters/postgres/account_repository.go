package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/venturehub/investment-service/internal/domain"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, err
	}
	return toDomainAccount(rec), nil
}
