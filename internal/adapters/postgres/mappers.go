package postgres

import (
	"errors"

	"github.com/venturehub/investment-service/internal/domain"
	"gorm.io/gorm"
)

func toDomainAccount(row accountModel) domain.Account {
	keyID := ""
	if row.GatewayKeyID != nil {
		keyID = *row.GatewayKeyID
	}
	secret := ""
	if row.GatewayKeySecret != nil {
		secret = *row.GatewayKeySecret
	}
	return domain.Account{
		AccountID:        row.AccountID,
		Name:             row.Name,
		Email:            row.Email,
		Role:             row.Role,
		GatewayKeyID:     keyID,
		GatewayKeySecret: secret,
		CreatedAt:        row.CreatedAt,
	}
}

func toDomainTarget(row fundingTargetModel) domain.FundingTarget {
	return domain.FundingTarget{
		TargetID:     row.TargetID,
		AccountID:    row.AccountID,
		CompanyName:  row.CompanyName,
		Description:  row.Description,
		Industry:     row.Industry,
		Stage:        row.Stage,
		Status:       row.Status,
		Location:     row.Location,
		Website:      row.Website,
		FundingGoal:  row.FundingGoal,
		RaisedAmount: row.RaisedAmount,
		CreatedAt:    row.CreatedAt,
	}
}

func toDomainInvestment(row investmentModel) domain.Investment {
	return domain.Investment{
		InvestmentID:     row.InvestmentID,
		InvestorID:       row.InvestorID,
		TargetID:         row.TargetID,
		Amount:           row.Amount,
		Status:           row.Status,
		GatewayPaymentID: row.GatewayPaymentID,
		CreatedAt:        row.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
