package repository

import (
	"context"
	"errors"

	"github.com/bankhive/bankcore/pkg/domain"
	repo "github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository over the given session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := transactionFromDomain(t)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uint) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *transactionRepository) List(ctx context.Context, filter repo.TransactionFilter) ([]*domain.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{})
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	if filter.SenderAccountID != nil {
		q = q.Where("sender_account_id = ?", *filter.SenderAccountID)
	}
	if filter.BeneficiaryAccountID != nil {
		q = q.Where("beneficiary_account_id = ?", *filter.BeneficiaryAccountID)
	}
	var ms []Transaction
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return transactionsToDomain(ms), nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Transaction, error) {
	var ms []Transaction
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return transactionsToDomain(ms), nil
}

func (r *transactionRepository) CountByAccount(ctx context.Context, accountID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("sender_account_id = ? OR beneficiary_account_id = ?", accountID, accountID).
		Count(&n).Error
	return n, err
}

func (r *transactionRepository) UpdateAmount(ctx context.Context, id uint, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ?", id).Update("amount", amount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func transactionsToDomain(ms []Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out
}
