package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

var ErrVoucherCodeTaken = errors.New("voucher code already exists")

func (r *GormRepo) GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) CreateVoucherIfNotExists(ctx context.Context, v *models.Voucher) error {
	tx := r.DB.WithContext(ctx).Where("code = ?", v.Code).FirstOrCreate(v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVoucherCodeTaken
	}
	return nil
}

func (r *GormRepo) ListVouchers(ctx context.Context) ([]models.Voucher, error) {
	var out []models.Voucher
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
