package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

var hundred = decimal.NewFromInt(100)

type VoucherService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply computes the discount a voucher gives on subtotal. It reads the
// voucher but never changes it.
func (s *VoucherService) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (*transport.ApplyVoucherResponse, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if subtotal.IsNegative() {
		return nil, fmt.Errorf("%w: total_price cannot be negative", ErrValidation)
	}

	v, err := s.Repo.GetVoucherByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}

	discount, err := Discount(*v, subtotal, nowFunc(s.Now))
	if err != nil {
		return nil, err
	}
	return &transport.ApplyVoucherResponse{
		Code:        v.Code,
		Discount:    discount,
		TotalBefore: subtotal,
		TotalAfter:  subtotal.Sub(discount),
	}, nil
}

// Discount checks the voucher's eligibility at now and returns the amount
// taken off subtotal, never more than subtotal itself.
func Discount(v models.Voucher, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	switch {
	case !v.IsActive:
		return decimal.Zero, fmt.Errorf("%w: voucher is not active", ErrValidation)
	case now.Before(v.StartDate):
		return decimal.Zero, fmt.Errorf("%w: voucher is not valid yet", ErrValidation)
	case now.After(v.EndDate):
		return decimal.Zero, fmt.Errorf("%w: voucher has expired", ErrValidation)
	case v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit:
		return decimal.Zero, fmt.Errorf("%w: voucher usage limit reached", ErrValidation)
	case subtotal.LessThan(v.MinPurchase):
		return decimal.Zero, fmt.Errorf("%w: minimum purchase is %s", ErrValidation, v.MinPurchase.StringFixed(2))
	}

	var discount decimal.Decimal
	switch v.Type {
	case models.VoucherPercentage:
		discount = subtotal.Mul(v.Value).Div(hundred)
		if v.MaxDiscount != nil && discount.GreaterThan(*v.MaxDiscount) {
			discount = *v.MaxDiscount
		}
	case models.VoucherFixed:
		discount = v.Value
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown voucher type %q", ErrValidation, v.Type)
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount.Round(2), nil
}

func parseDate(field, s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date", ErrValidation, field)
}

func (s *VoucherService) Create(ctx context.Context, req transport.CreateVoucherRequest) (*models.Voucher, error) {
	code := normalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	typ := models.VoucherType(req.Type)
	if typ != models.VoucherPercentage && typ != models.VoucherFixed {
		return nil, fmt.Errorf("%w: type must be Percentage or Fixed", ErrValidation)
	}
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be positive", ErrValidation)
	}
	if typ == models.VoucherPercentage && req.Value.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: percentage cannot exceed 100", ErrValidation)
	}
	if req.MinPurchase.IsNegative() || (req.MaxDiscount != nil && req.MaxDiscount.IsNegative()) {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}
	if req.UsageLimit != nil && *req.UsageLimit < 0 {
		return nil, fmt.Errorf("%w: usage_limit cannot be negative", ErrValidation)
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	// A bare end date covers the whole day.
	if len(req.EndDate) == len("2006-01-02") {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrValidation)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	v := &models.Voucher{
		Code:        code,
		Type:        typ,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		StartDate:   start,
		EndDate:     end,
		UsageLimit:  req.UsageLimit,
		IsActive:    active,
	}
	if err := s.Repo.CreateVoucherIfNotExists(ctx, v); err != nil {
		if errors.Is(err, repo.ErrVoucherCodeTaken) {
			return nil, fmt.Errorf("%w: voucher %s", ErrDuplicate, code)
		}
		return nil, err
	}
	return v, nil
}

func (s *VoucherService) List(ctx context.Context) ([]models.Voucher, error) {
	return s.Repo.ListVouchers(ctx)
}
