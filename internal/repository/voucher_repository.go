package repository

import (
	"ecopulse_backend/internal/model"

	"gorm.io/gorm"
)

type VoucherRepository struct {
	DB *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{DB: db}
}

func (r *VoucherRepository) Create(voucher *model.Voucher) error {
	return r.DB.Create(voucher).Error
}

func (r *VoucherRepository) FindByID(db *gorm.DB, id uint) (*model.Voucher, error) {
	var voucher model.Voucher
	err := db.First(&voucher, id).Error
	return &voucher, err
}

func (r *VoucherRepository) List() ([]model.Voucher, error) {
	var vouchers []model.Voucher
	err := r.DB.Order("cost_insights ASC").Find(&vouchers).Error
	return vouchers, err
}

// TakeStock claims one unit only while stock remains; affected=0 means
// sold out.
func (r *VoucherRepository) TakeStock(db *gorm.DB, voucherID uint) (bool, error) {
	res := db.Model(&model.Voucher{}).
		Where("id = ? AND redeemed < total_stock", voucherID).
		UpdateColumn("redeemed", gorm.Expr("redeemed + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *VoucherRepository) CreateRedemption(db *gorm.DB, redemption *model.VoucherRedemption) error {
	return db.Create(redemption).Error
}

func (r *VoucherRepository) ListRedemptions(userID uint) ([]model.VoucherRedemption, error) {
	var redemptions []model.VoucherRedemption
	err := r.DB.Where("user_id = ?", userID).Order("redeemed_at DESC").Find(&redemptions).Error
	return redemptions, err
}
