package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherService struct {
	VoucherRepo *repository.VoucherRepository
	UserRepo    *repository.UserRepository
	DB          *gorm.DB
}

func NewVoucherService(voucherRepo *repository.VoucherRepository, userRepo *repository.UserRepository, db *gorm.DB) *VoucherService {
	return &VoucherService{
		VoucherRepo: voucherRepo,
		UserRepo:    userRepo,
		DB:          db,
	}
}

type VoucherInput struct {
	Title        string     `json:"title" binding:"required,max=120"`
	PartnerName  string     `json:"partnerName" binding:"required,max=120"`
	Description  string     `json:"description"`
	CostInsights int        `json:"costInsights" binding:"required,gt=0"`
	TotalStock   int        `json:"totalStock" binding:"required,gt=0"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (s *VoucherService) Create(input VoucherInput) (*model.Voucher, error) {
	voucher := &model.Voucher{
		Title:        input.Title,
		PartnerName:  input.PartnerName,
		Description:  input.Description,
		CostInsights: input.CostInsights,
		TotalStock:   input.TotalStock,
		ExpiresAt:    input.ExpiresAt,
	}
	if err := s.VoucherRepo.Create(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

func (s *VoucherService) List() ([]model.Voucher, error) {
	return s.VoucherRepo.List()
}

func (s *VoucherService) ListRedemptions(userID uint) ([]model.VoucherRedemption, error) {
	return s.VoucherRepo.ListRedemptions(userID)
}

// Redeem exchanges insights for a voucher code. Stock claim and
// insight debit are both conditional updates inside one transaction,
// so concurrent redemptions can neither oversell nor overdraw.
func (s *VoucherService) Redeem(userID, voucherID uint) (*model.VoucherRedemption, error) {
	var redemption *model.VoucherRedemption

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		voucher, err := s.VoucherRepo.FindByID(tx, voucherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrVoucherNotFound
			}
			return err
		}

		if voucher.ExpiresAt != nil && voucher.ExpiresAt.Before(time.Now()) {
			return util.ErrVoucherExpired
		}

		took, err := s.VoucherRepo.TakeStock(tx, voucherID)
		if err != nil {
			return err
		}
		if !took {
			return util.ErrVoucherSoldOut
		}

		paid, err := s.UserRepo.SpendInsights(tx, userID, voucher.CostInsights)
		if err != nil {
			return err
		}
		if !paid {
			return util.ErrInsufficientInsights
		}

		redemption = &model.VoucherRedemption{
			UserID:     userID,
			VoucherID:  voucherID,
			Code:       redemptionCode(),
			RedeemedAt: time.Now(),
		}
		return s.VoucherRepo.CreateRedemption(tx, redemption)
	})

	if err != nil {
		return nil, err
	}
	return redemption, nil
}

// redemptionCode derives a short partner-facing code from a UUID.
func redemptionCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "EP-" + strings.ToUpper(raw[:10])
}
