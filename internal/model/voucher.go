package model

import "time"

// Voucher is a partner reward purchasable with insights.
type Voucher struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PartnerName  string     `gorm:"size:100" json:"partnerName"`
	CostInsights int        `gorm:"not null" json:"costInsights"`
	TotalStock   int        `gorm:"not null" json:"totalStock"`
	Redeemed     int        `gorm:"default:0" json:"redeemed"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

type VoucherRedemption struct {
	BaseModel
	UserID     uint      `gorm:"index;not null" json:"userId"`
	VoucherID  uint      `gorm:"index;not null" json:"voucherId"`
	Code       string    `gorm:"size:64;uniqueIndex;not null" json:"code"`
	RedeemedAt time.Time `gorm:"not null" json:"redeemedAt"`
}

func (VoucherRedemption) TableName() string {
	return "voucher_redemptions"
}
