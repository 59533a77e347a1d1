package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestVouchers(t *testing.T, db *gorm.DB) *VoucherService {
	t.Helper()
	return NewVoucherService(
		repository.NewVoucherRepository(db),
		repository.NewUserRepository(db),
		db,
	)
}

func TestRedeemVoucher(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVouchers(t, db)
	user := createTestUser(t, db, 100, 5)

	voucher, err := svc.Create(VoucherInput{
		Title:        "Free coffee",
		PartnerName:  "Old Mill Roasters",
		CostInsights: 40,
		TotalStock:   5,
	})
	require.NoError(t, err)

	redemption, err := svc.Redeem(user.ID, voucher.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, redemption.Code)
	assert.Equal(t, user.ID, redemption.UserID)

	refreshed := &model.User{}
	require.NoError(t, db.First(refreshed, user.ID).Error)
	assert.Equal(t, 60, refreshed.Insights)

	stocked := &model.Voucher{}
	require.NoError(t, db.First(stocked, voucher.ID).Error)
	assert.Equal(t, 1, stocked.Redeemed)
}

func TestRedeemInsufficientInsightsRollsBackStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVouchers(t, db)
	user := createTestUser(t, db, 10, 5)

	voucher, err := svc.Create(VoucherInput{
		Title:        "Market tote",
		PartnerName:  "Harbour Market",
		CostInsights: 50,
		TotalStock:   3,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(user.ID, voucher.ID)
	assert.ErrorIs(t, err, util.ErrInsufficientInsights)

	// The stock claim inside the failed transaction must be undone.
	stocked := &model.Voucher{}
	require.NoError(t, db.First(stocked, voucher.ID).Error)
	assert.Equal(t, 0, stocked.Redeemed)

	refreshed := &model.User{}
	require.NoError(t, db.First(refreshed, user.ID).Error)
	assert.Equal(t, 10, refreshed.Insights)
}

func TestRedeemSoldOut(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVouchers(t, db)
	rich := createTestUser(t, db, 500, 5)
	second := createTestUser(t, db, 500, 5)

	voucher, err := svc.Create(VoucherInput{
		Title:        "Garden workshop",
		PartnerName:  "Meadow Park Collective",
		CostInsights: 30,
		TotalStock:   1,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(rich.ID, voucher.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(second.ID, voucher.ID)
	assert.ErrorIs(t, err, util.ErrVoucherSoldOut)

	refreshed := &model.User{}
	require.NoError(t, db.First(refreshed, second.ID).Error)
	assert.Equal(t, 500, refreshed.Insights)
}

func TestRedeemExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVouchers(t, db)
	user := createTestUser(t, db, 500, 5)

	past := time.Now().Add(-time.Hour)
	voucher, err := svc.Create(VoucherInput{
		Title:        "Summer fair entry",
		PartnerName:  "Riverton Events",
		CostInsights: 20,
		TotalStock:   10,
		ExpiresAt:    &past,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(user.ID, voucher.ID)
	assert.ErrorIs(t, err, util.ErrVoucherExpired)

	_, err = svc.Redeem(user.ID, 99999)
	assert.ErrorIs(t, err, util.ErrVoucherNotFound)
}
