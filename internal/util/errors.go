package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNodeNotFound         = errors.New("learning node not found")
	ErrNodeLocked           = errors.New("learning node is locked")
	ErrNodeAlreadyCompleted = errors.New("learning node already completed")
	ErrNoHearts             = errors.New("No hearts remaining")
	ErrDailyShareLimit      = errors.New("daily story limit reached")
	ErrStoryNotFound        = errors.New("story not found")
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrVoucherSoldOut       = errors.New("voucher sold out")
	ErrVoucherExpired       = errors.New("voucher expired")
	ErrInsufficientInsights = errors.New("not enough insights")
	ErrLocationNotFound     = errors.New("location not found")
	ErrSurveyNotActive      = errors.New("voice survey not active")
)
