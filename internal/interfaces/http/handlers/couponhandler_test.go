package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"klippa/internal/application/widget/dto"
	"klippa/internal/application/widget/usecases"
	"klippa/internal/domain/coupon"
	"klippa/internal/interfaces/http/handlers/testutil"
)

func assertErr() error {
	return stderrors.New("boom")
}

type mockListCoupons struct {
	mock.Mock
}

func (m *mockListCoupons) Execute(ctx context.Context, query usecases.ListAvailableCouponsQuery) (*dto.AvailabilityDTO, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityDTO), args.Error(1)
}

type mockClaimCoupon struct {
	mock.Mock
}

func (m *mockClaimCoupon) Execute(ctx context.Context, cmd usecases.ClaimCouponCommand) (*dto.ClaimDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClaimDTO), args.Error(1)
}

func TestCouponHandler_ListAvailable(t *testing.T) {
	t.Run("returns the availability for the session identity", func(t *testing.T) {
		list := new(mockListCoupons)
		list.On("Execute", mock.Anything, usecases.ListAvailableCouponsQuery{
			VendorSID: "vnd_test",
			UserSID:   "usr_test",
		}).Return(&dto.AvailabilityDTO{
			Coupons:    []dto.CouponDTO{{ID: "cpn_a"}, {ID: "cpn_b", IsClaimed: true}},
			ClaimMonth: "2026-09",
		}, nil)
		handler := NewCouponHandler(list, nil, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/widget/available-coupons", nil)
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		handler.ListAvailable(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var availability dto.AvailabilityDTO
		require.NoError(t, testutil.ParseResponse(w, &availability))
		assert.Len(t, availability.Coupons, 2)
		assert.Equal(t, "2026-09", availability.ClaimMonth)
		list.AssertExpectations(t)
	})

	t.Run("missing session identity is unauthorized", func(t *testing.T) {
		list := new(mockListCoupons)
		handler := NewCouponHandler(list, nil, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/widget/available-coupons", nil)
		handler.ListAvailable(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		list.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("vendor query mismatch is forbidden", func(t *testing.T) {
		list := new(mockListCoupons)
		handler := NewCouponHandler(list, nil, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/widget/available-coupons", nil)
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		testutil.SetQueryParams(c, map[string]string{"vendor": "vnd_other"})
		handler.ListAvailable(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var wire testutil.WireError
		require.NoError(t, testutil.ParseResponse(w, &wire))
		assert.Equal(t, "vendor mismatch", wire.Error)
		list.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("matching vendor query is served", func(t *testing.T) {
		list := new(mockListCoupons)
		list.On("Execute", mock.Anything, mock.Anything).Return(&dto.AvailabilityDTO{}, nil)
		handler := NewCouponHandler(list, nil, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/widget/available-coupons", nil)
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		testutil.SetQueryParams(c, map[string]string{"vendor": "vnd_test"})
		handler.ListAvailable(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCouponHandler_Claim(t *testing.T) {
	t.Run("returns the claim result with the revealed code", func(t *testing.T) {
		now := time.Now().UTC()
		code := "SAVE20"
		claim := new(mockClaimCoupon)
		claim.On("Execute", mock.Anything, usecases.ClaimCouponCommand{
			VendorSID: "vnd_test",
			UserSID:   "usr_test",
			CouponSID: "cpn_test",
		}).Return(&dto.ClaimDTO{
			CouponCode: code,
			Coupon:     dto.CouponDTO{ID: "cpn_test", Code: &code, IsClaimed: true, ClaimedAt: &now},
		}, nil)
		handler := NewCouponHandler(nil, claim, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/widget/claim",
			map[string]string{"coupon_id": "cpn_test"})
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		handler.Claim(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var result dto.ClaimDTO
		require.NoError(t, testutil.ParseResponse(w, &result))
		assert.Equal(t, "SAVE20", result.CouponCode)
		assert.True(t, result.Coupon.IsClaimed)
		claim.AssertExpectations(t)
	})

	t.Run("missing session identity is unauthorized", func(t *testing.T) {
		claim := new(mockClaimCoupon)
		handler := NewCouponHandler(nil, claim, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/widget/claim",
			map[string]string{"coupon_id": "cpn_test"})
		handler.Claim(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		claim.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("missing coupon id is rejected before the use case", func(t *testing.T) {
		claim := new(mockClaimCoupon)
		handler := NewCouponHandler(nil, claim, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/widget/claim", map[string]string{})
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		handler.Claim(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var wire testutil.WireError
		require.NoError(t, testutil.ParseResponse(w, &wire))
		assert.Equal(t, "coupon_id is required", wire.Error)
		claim.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("taken coupon surfaces the stable reason code", func(t *testing.T) {
		claim := new(mockClaimCoupon)
		claim.On("Execute", mock.Anything, mock.Anything).
			Return(nil, coupon.NewCouponAlreadyClaimedError())
		handler := NewCouponHandler(nil, claim, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/widget/claim",
			map[string]string{"coupon_id": "cpn_test"})
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		handler.Claim(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var wire testutil.WireError
		require.NoError(t, testutil.ParseResponse(w, &wire))
		assert.Equal(t, "COUPON_ALREADY_CLAIMED", wire.Error)
	})

	t.Run("monthly limit surfaces the stable reason code", func(t *testing.T) {
		claim := new(mockClaimCoupon)
		claim.On("Execute", mock.Anything, mock.Anything).
			Return(nil, coupon.NewUserAlreadyClaimedError())
		handler := NewCouponHandler(nil, claim, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/widget/claim",
			map[string]string{"coupon_id": "cpn_test"})
		testutil.SetSessionContext(c, "usr_test", "vnd_test")
		handler.Claim(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var wire testutil.WireError
		require.NoError(t, testutil.ParseResponse(w, &wire))
		assert.Equal(t, "USER_ALREADY_CLAIMED", wire.Error)
	})
}
