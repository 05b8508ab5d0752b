package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nagoyameshi/models"
)

type checkerMock struct {
	mock.Mock
}

func (m *checkerMock) IsSubscribed(userID int64, plan string) (bool, error) {
	args := m.Called(userID, plan)
	return args.Bool(0), args.Error(1)
}

type fixedChecker bool

func (f fixedChecker) IsSubscribed(int64, string) (bool, error) { return bool(f), nil }

var gated = []Feature{
	ProfileFeature,
	ReviewsFeature.WithIndex("/restaurants/1/reviews"),
	ReviewWriteFeature.WithIndex("/restaurants/1/reviews"),
	ReservationsFeature,
	FavoritesFeature,
	SubscribeFeature,
	SubscriptionManageFeature,
}

func TestDecide_AnonymousGoesToLogin(t *testing.T) {
	for _, f := range gated {
		for _, owned := range []bool{false, true} {
			d, err := Decide(AnonymousPrincipal(), Request{Feature: f, Owned: owned, OwnerID: 1}, fixedChecker(true))
			require.NoError(t, err)
			assert.False(t, d.Allow, f.Name)
			assert.Equal(t, LoginPath, d.Redirect, f.Name)
		}
	}
}

func TestDecide_AnonymousOnPublicFeature(t *testing.T) {
	d, err := Decide(AnonymousPrincipal(), Request{Feature: RestaurantsFeature}, nil)
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestDecide_AdministratorGoesToAdminHome(t *testing.T) {
	features := append([]Feature{HomeFeature, RestaurantsFeature, CompanyFeature, TermsFeature}, gated...)
	for _, f := range features {
		d, err := Decide(AdminPrincipal(1), Request{Feature: f}, fixedChecker(true))
		require.NoError(t, err)
		assert.False(t, d.Allow, f.Name)
		assert.Equal(t, AdminHomePath, d.Redirect, f.Name)
	}
}

func TestDecide_UnsubscribedMemberGoesToSignup(t *testing.T) {
	for _, f := range []Feature{ReviewWriteFeature, ReservationsFeature, FavoritesFeature, SubscriptionManageFeature} {
		d, err := Decide(MemberPrincipal(7), Request{Feature: f, Owned: true, OwnerID: 7}, fixedChecker(false))
		require.NoError(t, err)
		assert.False(t, d.Allow, f.Name)
		assert.Equal(t, SubscriptionCreatePath, d.Redirect, f.Name)
	}
}

func TestDecide_SubscribedMemberCannotSubscribeAgain(t *testing.T) {
	d, err := Decide(MemberPrincipal(7), Request{Feature: SubscribeFeature}, fixedChecker(true))
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, UserPath, d.Redirect)
	assert.Equal(t, MessageAlreadySubscribed, d.Message)

	d, err = Decide(MemberPrincipal(7), Request{Feature: SubscribeFeature}, fixedChecker(false))
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestDecide_OwnershipMismatch(t *testing.T) {
	f := ReviewWriteFeature.WithIndex("/restaurants/3/reviews")
	d, err := Decide(MemberPrincipal(7), Request{Feature: f, Owned: true, OwnerID: 8}, fixedChecker(true))
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, "/restaurants/3/reviews", d.Redirect)
	assert.Equal(t, MessageUnauthorized, d.Message)

	d, err = Decide(MemberPrincipal(7), Request{Feature: ReservationsFeature, Owned: true, OwnerID: 8}, fixedChecker(true))
	require.NoError(t, err)
	assert.Equal(t, "/reservations", d.Redirect)
}

func TestDecide_SubscriptionCheckedBeforeOwnership(t *testing.T) {
	d, err := Decide(MemberPrincipal(7), Request{Feature: ReservationsFeature, Owned: true, OwnerID: 8}, fixedChecker(false))
	require.NoError(t, err)
	assert.Equal(t, SubscriptionCreatePath, d.Redirect)
}

func TestDecide_ProfileOwnership(t *testing.T) {
	d, err := Decide(MemberPrincipal(7), Request{Feature: ProfileFeature, Owned: true, OwnerID: 9}, nil)
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, UserPath, d.Redirect)

	d, err = Decide(MemberPrincipal(7), Request{Feature: ProfileFeature, Owned: true, OwnerID: 7}, nil)
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestDecide_OwnerAllowed(t *testing.T) {
	m := new(checkerMock)
	m.On("IsSubscribed", int64(7), models.PLAN_PREMIUM).Return(true, nil).Once()

	d, err := Decide(MemberPrincipal(7), Request{Feature: FavoritesFeature, Owned: true, OwnerID: 7}, m)
	require.NoError(t, err)
	assert.True(t, d.Allow)
	m.AssertExpectations(t)
}

func TestDecide_ReQueriesEveryCall(t *testing.T) {
	m := new(checkerMock)
	m.On("IsSubscribed", int64(7), models.PLAN_PREMIUM).Return(true, nil).Once()
	m.On("IsSubscribed", int64(7), models.PLAN_PREMIUM).Return(false, nil).Once()

	req := Request{Feature: ReservationsFeature}
	d, err := Decide(MemberPrincipal(7), req, m)
	require.NoError(t, err)
	assert.True(t, d.Allow)

	d, err = Decide(MemberPrincipal(7), req, m)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionCreatePath, d.Redirect)
	m.AssertExpectations(t)
}

func TestDecide_CheckerErrorIsReturned(t *testing.T) {
	m := new(checkerMock)
	m.On("IsSubscribed", int64(7), models.PLAN_PREMIUM).Return(false, errors.New("db down"))

	_, err := Decide(MemberPrincipal(7), Request{Feature: FavoritesFeature}, m)
	assert.Error(t, err)
}

func TestDecide_MembersFeatureNeverQueriesChecker(t *testing.T) {
	m := new(checkerMock)
	d, err := Decide(MemberPrincipal(7), Request{Feature: ReviewsFeature}, m)
	require.NoError(t, err)
	assert.True(t, d.Allow)
	m.AssertNotCalled(t, "IsSubscribed", mock.Anything, mock.Anything)
}

func TestMemo_CachesWithinRequest(t *testing.T) {
	m := new(checkerMock)
	m.On("IsSubscribed", int64(7), models.PLAN_PREMIUM).Return(true, nil).Once()

	memo := NewMemo(m)
	for i := 0; i < 3; i++ {
		ok, err := memo.IsSubscribed(7, models.PLAN_PREMIUM)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	m.AssertExpectations(t)
}
