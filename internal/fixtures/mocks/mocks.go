// Package mocks provides testify mocks for the repository, provider,
// and event bus contracts.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/pkg/repository"
	auctionrepo "github.com/mazadksa/mazad/pkg/repository/auction"
	bidrepo "github.com/mazadksa/mazad/pkg/repository/bid"
	engagementrepo "github.com/mazadksa/mazad/pkg/repository/engagement"
	notificationrepo "github.com/mazadksa/mazad/pkg/repository/notification"
	paymentrepo "github.com/mazadksa/mazad/pkg/repository/payment"
	recommendationrepo "github.com/mazadksa/mazad/pkg/repository/recommendation"
	rewardrepo "github.com/mazadksa/mazad/pkg/repository/reward"
	userrepo "github.com/mazadksa/mazad/pkg/repository/user"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func setup(t testingT, m *mock.Mock, assert func(mock.TestingT) bool) {
	m.Test(t)
	t.Cleanup(func() { assert(t) })
}

// MockUnitOfWork mocks repository.UnitOfWork. By default Do runs the
// given function against the mock itself, so repository expectations
// set on the same instance apply inside the transaction.
type MockUnitOfWork struct {
	mock.Mock

	users           userrepo.Repository
	auctions        auctionrepo.Repository
	bids            bidrepo.Repository
	rewards         rewardrepo.Repository
	notifications   notificationrepo.Repository
	payments        paymentrepo.Repository
	engagement      engagementrepo.Repository
	recommendations recommendationrepo.Repository
}

func NewMockUnitOfWork(t testingT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

// WithUserRepository wires a repository mock into the accessor without
// an explicit expectation.
func (m *MockUnitOfWork) WithUserRepository(r userrepo.Repository) *MockUnitOfWork {
	m.users = r
	return m
}

func (m *MockUnitOfWork) WithAuctionRepository(r auctionrepo.Repository) *MockUnitOfWork {
	m.auctions = r
	return m
}

func (m *MockUnitOfWork) WithBidRepository(r bidrepo.Repository) *MockUnitOfWork {
	m.bids = r
	return m
}

func (m *MockUnitOfWork) WithRewardRepository(r rewardrepo.Repository) *MockUnitOfWork {
	m.rewards = r
	return m
}

func (m *MockUnitOfWork) WithNotificationRepository(r notificationrepo.Repository) *MockUnitOfWork {
	m.notifications = r
	return m
}

func (m *MockUnitOfWork) WithPaymentRepository(r paymentrepo.Repository) *MockUnitOfWork {
	m.payments = r
	return m
}

func (m *MockUnitOfWork) WithEngagementRepository(r engagementrepo.Repository) *MockUnitOfWork {
	m.engagement = r
	return m
}

func (m *MockUnitOfWork) WithRecommendationRepository(r recommendationrepo.Repository) *MockUnitOfWork {
	m.recommendations = r
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) UserRepository() (userrepo.Repository, error) {
	return m.users, nil
}

func (m *MockUnitOfWork) AuctionRepository() (auctionrepo.Repository, error) {
	return m.auctions, nil
}

func (m *MockUnitOfWork) BidRepository() (bidrepo.Repository, error) {
	return m.bids, nil
}

func (m *MockUnitOfWork) RewardRepository() (rewardrepo.Repository, error) {
	return m.rewards, nil
}

func (m *MockUnitOfWork) NotificationRepository() (notificationrepo.Repository, error) {
	return m.notifications, nil
}

func (m *MockUnitOfWork) PaymentRepository() (paymentrepo.Repository, error) {
	return m.payments, nil
}

func (m *MockUnitOfWork) EngagementRepository() (engagementrepo.Repository, error) {
	return m.engagement, nil
}

func (m *MockUnitOfWork) RecommendationRepository() (recommendationrepo.Repository, error) {
	return m.recommendations, nil
}

// MockUserRepository mocks user.Repository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockUserRepository) UpdateRewards(ctx context.Context, id uuid.UUID, update *dto.UserRewardUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

// MockAuctionRepository mocks auction.Repository.
type MockAuctionRepository struct {
	mock.Mock
}

func NewMockAuctionRepository(t testingT) *MockAuctionRepository {
	m := &MockAuctionRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockAuctionRepository) Create(ctx context.Context, create *dto.AuctionCreate) (*dto.AuctionRead, error) {
	args := m.Called(ctx, create)
	a, _ := args.Get(0).(*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) Get(ctx context.Context, id int64) (*dto.AuctionRead, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) GetForUpdate(ctx context.Context, id int64) (*dto.AuctionRead, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) List(ctx context.Context, filter *dto.AuctionFilter) ([]*dto.AuctionRead, error) {
	args := m.Called(ctx, filter)
	a, _ := args.Get(0).([]*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) Update(ctx context.Context, id int64, update *dto.AuctionUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockAuctionRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*dto.AuctionRead, error) {
	args := m.Called(ctx, now)
	a, _ := args.Get(0).([]*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) ListActiveByCategories(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error) {
	args := m.Called(ctx, categoryIDs, limit)
	a, _ := args.Get(0).([]*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) ListFeaturedExcluding(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error) {
	args := m.Called(ctx, categoryIDs, limit)
	a, _ := args.Get(0).([]*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) ListByIDs(ctx context.Context, ids []int64) ([]*dto.AuctionRead, error) {
	args := m.Called(ctx, ids)
	a, _ := args.Get(0).([]*dto.AuctionRead)
	return a, args.Error(1)
}

func (m *MockAuctionRepository) Categories(ctx context.Context) ([]*dto.CategoryRead, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*dto.CategoryRead)
	return c, args.Error(1)
}

func (m *MockAuctionRepository) CreateCategory(ctx context.Context, create *dto.CategoryCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockAuctionRepository) CountCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBidRepository mocks bid.Repository.
type MockBidRepository struct {
	mock.Mock
}

func NewMockBidRepository(t testingT) *MockBidRepository {
	m := &MockBidRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockBidRepository) Create(ctx context.Context, create *dto.BidCreate) (*dto.BidRead, error) {
	args := m.Called(ctx, create)
	b, _ := args.Get(0).(*dto.BidRead)
	return b, args.Error(1)
}

func (m *MockBidRepository) ListByAuction(ctx context.Context, auctionID int64) ([]*dto.BidRead, error) {
	args := m.Called(ctx, auctionID)
	b, _ := args.Get(0).([]*dto.BidRead)
	return b, args.Error(1)
}

func (m *MockBidRepository) HighestByAmount(ctx context.Context, auctionID int64) (*dto.BidRead, error) {
	args := m.Called(ctx, auctionID)
	b, _ := args.Get(0).(*dto.BidRead)
	return b, args.Error(1)
}

func (m *MockBidRepository) SetWinning(ctx context.Context, auctionID, bidID int64) error {
	return m.Called(ctx, auctionID, bidID).Error(0)
}

func (m *MockBidRepository) CountByBidder(ctx context.Context, bidderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bidderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBidRepository) CategoriesByBidder(ctx context.Context, bidderID uuid.UUID) ([]int64, error) {
	args := m.Called(ctx, bidderID)
	c, _ := args.Get(0).([]int64)
	return c, args.Error(1)
}

func (m *MockBidRepository) CollaborativeCandidates(ctx context.Context, userID uuid.UUID, minShared, limit int) ([]*dto.CollaborativeCandidate, error) {
	args := m.Called(ctx, userID, minShared, limit)
	c, _ := args.Get(0).([]*dto.CollaborativeCandidate)
	return c, args.Error(1)
}

// MockRewardRepository mocks reward.Repository.
type MockRewardRepository struct {
	mock.Mock
}

func NewMockRewardRepository(t testingT) *MockRewardRepository {
	m := &MockRewardRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockRewardRepository) CreateTransaction(ctx context.Context, create *dto.RewardCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockRewardRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.RewardRead, error) {
	args := m.Called(ctx, userID, limit)
	r, _ := args.Get(0).([]*dto.RewardRead)
	return r, args.Error(1)
}

func (m *MockRewardRepository) SumBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRewardRepository) SumEarned(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRewardRepository) ListAchievements(ctx context.Context, activeOnly bool) ([]*dto.AchievementRead, error) {
	args := m.Called(ctx, activeOnly)
	a, _ := args.Get(0).([]*dto.AchievementRead)
	return a, args.Error(1)
}

func (m *MockRewardRepository) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*dto.UserAchievementRead, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]*dto.UserAchievementRead)
	return a, args.Error(1)
}

func (m *MockRewardRepository) Unlock(ctx context.Context, userID uuid.UUID, achievementID int64) error {
	return m.Called(ctx, userID, achievementID).Error(0)
}

func (m *MockRewardRepository) CreateAchievement(ctx context.Context, create *dto.AchievementCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockRewardRepository) CountAchievements(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository mocks notification.Repository.
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t testingT) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, create *dto.NotificationCreate) (*dto.NotificationRead, error) {
	args := m.Called(ctx, create)
	n, _ := args.Get(0).(*dto.NotificationRead)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*dto.NotificationRead, error) {
	args := m.Called(ctx, userID, unreadOnly)
	n, _ := args.Get(0).([]*dto.NotificationRead)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNotificationRepository) MarkEmailSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockPaymentRepository mocks payment.Repository.
type MockPaymentRepository struct {
	mock.Mock
}

func NewMockPaymentRepository(t testingT) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockPaymentRepository) CreateDeposit(ctx context.Context, create *dto.DepositCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockPaymentRepository) GetDeposit(ctx context.Context, id uuid.UUID) (*dto.DepositRead, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*dto.DepositRead)
	return d, args.Error(1)
}

func (m *MockPaymentRepository) GetDepositByIntent(ctx context.Context, paymentIntentID string) (*dto.DepositRead, error) {
	args := m.Called(ctx, paymentIntentID)
	d, _ := args.Get(0).(*dto.DepositRead)
	return d, args.Error(1)
}

func (m *MockPaymentRepository) UpdateDeposit(ctx context.Context, id uuid.UUID, update *dto.DepositUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockPaymentRepository) ListDepositsByAuction(ctx context.Context, auctionID int64) ([]*dto.DepositRead, error) {
	args := m.Called(ctx, auctionID)
	d, _ := args.Get(0).([]*dto.DepositRead)
	return d, args.Error(1)
}

func (m *MockPaymentRepository) CreateTransaction(ctx context.Context, create *dto.PaymentCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockPaymentRepository) GetTransactionByIntent(ctx context.Context, paymentIntentID string) (*dto.PaymentRead, error) {
	args := m.Called(ctx, paymentIntentID)
	p, _ := args.Get(0).(*dto.PaymentRead)
	return p, args.Error(1)
}

func (m *MockPaymentRepository) UpdateTransaction(ctx context.Context, id uuid.UUID, update *dto.PaymentUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

// MockEngagementRepository mocks engagement.Repository.
type MockEngagementRepository struct {
	mock.Mock
}

func NewMockEngagementRepository(t testingT) *MockEngagementRepository {
	m := &MockEngagementRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockEngagementRepository) CreateBehavior(ctx context.Context, create *dto.BehaviorCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockEngagementRepository) ListBehavior(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.BehaviorRead, error) {
	args := m.Called(ctx, userID, limit)
	b, _ := args.Get(0).([]*dto.BehaviorRead)
	return b, args.Error(1)
}

func (m *MockEngagementRepository) CountBidsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) TrendingSince(ctx context.Context, since time.Time, limit int) ([]*dto.AuctionActivity, error) {
	args := m.Called(ctx, since, limit)
	a, _ := args.Get(0).([]*dto.AuctionActivity)
	return a, args.Error(1)
}

func (m *MockEngagementRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesRead, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*dto.PreferencesRead)
	return p, args.Error(1)
}

func (m *MockEngagementRepository) UpsertPreferences(ctx context.Context, upsert *dto.PreferencesUpsert) error {
	return m.Called(ctx, upsert).Error(0)
}

// MockRecommendationRepository mocks recommendation.Repository.
type MockRecommendationRepository struct {
	mock.Mock
}

func NewMockRecommendationRepository(t testingT) *MockRecommendationRepository {
	m := &MockRecommendationRepository{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockRecommendationRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []*dto.RecommendationCreate) error {
	return m.Called(ctx, userID, recs).Error(0)
}

func (m *MockRecommendationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.RecommendationRead, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]*dto.RecommendationRead)
	return r, args.Error(1)
}

func (m *MockRecommendationRepository) MarkViewed(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecommendationRepository) MarkClicked(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockPaymentProvider mocks provider.Payment.
type MockPaymentProvider struct {
	mock.Mock
}

func NewMockPaymentProvider(t testingT) *MockPaymentProvider {
	m := &MockPaymentProvider{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockPaymentProvider) CreateIntent(ctx context.Context, params *provider.CreateIntentParams) (*provider.PaymentIntent, error) {
	args := m.Called(ctx, params)
	pi, _ := args.Get(0).(*provider.PaymentIntent)
	return pi, args.Error(1)
}

func (m *MockPaymentProvider) GetIntent(ctx context.Context, intentID string) (*provider.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	pi, _ := args.Get(0).(*provider.PaymentIntent)
	return pi, args.Error(1)
}

func (m *MockPaymentProvider) HandleWebhook(payload []byte, signature string) (*provider.PaymentEvent, error) {
	args := m.Called(payload, signature)
	e, _ := args.Get(0).(*provider.PaymentEvent)
	return e, args.Error(1)
}

// MockEmailProvider mocks provider.Email.
type MockEmailProvider struct {
	mock.Mock
}

func NewMockEmailProvider(t testingT) *MockEmailProvider {
	m := &MockEmailProvider{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockEmailProvider) Send(ctx context.Context, msg *provider.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockEmailProvider) Enabled() bool {
	return m.Called().Bool(0)
}

// MockTextGenerator mocks provider.TextGenerator.
type MockTextGenerator struct {
	mock.Mock
}

func NewMockTextGenerator(t testingT) *MockTextGenerator {
	m := &MockTextGenerator{}
	setup(t, &m.Mock, m.AssertExpectations)
	return m
}

func (m *MockTextGenerator) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
