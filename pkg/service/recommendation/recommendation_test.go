package recommendation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mazadksa/mazad/internal/fixtures/mocks"
	"github.com/mazadksa/mazad/pkg/domain/engagement"
	"github.com/mazadksa/mazad/pkg/domain/reward"
	"github.com/mazadksa/mazad/pkg/dto"
	recommendationsvc "github.com/mazadksa/mazad/pkg/service/recommendation"
)

type fixture struct {
	svc            *recommendationsvc.Service
	auctionRepo    *mocks.MockAuctionRepository
	bidRepo        *mocks.MockBidRepository
	engagementRepo *mocks.MockEngagementRepository
	recoRepo       *mocks.MockRecommendationRepository
	textgen        *mocks.MockTextGenerator
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		auctionRepo:    mocks.NewMockAuctionRepository(t),
		bidRepo:        mocks.NewMockBidRepository(t),
		engagementRepo: mocks.NewMockEngagementRepository(t),
		recoRepo:       mocks.NewMockRecommendationRepository(t),
		textgen:        mocks.NewMockTextGenerator(t),
	}
	uow := mocks.NewMockUnitOfWork(t).
		WithAuctionRepository(f.auctionRepo).
		WithBidRepository(f.bidRepo).
		WithEngagementRepository(f.engagementRepo).
		WithRecommendationRepository(f.recoRepo)
	f.svc = recommendationsvc.New(uow, f.textgen, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func TestGenerate_BlendsDedupesAndCaps(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(&dto.PreferencesRead{
		UserID:              userID,
		PreferredCategories: []int64{7},
		InterestScores:      map[int64]float64{7: 3.0},
	}, nil)
	f.auctionRepo.On("ListActiveByCategories", mock.Anything, []int64{7}, 4).
		Return([]*dto.AuctionRead{
			{ID: 100, CategoryID: 7, TitleEn: "Classic Car"},
			{ID: 101, CategoryID: 7, TitleEn: "Vintage Watch"},
		}, nil)
	// Auction 100 also shows up in the collaborative pass; the first
	// occurrence must win.
	f.bidRepo.On("CollaborativeCandidates", mock.Anything, userID, 2, 3).
		Return([]*dto.CollaborativeCandidate{
			{AuctionID: 100, SharedCategories: 3},
			{AuctionID: 102, SharedCategories: 2},
		}, nil)
	f.engagementRepo.On("TrendingSince", mock.Anything, mock.Anything, 2).
		Return([]*dto.AuctionActivity{{AuctionID: 103, Score: 9}}, nil)
	f.auctionRepo.On("ListFeaturedExcluding", mock.Anything, []int64{7}, 1).
		Return([]*dto.AuctionRead{{ID: 104, CategoryID: 9}}, nil)

	var stored []*dto.RecommendationCreate
	f.recoRepo.On("ReplaceForUser", mock.Anything, userID, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*dto.RecommendationCreate)
		}).Return(nil)
	f.recoRepo.On("ListByUser", mock.Anything, userID).Return([]*dto.RecommendationRead{}, nil)

	_, err := f.svc.Generate(context.Background(), userID, 10)
	require.NoError(t, err)

	require.Len(t, stored, 5)
	seen := map[int64]bool{}
	for i, r := range stored {
		assert.False(t, seen[r.AuctionID], "duplicate auction %d", r.AuctionID)
		seen[r.AuctionID] = true
		assert.Equal(t, i+1, r.Position)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, stored[i-1].Score, "scores must be descending")
		}
	}
	assert.Equal(t, dto.RecommendationPersonalized, stored[0].Type)
}

func TestGenerate_TruncatesToLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(&dto.PreferencesRead{
		UserID:              userID,
		PreferredCategories: []int64{7},
		InterestScores:      map[int64]float64{7: 2.0},
	}, nil)
	f.auctionRepo.On("ListActiveByCategories", mock.Anything, []int64{7}, 1).
		Return([]*dto.AuctionRead{
			{ID: 100, CategoryID: 7},
		}, nil)
	f.bidRepo.On("CollaborativeCandidates", mock.Anything, userID, 2, 1).
		Return([]*dto.CollaborativeCandidate{{AuctionID: 101, SharedCategories: 2}}, nil)
	f.engagementRepo.On("TrendingSince", mock.Anything, mock.Anything, 1).
		Return([]*dto.AuctionActivity{{AuctionID: 102, Score: 4}}, nil)
	f.auctionRepo.On("ListFeaturedExcluding", mock.Anything, []int64{7}, 1).
		Return([]*dto.AuctionRead{{ID: 103}}, nil)

	var stored []*dto.RecommendationCreate
	f.recoRepo.On("ReplaceForUser", mock.Anything, userID, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*dto.RecommendationCreate)
		}).Return(nil)
	f.recoRepo.On("ListByUser", mock.Anything, userID).Return([]*dto.RecommendationRead{}, nil)

	_, err := f.svc.Generate(context.Background(), userID, 2)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGenerate_NoPreferencesStillProducesCandidates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(nil, nil)
	f.bidRepo.On("CollaborativeCandidates", mock.Anything, userID, 2, 3).
		Return([]*dto.CollaborativeCandidate{}, nil)
	f.engagementRepo.On("TrendingSince", mock.Anything, mock.Anything, 2).
		Return([]*dto.AuctionActivity{{AuctionID: 103, Score: 20}}, nil)
	f.auctionRepo.On("ListFeaturedExcluding", mock.Anything, mock.Anything, 1).
		Return([]*dto.AuctionRead{{ID: 104}}, nil)

	var stored []*dto.RecommendationCreate
	f.recoRepo.On("ReplaceForUser", mock.Anything, userID, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*dto.RecommendationCreate)
		}).Return(nil)
	f.recoRepo.On("ListByUser", mock.Anything, userID).Return([]*dto.RecommendationRead{}, nil)

	_, err := f.svc.Generate(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestTrackBehavior_UnknownAction(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.svc.TrackBehavior(context.Background(), &dto.BehaviorCreate{
		UserID: uuid.New(),
		Action: "hover",
	})
	assert.ErrorIs(t, err, engagement.ErrUnknownAction)
}

func TestTrackBehavior_AccumulatesInterestAndDerivesStyle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()
	categoryID := int64(7)

	f.engagementRepo.On("CreateBehavior", mock.Anything, mock.Anything).Return(nil)
	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(&dto.PreferencesRead{
		UserID:         userID,
		InterestScores: map[int64]float64{7: 0.5},
	}, nil)
	f.engagementRepo.On("CountBidsSince", mock.Anything, userID, mock.Anything).
		Return(int64(9), nil)
	f.engagementRepo.On("UpsertPreferences", mock.Anything, mock.MatchedBy(func(u *dto.PreferencesUpsert) bool {
		return u.UserID == userID &&
			u.InterestScores[7] == 1.5 &&
			len(u.PreferredCategories) == 1 &&
			u.BiddingStyle == reward.StyleStrategic &&
			u.RiskTolerance == "medium"
	})).Return(nil)

	err := f.svc.TrackBehavior(context.Background(), &dto.BehaviorCreate{
		UserID:     userID,
		Action:     engagement.ActionBid,
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
}

func TestTrackBehavior_ResolvesCategoryFromAuction(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()
	auctionID := int64(55)

	f.engagementRepo.On("CreateBehavior", mock.Anything, mock.Anything).Return(nil)
	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(nil, nil)
	f.auctionRepo.On("Get", mock.Anything, auctionID).
		Return(&dto.AuctionRead{ID: auctionID, CategoryID: 9}, nil)
	f.engagementRepo.On("CountBidsSince", mock.Anything, userID, mock.Anything).
		Return(int64(0), nil)
	f.engagementRepo.On("UpsertPreferences", mock.Anything, mock.MatchedBy(func(u *dto.PreferencesUpsert) bool {
		return u.InterestScores[9] == 0.1 && u.BiddingStyle == reward.StyleConservative
	})).Return(nil)

	err := f.svc.TrackBehavior(context.Background(), &dto.BehaviorCreate{
		UserID:    userID,
		Action:    engagement.ActionView,
		AuctionID: &auctionID,
	})
	require.NoError(t, err)
}

func TestInsight_FallsBackOnGeneratorError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(&dto.PreferencesRead{
		UserID:       userID,
		BiddingStyle: reward.StyleConservative,
	}, nil)
	f.textgen.On("GenerateInsight", mock.Anything, mock.Anything).
		Return("", errors.New("upstream down"))

	insight := f.svc.Insight(context.Background(), userID)
	assert.Contains(t, insight, "Discover auctions")
}

func TestInsight_UsesGeneratedText(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	userID := uuid.New()

	f.engagementRepo.On("GetPreferences", mock.Anything, userID).Return(&dto.PreferencesRead{
		UserID:              userID,
		BiddingStyle:        reward.StyleAggressive,
		PreferredCategories: []int64{1, 2},
	}, nil)
	f.textgen.On("GenerateInsight", mock.Anything, mock.Anything).
		Return("Your watch auctions are heating up.", nil)

	insight := f.svc.Insight(context.Background(), userID)
	assert.Equal(t, "Your watch auctions are heating up.", insight)
}
