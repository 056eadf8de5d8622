// Package recommendation implements the heuristic recommendation
// engine: four scored candidate passes blended into one ranked,
// per-user persisted list, plus the behavior tracking that maintains
// the interest scores driving it.
package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/domain/engagement"
	domainreward "github.com/mazadksa/mazad/pkg/domain/reward"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/pkg/repository"
)

// DefaultLimit is used when callers do not specify a list size.
const DefaultLimit = 10

// minSharedCategories is the overlap a pair of bidders needs before the
// collaborative pass considers them similar.
const minSharedCategories = 2

// defaultInsight is returned whenever the text generator is
// unavailable.
const defaultInsight = "اكتشف مزادات مختارة لك — Discover auctions picked for you based on your activity."

// Service generates and serves per-user auction recommendations.
type Service struct {
	uow     repository.UnitOfWork
	textgen provider.TextGenerator
	logger  *slog.Logger
}

// New creates a recommendation Service.
func New(uow repository.UnitOfWork, textgen provider.TextGenerator, logger *slog.Logger) *Service {
	return &Service{uow: uow, textgen: textgen, logger: logger}
}

type candidate struct {
	auctionID int64
	score     float64
	reason    string
	recType   string
}

// Generate rebuilds the user's recommendation list: content-based,
// collaborative, trending, and exploratory passes proportioned roughly
// 40/30/20/10 of limit, deduplicated by auction (first occurrence
// wins), sorted by score descending, truncated to limit, and persisted
// by replacing the previous set.
func (s *Service) Generate(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) (recs []*dto.RecommendationRead, err error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		candidates, err := s.collectCandidates(ctx, uow, userID, limit)
		if err != nil {
			return err
		}

		seen := make(map[int64]bool, len(candidates))
		deduped := candidates[:0]
		for _, c := range candidates {
			if seen[c.auctionID] {
				continue
			}
			seen[c.auctionID] = true
			deduped = append(deduped, c)
		}
		sort.SliceStable(deduped, func(i, j int) bool {
			return deduped[i].score > deduped[j].score
		})
		if len(deduped) > limit {
			deduped = deduped[:limit]
		}

		creates := make([]*dto.RecommendationCreate, 0, len(deduped))
		for i, c := range deduped {
			creates = append(creates, &dto.RecommendationCreate{
				UserID:    userID,
				AuctionID: c.auctionID,
				Score:     c.score,
				Reason:    c.reason,
				Type:      c.recType,
				Position:  i + 1,
			})
		}

		recoRepo, err := uow.RecommendationRepository()
		if err != nil {
			return err
		}
		if err = recoRepo.ReplaceForUser(ctx, userID, creates); err != nil {
			return err
		}
		recs, err = recoRepo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("recommendations regenerated", "user_id", userID, "count", len(recs))
	return recs, nil
}

func (s *Service) collectCandidates(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	limit int,
) ([]candidate, error) {
	auctionRepo, err := uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	bidRepo, err := uow.BidRepository()
	if err != nil {
		return nil, err
	}
	engRepo, err := uow.EngagementRepository()
	if err != nil {
		return nil, err
	}

	prefs, err := engRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	var preferred []int64
	interest := map[int64]float64{}
	if prefs != nil {
		preferred = prefs.PreferredCategories
		interest = prefs.InterestScores
	}

	candidates := make([]candidate, 0, limit*2)

	// Content-based: active auctions in preferred categories, weighted
	// by the category interest score.
	if n := share(limit, 40); n > 0 && len(preferred) > 0 {
		auctions, err := auctionRepo.ListActiveByCategories(ctx, preferred, n)
		if err != nil {
			return nil, err
		}
		for _, a := range auctions {
			candidates = append(candidates, candidate{
				auctionID: a.ID,
				score:     clampScore(interest[a.CategoryID] * 0.8),
				reason:    fmt.Sprintf("يطابق اهتمامك — matches your interest in %s", a.TitleEn),
				recType:   dto.RecommendationPersonalized,
			})
		}
	}

	// Collaborative: auctions bid on by users sharing bid categories.
	if n := share(limit, 30); n > 0 {
		similar, err := bidRepo.CollaborativeCandidates(ctx, userID, minSharedCategories, n)
		if err != nil {
			return nil, err
		}
		for _, c := range similar {
			candidates = append(candidates, candidate{
				auctionID: c.AuctionID,
				score:     clampScore(minFloat(float64(c.SharedCategories)*0.15, 0.9)),
				reason:    "مزايدون مشابهون لك اهتموا بهذا — bidders like you are interested in this",
				recType:   dto.RecommendationSimilar,
			})
		}
	}

	// Trending: most behavior activity in the last 24 hours.
	if n := share(limit, 20); n > 0 {
		activity, err := engRepo.TrendingSince(ctx, time.Now().UTC().Add(-24*time.Hour), n)
		if err != nil {
			return nil, err
		}
		for _, t := range activity {
			candidates = append(candidates, candidate{
				auctionID: t.AuctionID,
				score:     clampScore(minFloat(float64(t.Score)*0.1, 0.8)),
				reason:    "رائج الآن — trending right now",
				recType:   dto.RecommendationTrending,
			})
		}
	}

	// Exploratory: featured auctions outside the preferred categories.
	if n := share(limit, 10); n > 0 {
		featured, err := auctionRepo.ListFeaturedExcluding(ctx, preferred, n)
		if err != nil {
			return nil, err
		}
		for _, a := range featured {
			candidates = append(candidates, candidate{
				auctionID: a.ID,
				score:     0.6,
				reason:    "اكتشف شيئاً جديداً — discover something new",
				recType:   dto.RecommendationCategory,
			})
		}
	}

	return candidates, nil
}

// TrackBehavior appends one behavior event and refreshes the user's
// derived preferences: interest accumulation per category, preferred
// set, and bidding style from the trailing week of bid events.
func (s *Service) TrackBehavior(ctx context.Context, create *dto.BehaviorCreate) error {
	if _, err := engagement.ActionWeight(create.Action); err != nil {
		return err
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		engRepo, err := uow.EngagementRepository()
		if err != nil {
			return err
		}

		if err = engRepo.CreateBehavior(ctx, create); err != nil {
			return err
		}

		prefs, err := engRepo.GetPreferences(ctx, create.UserID)
		if err != nil {
			return err
		}
		if prefs == nil {
			prefs = &dto.PreferencesRead{
				UserID:         create.UserID,
				InterestScores: map[int64]float64{},
				BiddingStyle:   domainreward.StyleConservative,
				RiskTolerance:  riskForStyle(domainreward.StyleConservative),
			}
		}
		if prefs.InterestScores == nil {
			prefs.InterestScores = map[int64]float64{}
		}

		categoryID, err := s.resolveCategory(ctx, uow, create)
		if err != nil {
			return err
		}
		if categoryID != 0 {
			next, err := engagement.AccumulateInterest(prefs.InterestScores[categoryID], create.Action)
			if err != nil {
				return err
			}
			prefs.InterestScores[categoryID] = next
		}

		weekAgo := time.Now().UTC().Add(-7 * 24 * time.Hour)
		weeklyBids, err := engRepo.CountBidsSince(ctx, create.UserID, weekAgo)
		if err != nil {
			return err
		}
		style := domainreward.StyleForWeeklyBids(int(weeklyBids))

		return engRepo.UpsertPreferences(ctx, &dto.PreferencesUpsert{
			UserID:              create.UserID,
			PreferredCategories: engagement.PreferredCategories(prefs.InterestScores),
			InterestScores:      prefs.InterestScores,
			BiddingStyle:        style,
			RiskTolerance:       riskForStyle(style),
		})
	})
}

// resolveCategory returns the category context of a behavior event,
// falling back to the auction's category when only the auction is
// known. Zero means no category context.
func (s *Service) resolveCategory(
	ctx context.Context,
	uow repository.UnitOfWork,
	create *dto.BehaviorCreate,
) (int64, error) {
	if create.CategoryID != nil {
		return *create.CategoryID, nil
	}
	if create.AuctionID == nil {
		return 0, nil
	}
	auctionRepo, err := uow.AuctionRepository()
	if err != nil {
		return 0, err
	}
	a, err := auctionRepo.Get(ctx, *create.AuctionID)
	if err != nil {
		return 0, err
	}
	return a.CategoryID, nil
}

// List returns the user's current recommendation set.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.RecommendationRead, error) {
	recoRepo, err := s.uow.RecommendationRepository()
	if err != nil {
		return nil, err
	}
	return recoRepo.ListByUser(ctx, userID)
}

// MarkViewed flags a recommendation as seen.
func (s *Service) MarkViewed(ctx context.Context, userID uuid.UUID, id int64) error {
	recoRepo, err := s.uow.RecommendationRepository()
	if err != nil {
		return err
	}
	return recoRepo.MarkViewed(ctx, userID, id)
}

// MarkClicked flags a recommendation as clicked through.
func (s *Service) MarkClicked(ctx context.Context, userID uuid.UUID, id int64) error {
	recoRepo, err := s.uow.RecommendationRepository()
	if err != nil {
		return err
	}
	return recoRepo.MarkClicked(ctx, userID, id)
}

// Preferences returns the user's derived engagement state.
func (s *Service) Preferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesRead, error) {
	engRepo, err := s.uow.EngagementRepository()
	if err != nil {
		return nil, err
	}
	return engRepo.GetPreferences(ctx, userID)
}

// Insight produces a short bilingual insight for the user's current
// recommendation set. Upstream failures degrade to a static default.
func (s *Service) Insight(ctx context.Context, userID uuid.UUID) string {
	prefs, err := s.Preferences(ctx, userID)
	if err != nil || prefs == nil {
		return defaultInsight
	}
	prompt := fmt.Sprintf(
		"Write one short bilingual (Arabic/English) sentence inviting an auction bidder "+
			"with a %s bidding style and %d preferred categories to explore their recommendations.",
		prefs.BiddingStyle, len(prefs.PreferredCategories),
	)
	text, err := s.textgen.GenerateInsight(ctx, prompt)
	if err != nil || text == "" {
		s.logger.Warn("insight generation failed, using default", "error", err)
		return defaultInsight
	}
	return text
}

// share apportions pct percent of limit, at least one slot when any
// limit remains.
func share(limit, pct int) int {
	n := limit * pct / 100
	if n < 1 && limit > 0 {
		n = 1
	}
	return n
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func riskForStyle(style string) string {
	switch style {
	case domainreward.StyleAggressive:
		return "high"
	case domainreward.StyleStrategic:
		return "medium"
	default:
		return "low"
	}
}
