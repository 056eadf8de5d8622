package auction

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/middleware"
	auctionsvc "github.com/mazadksa/mazad/pkg/service/auction"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	biddingsvc "github.com/mazadksa/mazad/pkg/service/bidding"
	"github.com/mazadksa/mazad/webapi/common"
)

// Routes registers the auction and category endpoints.
func Routes(
	app *fiber.App,
	auctionSvc *auctionsvc.Service,
	biddingSvc *biddingsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Get("/api/auctions", ListAuctions(auctionSvc))
	app.Post("/api/auctions", middleware.JwtProtected(cfg.Jwt), CreateAuction(auctionSvc, authSvc))
	app.Post("/api/auctions/finalize", middleware.JwtProtected(cfg.Jwt), FinalizeAuctions(auctionSvc))
	app.Get("/api/auctions/:id", GetAuction(auctionSvc))
	app.Get("/api/auctions/:id/bids", ListBids(auctionSvc))
	app.Post("/api/auctions/:id/bids", middleware.JwtProtected(cfg.Jwt), PlaceBid(biddingSvc, authSvc))
	app.Get("/api/categories", ListCategories(auctionSvc))
}

// ListAuctions returns auctions filtered by category, status, and
// featured flag.
func ListAuctions(auctionSvc *auctionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := &dto.AuctionFilter{}
		if raw := c.Query("categoryId"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
			}
			filter.CategoryID = &id
		}
		if status := c.Query("status"); status != "" {
			filter.Status = &status
		}
		if raw := c.Query("featured"); raw != "" {
			featured := raw == "true" || raw == "1"
			filter.Featured = &featured
		}
		auctions, err := auctionSvc.List(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list auctions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Auctions fetched successfully", auctions)
	}
}

// GetAuction returns one auction by ID.
func GetAuction(auctionSvc *auctionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAuctionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid auction ID", err, fiber.StatusBadRequest)
		}
		a, err := auctionSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Auction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Auction fetched successfully", a)
	}
}

// CreateAuction lists a new auction owned by the authenticated user.
func CreateAuction(auctionSvc *auctionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sellerID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateAuctionInput](c)
		if input == nil {
			return err
		}
		currency := input.Currency
		if currency == "" {
			currency = "SAR"
		}
		startTime := input.StartTime
		if startTime.IsZero() {
			startTime = time.Now()
		}
		a, err := auctionSvc.Create(c.Context(), &dto.AuctionCreate{
			TitleAr:       input.TitleAr,
			TitleEn:       input.TitleEn,
			DescriptionAr: input.DescriptionAr,
			DescriptionEn: input.DescriptionEn,
			CategoryID:    input.CategoryID,
			SellerID:      sellerID,
			StartingPrice: input.StartingPrice,
			BidIncrement:  input.BidIncrement,
			Currency:      currency,
			StartTime:     startTime,
			EndTime:       input.EndTime,
			Images:        input.Images,
			Featured:      input.Featured,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create auction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Auction created", a)
	}
}

// ListBids returns an auction's bids enriched with bidder identity.
func ListBids(auctionSvc *auctionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAuctionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid auction ID", err, fiber.StatusBadRequest)
		}
		bids, err := auctionSvc.Bids(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list bids", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bids fetched successfully", bids)
	}
}

// PlaceBid places a bid on behalf of the authenticated user. The bid,
// the refreshed auction, and a confirmation message come back
// together.
func PlaceBid(biddingSvc *biddingsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bidderID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		auctionID, err := parseAuctionID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid auction ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[PlaceBidInput](c)
		if input == nil {
			return err
		}
		bid, auction, err := biddingSvc.PlaceBid(c.Context(), auctionID, bidderID, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Bid rejected", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bid placed successfully", fiber.Map{
			"bid":     bid,
			"auction": auction,
			"message": "Bid placed successfully",
		})
	}
}

// FinalizeAuctions closes every active auction past its end time.
func FinalizeAuctions(auctionSvc *auctionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		finalized, err := auctionSvc.FinalizeExpired(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to finalize auctions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Auctions finalized", fiber.Map{
			"finalized": finalized,
		})
	}
}

// ListCategories returns the category catalog.
func ListCategories(auctionSvc *auctionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := auctionSvc.Categories(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched successfully", categories)
	}
}

func parseAuctionID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (userID uuid.UUID, err error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authSvc.CurrentUserID(token)
}
