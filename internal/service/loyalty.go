package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// TierRung is one entry in the fixed loyalty-tier ladder.
type TierRung struct {
	Tier       string
	MinPoints  int64
	NextTier   string
	NextPoints int64
}

// The ladder is fixed: four rungs, Platinum terminal.
var tierLadder = []TierRung{
	{Tier: "Bronze", MinPoints: 0, NextTier: "Silver", NextPoints: 5000},
	{Tier: "Silver", MinPoints: 5000, NextTier: "Gold", NextPoints: 12000},
	{Tier: "Gold", MinPoints: 12000, NextTier: "Platinum", NextPoints: 20000},
	{Tier: "Platinum", MinPoints: 20000},
}

// TierProgress describes how far a balance has climbed toward the next rung.
type TierProgress struct {
	CurrentTier     string  `json:"currentTier"`
	NextTier        *string `json:"nextTier"`
	ProgressPercent int     `json:"progressPercent"`
	PointsToNext    int64   `json:"pointsToNext"`
}

// ResolveTierProgress locates the rung matching the tier label
// (case-insensitive, defaulting to the lowest rung) and computes the clamped
// progress toward the next rung. A terminal rung reports 100% and zero
// points to next.
func ResolveTierProgress(tier string, points int64) TierProgress {
	entry := tierLadder[0]
	for _, rung := range tierLadder {
		if strings.EqualFold(rung.Tier, tier) {
			entry = rung
			break
		}
	}

	if entry.NextPoints == 0 {
		return TierProgress{
			CurrentTier:     entry.Tier,
			NextTier:        nil,
			ProgressPercent: 100,
			PointsToNext:    0,
		}
	}

	span := entry.NextPoints - entry.MinPoints
	if span < 1 {
		span = 1
	}
	progress := points - entry.MinPoints
	if progress < 0 {
		progress = 0
	}
	if progress > span {
		progress = span
	}

	next := entry.NextTier
	pointsToNext := entry.NextPoints - points
	if pointsToNext < 0 {
		pointsToNext = 0
	}

	return TierProgress{
		CurrentTier:     entry.Tier,
		NextTier:        &next,
		ProgressPercent: int(math.Round(float64(progress) / float64(span) * 100)),
		PointsToNext:    pointsToNext,
	}
}

// PointsForTotal converts an order total into a point award:
// floor(total dollars × rate). Non-positive rates award nothing.
func PointsForTotal(totalCents int64, pointsPerDollar float64) int64 {
	if pointsPerDollar <= 0 {
		return 0
	}
	return int64(math.Floor(float64(totalCents) / 100 * pointsPerDollar))
}

// LoyaltyService owns the points rate resolution and the order-to-points
// side effect.
type LoyaltyService struct {
	settings    *repository.SettingRepository
	customers   *repository.CustomerRepository
	loyalty     *repository.LoyaltyRepository
	defaultRate float64
}

// NewLoyaltyService creates a new loyalty service. defaultRate is the
// configured fallback used when no setting record exists.
func NewLoyaltyService(repos *repository.Repositories, defaultRate float64) *LoyaltyService {
	if defaultRate < 0 {
		defaultRate = 1
	}
	return &LoyaltyService{
		settings:    repos.Setting,
		customers:   repos.Customer,
		loyalty:     repos.Loyalty,
		defaultRate: defaultRate,
	}
}

// PointsPerDollar resolves the configured rate: setting record first, then
// the configured default. A failed or unparseable read falls back silently.
func (s *LoyaltyService) PointsPerDollar(ctx context.Context) float64 {
	setting, err := s.settings.Get(ctx, models.SettingLoyaltyPointsPerDollar)
	if err != nil {
		logrus.WithError(err).Error("Failed to read loyalty points setting")
		return s.defaultRate
	}
	if setting == nil {
		return s.defaultRate
	}

	rate, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || rate < 0 {
		return s.defaultRate
	}
	return rate
}

// SetPointsPerDollar upserts the rate setting, recording the editor.
func (s *LoyaltyService) SetPointsPerDollar(ctx context.Context, rate float64, updatedBy *uuid.UUID) (*models.Setting, error) {
	value := strconv.FormatFloat(rate, 'f', -1, 64)
	return s.settings.Upsert(ctx, models.SettingLoyaltyPointsPerDollar, value, updatedBy)
}

// AwardOrderPoints applies the order-creation loyalty side effect: an atomic
// balance increment paired with a ledger entry. A zero award writes nothing.
// Failures are logged and swallowed; loyalty never fails the order.
func (s *LoyaltyService) AwardOrderPoints(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID, totalCents int64) *models.OrderLoyalty {
	if totalCents <= 0 {
		return nil
	}

	points := PointsForTotal(totalCents, s.PointsPerDollar(ctx))
	if points <= 0 {
		return nil
	}

	customer, err := s.customers.IncrementPoints(ctx, customerID, points)
	if err != nil {
		logrus.WithError(err).WithField("customer_id", customerID).
			Warn("Order created but customer record missing for loyalty update")
		return nil
	}

	description := fmt.Sprintf("Points earned from order %s", orderID)
	if _, err := s.loyalty.AppendTransaction(ctx, customerID, points, description); err != nil {
		logrus.WithError(err).Error("Failed to record loyalty transaction")
	}

	return &models.OrderLoyalty{
		PointsAwarded: points,
		PointsBalance: customer.PointsBalance,
	}
}
