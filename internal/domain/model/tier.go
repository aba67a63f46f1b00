package model

type SubscriptionTier string

const (
	TierBasic    SubscriptionTier = "basic"
	TierStandard SubscriptionTier = "standard"
	TierPremium  SubscriptionTier = "premium"
)

// UnlimitedProducts は商品数無制限を表す。
const UnlimitedProducts int64 = -1

type AnalyticsDepth string

const (
	AnalyticsNone     AnalyticsDepth = "none"
	AnalyticsBasic    AnalyticsDepth = "basic"
	AnalyticsAdvanced AnalyticsDepth = "advanced"
)

// TierPlan はプランの静的な定義（状態は持たない）。
type TierPlan struct {
	Tier                SubscriptionTier `json:"tier"`
	Name                string           `json:"name"`
	MonthlyPrice        int64            `json:"monthlyPrice"`
	ProductLimit        int64            `json:"productLimit"` // -1 = unlimited
	Analytics           AnalyticsDepth   `json:"analytics"`
	Promotions          bool             `json:"promotions"`
	ShippingManagement  bool             `json:"shippingManagement"`
	PrioritySupport     bool             `json:"prioritySupport"`
	MarketingAutomation bool             `json:"marketingAutomation"`
}

var tierPlans = map[SubscriptionTier]TierPlan{
	TierBasic: {
		Tier:         TierBasic,
		Name:         "Basic",
		MonthlyPrice: 0,
		ProductLimit: 10,
		Analytics:    AnalyticsNone,
	},
	TierStandard: {
		Tier:               TierStandard,
		Name:               "Standard",
		MonthlyPrice:       2999,
		ProductLimit:       50,
		Analytics:          AnalyticsBasic,
		Promotions:         true,
		ShippingManagement: true,
	},
	TierPremium: {
		Tier:                TierPremium,
		Name:                "Premium",
		MonthlyPrice:        9999,
		ProductLimit:        UnlimitedProducts,
		Analytics:           AnalyticsAdvanced,
		Promotions:          true,
		ShippingManagement:  true,
		PrioritySupport:     true,
		MarketingAutomation: true,
	},
}

func ParseSubscriptionTier(s string) (SubscriptionTier, bool) {
	switch SubscriptionTier(s) {
	case TierBasic, TierStandard, TierPremium:
		return SubscriptionTier(s), true
	default:
		return "", false
	}
}

func (t SubscriptionTier) Plan() TierPlan {
	if p, ok := tierPlans[t]; ok {
		return p
	}
	// 未知のtierはbasic扱い（ストア境界のデコードと同じ方針）
	return tierPlans[TierBasic]
}

func (t SubscriptionTier) ProductLimit() int64 {
	return t.Plan().ProductLimit
}

// CanCreateProduct は現在の商品数でもう1つ作れるかを返す。
func (t SubscriptionTier) CanCreateProduct(currentCount int64) bool {
	limit := t.ProductLimit()
	if limit == UnlimitedProducts {
		return true
	}
	return currentCount < limit
}

// AllTierPlans は表示順（basic→premium）で返す。
func AllTierPlans() []TierPlan {
	return []TierPlan{
		tierPlans[TierBasic],
		tierPlans[TierStandard],
		tierPlans[TierPremium],
	}
}
