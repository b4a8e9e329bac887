package core

// Tier is the subscription level of a user, or the minimum level needed to access a content item.
type Tier string

const (
	TierFree     Tier = "free"
	TierPremium  Tier = "premium"
	TierLifetime Tier = "lifetime"
)

var (
	UserTiers    = []Tier{TierFree, TierPremium, TierLifetime}
	ContentTiers = []Tier{TierFree, TierPremium}
)

// IsAccessible reports whether content gated at contentTier may be served to a user on userTier.
func IsAccessible(contentTier, userTier Tier) bool {
	return contentTier == TierFree || userTier.IsPaid()
}

func (t Tier) IsPaid() bool {
	return t == TierPremium || t == TierLifetime
}

func (t Tier) IsValidUserTier() bool {
	return tierIn(t, UserTiers)
}

func (t Tier) IsValidContentTier() bool {
	return tierIn(t, ContentTiers)
}

func tierIn(t Tier, tiers []Tier) bool {
	for _, tier := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}
