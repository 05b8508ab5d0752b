package policy

// Member-facing features. Reviews live under a restaurant, so their Index is
// filled in per request with WithIndex.
var (
	HomeFeature        = Feature{Name: "home", Access: Public, Index: "/"}
	RestaurantsFeature = Feature{Name: "restaurants", Access: Public, Index: "/restaurants"}
	CompanyFeature     = Feature{Name: "company", Access: Public, Index: "/company"}
	TermsFeature       = Feature{Name: "terms", Access: Public, Index: "/terms"}
	ProfileFeature     = Feature{Name: "user", Access: Members, Index: UserPath}
	ReviewsFeature     = Feature{Name: "reviews", Access: Members}
	ReviewWriteFeature = Feature{Name: "reviews.write", Access: Premium}

	ReservationsFeature = Feature{Name: "reservations", Access: Premium, Index: "/reservations"}
	FavoritesFeature    = Feature{Name: "favorites", Access: Premium, Index: "/favorites"}

	SubscribeFeature          = Feature{Name: "subscription.create", Access: NonPremium, Index: UserPath}
	SubscriptionManageFeature = Feature{Name: "subscription.manage", Access: Premium, Index: UserPath}
)

func (f Feature) WithIndex(index string) Feature {
	f.Index = index
	return f
}
