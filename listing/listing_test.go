package listing

import (
	"net/url"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagoyameshi/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...).Error)
	return db
}

func at(minutes int) *time.Time {
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
	return &ts
}

func newRestaurant(t *testing.T, db *gorm.DB, name, address string, price int, created int) models.Restaurant {
	t.Helper()
	r := models.Restaurant{
		Name:         name,
		Image:        "x.png",
		Description:  name,
		LowestPrice:  price,
		HighestPrice: price + 1000,
		PostalCode:   "4600000",
		Address:      address,
		OpeningTime:  "10:00",
		ClosingTime:  "22:00",
		CreatedAt:    at(created),
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

type fixture struct {
	sushi, ramen models.Restaurant
	washoku      models.Category
}

func seed(t *testing.T, db *gorm.DB) fixture {
	sushi := newRestaurant(t, db, "Sushi Zen", "名古屋市中区", 1000, 0)
	ramen := newRestaurant(t, db, "Ramen House", "名古屋市東区", 2000, 10)

	washoku := models.Category{Name: "和食"}
	require.NoError(t, db.Create(&washoku).Error)
	noodles := models.Category{Name: "麺類"}
	require.NoError(t, db.Create(&noodles).Error)
	require.NoError(t, db.Model(&sushi).Association("Categories").Append(&washoku).Error)
	require.NoError(t, db.Model(&ramen).Association("Categories").Append(&noodles).Error)

	return fixture{sushi: sushi, ramen: ramen, washoku: washoku}
}

func names(t *testing.T, p Page) []string {
	rows, ok := p.Items.([]RestaurantRow)
	require.True(t, ok)
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestSearchRestaurants_FilterComposition(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	cases := []struct {
		name  string
		query RestaurantQuery
		want  []string
	}{
		{"keyword on name", RestaurantQuery{Keyword: "Sushi"}, []string{"Sushi Zen"}},
		{"price ceiling", RestaurantQuery{Price: 1500}, []string{"Sushi Zen"}},
		{"unmatched keyword and matching price", RestaurantQuery{Keyword: "Pizza", Price: 1500}, []string{}},
		{"keyword on address", RestaurantQuery{Keyword: "東区"}, []string{"Ramen House"}},
		{"keyword on category name", RestaurantQuery{Keyword: "和食"}, []string{"Sushi Zen"}},
		{"category membership", RestaurantQuery{CategoryID: f.washoku.ID}, []string{"Sushi Zen"}},
		{"category and price", RestaurantQuery{CategoryID: f.washoku.ID, Price: 500}, []string{}},
		{"no filters", RestaurantQuery{}, []string{"Ramen House", "Sushi Zen"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.query.Page = 1
			p, err := SearchRestaurants(db, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(t, p))
			assert.Equal(t, len(tc.want), p.Total)
		})
	}
}

func TestSearchRestaurants_Sorting(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	user := models.User{Name: "太郎", Kana: "タロウ", Email: "taro@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Review{Score: 5, Content: "great", RestaurantID: f.sushi.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Review{Score: 3, Content: "ok", RestaurantID: f.sushi.ID, UserID: user.ID}).Error)

	p, err := SearchRestaurants(db, RestaurantQuery{Sort: SortRating, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sushi Zen", "Ramen House"}, names(t, p))
	rows := p.Items.([]RestaurantRow)
	assert.InDelta(t, 4.0, rows[0].Rating, 0.001)
	assert.InDelta(t, 0.0, rows[1].Rating, 0.001)

	p, err = SearchRestaurants(db, RestaurantQuery{Sort: SortLowestPrice, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sushi Zen", "Ramen House"}, names(t, p))

	p, err = SearchRestaurants(db, RestaurantQuery{Sort: "name; drop table", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ramen House", "Sushi Zen"}, names(t, p))
}

func TestSearchRestaurants_Pagination(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 17; i++ {
		newRestaurant(t, db, "Shop", "名古屋", 1000, i)
	}

	p, err := SearchRestaurants(db, RestaurantQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 17, p.Total)
	assert.Equal(t, 2, p.LastPage)
	assert.Len(t, p.Items, 2)
}

func TestParseRestaurantQuery(t *testing.T) {
	q := ParseRestaurantQuery(url.Values{
		"keyword":     {" Sushi "},
		"category_id": {"abc"},
		"price":       {"1500"},
		"select_sort": {"unknown asc"},
		"page":        {"0"},
	})
	assert.Equal(t, "Sushi", q.Keyword)
	assert.Equal(t, int64(0), q.CategoryID)
	assert.Equal(t, 1500, q.Price)
	assert.Equal(t, SortNewest, q.Sort)
	assert.Equal(t, 1, q.Page)
}

func TestAdminListings(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	require.NoError(t, db.Create(&models.User{Name: "山田", Kana: "ヤマダ", Email: "a@example.com", Password: "x"}).Error)
	require.NoError(t, db.Create(&models.User{Name: "佐藤", Kana: "サトウ", Email: "b@example.com", Password: "x"}).Error)

	p, err := AdminRestaurants(db, "Ramen", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, AdminRestaurantsPerPage, p.PerPage)

	p, err = AdminRestaurants(db, "名古屋", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Total, "admin keyword matches name only")

	p, err = AdminUsers(db, "サトウ", 1)
	require.NoError(t, err)
	require.Equal(t, 1, p.Total)
	assert.Equal(t, "佐藤", p.Items.([]models.User)[0].Name)

	p, err = AdminCategories(db, "", 1)
	require.NoError(t, err)
	cats := p.Items.([]models.Category)
	require.Len(t, cats, 2)
	assert.True(t, cats[0].ID < cats[1].ID)
}

func TestMemberListings(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	user := models.User{Name: "太郎", Kana: "タロウ", Email: "taro@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, RestaurantID: f.ramen.ID, CreatedAt: at(1)}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, RestaurantID: f.sushi.ID, CreatedAt: at(5)}).Error)

	p, err := FavoriteRestaurants(db, user.ID, 1)
	require.NoError(t, err)
	favs := p.Items.([]models.Restaurant)
	require.Len(t, favs, 2)
	assert.Equal(t, "Sushi Zen", favs[0].Name)

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&models.Review{Score: 4, Content: "c", RestaurantID: f.sushi.ID, UserID: user.ID}).Error)
	}
	p, err = Reviews(db, f.sushi.ID, false, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, ReviewsPerPageFree)
	assert.Equal(t, 4, p.Total)

	p, err = Reviews(db, f.sushi.ID, true, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 4)
	assert.Equal(t, "太郎", p.Items.([]models.Review)[0].User.Name)
}
