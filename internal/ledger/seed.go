package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/models"
)

// DefaultUserID is the demo account, the first roster user.
const DefaultUserID = "user-1"

var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("splitsense/seed"))

// Roster returns the fixed set of users created at bootstrap.
func Roster() []models.User {
	avatar := func(seed string) string {
		return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
	}
	return []models.User{
		{ID: "user-1", Name: "Dev Parikh", Email: "devparikh200479@gmail.com", Avatar: avatar("Dev")},
		{ID: "user-2", Name: "Jay", Email: "jay@demo.com", Avatar: avatar("Jay")},
		{ID: "user-3", Name: "Ram", Email: "ram@demo.com", Avatar: avatar("Ram")},
		{ID: "user-4", Name: "Vansh", Email: "vansh@demo.com", Avatar: avatar("Vansh")},
		{ID: "user-5", Name: "Raj", Email: "raj@demo.com", Avatar: avatar("Raj")},
		{ID: "user-6", Name: "Shiv", Email: "shiv@demo.com", Avatar: avatar("Shiv")},
	}
}

func demoGroups() []models.Group {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []models.Group{
		{ID: "group-1", Name: "Bangalore Flat 402", Members: []string{"user-1", "user-2", "user-3"}, Type: "Home", CreatedAt: date(2023, time.January, 1)},
		{ID: "group-2", Name: "Goa Trip 2024", Members: []string{"user-1", "user-2", "user-3", "user-4", "user-5", "user-6"}, Type: "Trip", CreatedAt: date(2024, time.January, 15)},
		{ID: "group-3", Name: "Office Lunch Crew", Members: []string{"user-1", "user-5", "user-6"}, Type: "Food", CreatedAt: date(2024, time.March, 10)},
		{ID: "group-4", Name: "Vegas Trip", Members: []string{"user-1", "user-2", "user-4"}, Type: "Trip", CreatedAt: date(2023, time.June, 15)},
	}
}

type seedExpense struct {
	description string
	amount      float64
	payer       string
	group       string
	daysAgo     int
	category    string
}

var demoExpenses = []seedExpense{
	// Bangalore Flat 402: recurring rent, utilities and services
	{"Rent - March", 24000, "user-1", "group-1", 5, "Rent"},
	{"Rent - Feb", 24000, "user-1", "group-1", 35, "Rent"},
	{"Rent - Jan", 24000, "user-1", "group-1", 65, "Rent"},
	{"WiFi Bill", 1400, "user-2", "group-1", 2, "Utilities"},
	{"Electricity", 3200, "user-2", "group-1", 25, "Utilities"},
	{"Gas Cylinder", 1100, "user-2", "group-1", 15, "Utilities"},
	{"Maid Salary", 4500, "user-3", "group-1", 3, "Services"},
	{"Cook Salary", 5000, "user-3", "group-1", 3, "Services"},
	{"Water Cans", 800, "user-3", "group-1", 10, "Groceries"},
	{"BigBasket Monthly", 5600, "user-1", "group-1", 8, "Groceries"},
	{"Zepto Snacks", 450, "user-2", "group-1", 1, "Food"},

	// Goa Trip 2024: a few large outliers
	{"Villa Advance", 25000, "user-1", "group-2", 20, "Travel"},
	{"Flight Booking (Bulk)", 45000, "user-1", "group-2", 22, "Travel"},
	{"Casino Royale Entry", 18000, "user-4", "group-2", 18, "Entertainment"},
	{"Jet Ski Rentals", 6000, "user-4", "group-2", 17, "Entertainment"},
	{"Lost Bet", 5000, "user-4", "group-2", 16, "Entertainment"},
	{"Thalassa Dinner", 12000, "user-5", "group-2", 18, "Food"},
	{"Curlies Drinks", 4500, "user-6", "group-2", 17, "Food"},
	{"Scooty Rent", 3500, "user-5", "group-2", 19, "Transport"},

	// Office Lunch Crew: small daily food
	{"Subway", 450, "user-5", "group-3", 1, "Food"},
	{"Chai Point", 150, "user-5", "group-3", 1, "Food"},
	{"Burger King", 850, "user-5", "group-3", 2, "Food"},
	{"Pizza Hut", 2200, "user-6", "group-3", 4, "Food"},
	{"Starbucks", 1800, "user-1", "group-3", 3, "Food"},

	// Vegas Trip
	{"Caesars Palace Suite", 800, "user-1", "group-4", 90, "Travel"},
	{"Helicopter Tour", 450, "user-2", "group-4", 91, "Entertainment"},
	{"Limousine", 200, "user-4", "group-4", 92, "Transport"},
	{"Buffet Pass", 300, "user-1", "group-4", 91, "Food"},
}

// DemoSnapshot returns the roster, the demo groups and demo expenses dated
// relative to now. Expenses split equally across their group's members and
// get IDs derived from their description, so the data is reproducible.
func DemoSnapshot(now time.Time) *models.Snapshot {
	groups := demoGroups()
	members := make(map[string][]string, len(groups))
	for _, g := range groups {
		members[g.ID] = g.Members
	}

	expenses := make([]models.Expense, 0, len(demoExpenses))
	for _, s := range demoExpenses {
		splits, err := calculator.ComputeSplits(s.amount, members[s.group])
		if err != nil {
			// Seed data is static; a failure here is a programming error.
			panic(err)
		}
		expenses = append(expenses, models.Expense{
			ID:          uuid.NewSHA1(seedNamespace, []byte(s.description)).String(),
			Description: s.description,
			Amount:      s.amount,
			PaidBy:      s.payer,
			GroupID:     s.group,
			Date:        now.UTC().AddDate(0, 0, -s.daysAgo),
			Category:    s.category,
			Splits:      splits,
		})
	}

	return &models.Snapshot{
		Users:    Roster(),
		Groups:   groups,
		Expenses: expenses,
	}
}

// RosterSnapshot returns a snapshot holding only the roster.
func RosterSnapshot() *models.Snapshot {
	return &models.Snapshot{Users: Roster()}
}
