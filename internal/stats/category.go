package stats

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// CategoryOther collects debits no keyword set matches.
const CategoryOther = "Other"

// categoryKeywords are checked in order; the first set with a keyword
// contained in the lower-cased description wins.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Food", []string{"food", "restaurant", "grocery", "swiggy", "zomato", "cafe", "pizza", "dining", "lunch", "dinner"}},
	{"Transport", []string{"uber", "ola", "fuel", "petrol", "diesel", "metro", "taxi", "bus", "train", "transport", "parking"}},
	{"Entertainment", []string{"movie", "netflix", "spotify", "entertainment", "game", "google play", "prime", "hotstar", "concert"}},
	{"Utilities", []string{"electricity", "water", "gas", "utility", "bill", "internet", "broadband", "recharge", "mobile"}},
	{"Shopping", []string{"amazon", "flipkart", "shopping", "store", "mart", "myntra", "mall"}},
	{"Healthcare", []string{"hospital", "medical", "pharmacy", "doctor", "clinic", "health", "medicine"}},
	{"Education", []string{"school", "college", "course", "tuition", "education", "book", "udemy"}},
}

// Categorize names the spending category of a description.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(desc, kw) {
				return c.name
			}
		}
	}
	return CategoryOther
}

// CategoryNames lists every category in check order, Other last.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryKeywords)+1)
	for _, c := range categoryKeywords {
		names = append(names, c.name)
	}
	return append(names, CategoryOther)
}

// CategoryTotal is the debit total of one category.
type CategoryTotal struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Categories totals debits per category, largest first. Categories with no
// spending are omitted; equal totals keep the category check order. An
// explicit Category on a transaction overrides keyword inference.
func Categories(txns []models.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero
	for _, t := range txns {
		if t.IsCredit() {
			continue
		}
		name := t.Category
		if name == "" {
			name = Categorize(t.Description)
		}
		amt := decimal.NewFromFloat(t.Amount)
		sums[name] = sums[name].Add(amt)
		counts[name]++
		total = total.Add(amt)
	}

	order := CategoryNames()
	for name := range sums {
		if !contains(order, name) {
			order = append(order, name)
		}
	}

	out := make([]CategoryTotal, 0, len(sums))
	for _, name := range order {
		sum, ok := sums[name]
		if !ok {
			continue
		}
		ct := CategoryTotal{Name: name, Amount: sum.InexactFloat64(), Count: counts[name]}
		if total.IsPositive() {
			ct.Percent = sum.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, ct)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
