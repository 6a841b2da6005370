package analytics

import (
	"sort"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/planning"
	"github.com/shopspring/decimal"
)

// VendorStats summarizes a user's vendor address book
type VendorStats struct {
	TotalVendors     int     `json:"total_vendors"`
	AvgRating        float64 `json:"avg_rating"`
	PreferredVendors int     `json:"preferred_vendors"`
}

// VendorCategoryRollup counts one vendor category
type VendorCategoryRollup struct {
	Category  planning.VendorCategory `json:"category"`
	Count     int                     `json:"count"`
	AvgRating float64                 `json:"avg_rating"`
}

// VendorReport is the vendor section of event analytics
type VendorReport struct {
	Stats      VendorStats            `json:"stats"`
	ByCategory []VendorCategoryRollup `json:"by_category"`
}

// BuildVendorReport summarizes every vendor of the user, regardless of event
func BuildVendorReport(vendors []*planning.Vendor) VendorReport {
	total := decimal.Zero
	stats := VendorStats{}
	type acc struct {
		count int
		sum   decimal.Decimal
	}
	index := make(map[planning.VendorCategory]*acc)
	for _, v := range vendors {
		stats.TotalVendors++
		total = total.Add(v.Rating)
		if v.IsPreferred {
			stats.PreferredVendors++
		}
		a, ok := index[v.Category]
		if !ok {
			a = &acc{sum: decimal.Zero}
			index[v.Category] = a
		}
		a.count++
		a.sum = a.sum.Add(v.Rating)
	}
	stats.AvgRating = average(total, stats.TotalVendors)

	byCategory := make([]VendorCategoryRollup, 0, len(index))
	for category, a := range index {
		byCategory = append(byCategory, VendorCategoryRollup{
			Category:  category,
			Count:     a.count,
			AvgRating: average(a.sum, a.count),
		})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Count != byCategory[j].Count {
			return byCategory[i].Count > byCategory[j].Count
		}
		return byCategory[i].Category < byCategory[j].Category
	})
	return VendorReport{Stats: stats, ByCategory: byCategory}
}

func average(sum decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
}
