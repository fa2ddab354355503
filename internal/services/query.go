package services

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/checkfox/go_sales/internal/models"
)

// DefaultPageSize is the page size applied when the caller requests none
const DefaultPageSize = 20

// ApplyFilters keeps the leads whose fields equal every non-nil filter value.
// Equality is exact: no type coercion, no partial matching. A nil or empty
// filter map is the identity.
func ApplyFilters(leads []models.Lead, filters map[string]interface{}) []models.Lead {
	if len(filters) == 0 {
		return leads
	}

	results := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		include := true
		for key, expected := range filters {
			if expected == nil {
				continue
			}
			value, _ := lead.Field(key)
			if !reflect.DeepEqual(value, expected) {
				include = false
				break
			}
		}
		if include {
			results = append(results, lead)
		}
	}
	return results
}

// ApplyOrdering sorts leads stably by the value at the given key. A leading
// "-" requests descending order. Values that parse as timestamps compare as
// timestamps; everything else compares by its natural ordering. An empty key
// preserves the input order.
func ApplyOrdering(leads []models.Lead, orderBy string) []models.Lead {
	if orderBy == "" {
		return leads
	}

	descending := false
	key := orderBy
	if strings.HasPrefix(orderBy, "-") {
		descending = true
		key = orderBy[1:]
	}

	type entry struct {
		lead models.Lead
		ts   *time.Time
		raw  interface{}
	}

	entries := make([]entry, len(leads))
	for i, lead := range leads {
		value, _ := lead.Field(key)
		entries[i] = entry{lead: lead, ts: models.ParseTimestamp(value), raw: value}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := compareSortValues(entries[i].ts, entries[i].raw, entries[j].ts, entries[j].raw)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	ordered := make([]models.Lead, len(entries))
	for i, e := range entries {
		ordered[i] = e.lead
	}
	return ordered
}

// Paginate slices the leads to the 1-indexed page window. A page beyond the
// available range yields empty data, never an error; the returned total always
// reflects the full input length.
func Paginate(leads []models.Lead, page, pageSize int) ([]models.Lead, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(leads)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	window := make([]models.Lead, end-start)
	copy(window, leads[start:end])

	return window, models.Pagination{
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	}
}

// compareSortValues orders two sort keys. Timestamps win over raw comparison
// when both sides parse; otherwise numbers compare numerically, strings
// lexicographically, and anything else by its rendered form. Absent values
// sort before present ones.
func compareSortValues(aTS *time.Time, aRaw interface{}, bTS *time.Time, bRaw interface{}) int {
	if aTS != nil && bTS != nil {
		switch {
		case aTS.Before(*bTS):
			return -1
		case aTS.After(*bTS):
			return 1
		default:
			return 0
		}
	}

	if aRaw == nil || bRaw == nil {
		switch {
		case aRaw == nil && bRaw == nil:
			return 0
		case aRaw == nil:
			return -1
		default:
			return 1
		}
	}

	if aNum, aOK := toFloat(aRaw); aOK {
		if bNum, bOK := toFloat(bRaw); bOK {
			switch {
			case aNum < bNum:
				return -1
			case aNum > bNum:
				return 1
			default:
				return 0
			}
		}
	}

	if aStr, aOK := aRaw.(string); aOK {
		if bStr, bOK := bRaw.(string); bOK {
			return strings.Compare(aStr, bStr)
		}
	}

	return strings.Compare(fmt.Sprint(aRaw), fmt.Sprint(bRaw))
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
