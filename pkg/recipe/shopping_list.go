package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"fmt"
	"sort"
	"strings"
)

// AggregateShoppingList flattens recipe-ingredient rows from every recipe in
// the cart and sums amounts per (name, measurement unit) pair. Two distinct
// ingredient rows sharing name and unit are merged. Output is sorted by name
// ascending (unit as tie-break) so repeated calls over the same cart render
// byte-identical.
func AggregateShoppingList(links []*entities.RecipeIngredient) []domain.ShoppingListItem {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int64)
	for _, link := range links {
		if link.Ingredient == nil {
			continue
		}
		k := key{name: link.Ingredient.Name, unit: link.Ingredient.MeasurementUnit}
		totals[k] += int64(link.Amount)
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for k, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Amount:          total,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})

	return items
}

// FormatShoppingList renders the aggregated rows as the plain-text document
// served as the shopping_list.txt attachment.
func FormatShoppingList(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Список покупок:\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("\n  - %s: %d (%s)", item.Name, item.Amount, item.MeasurementUnit))
	}
	return b.String()
}
