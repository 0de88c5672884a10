package menu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyMeal(t *testing.T) {
	cases := []struct {
		label  string
		expect MealType
		ok     bool
	}{
		{"Breakfast", Breakfast, true},
		{"LUNCH", Lunch, true},
		{"Dinner Service", Dinner, true},
		// brunch wins over the "lunch" substring it contains
		{"Sunday Brunch", Brunch, true},
		{"brunch", Brunch, true},
		{"Late Night", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ClassifyMeal(c.label)
		require.Equal(t, c.ok, ok, "label %q", c.label)
		require.Equal(t, c.expect, got, "label %q", c.label)
	}
}

func TestIsEmpty(t *testing.T) {
	m := NewDailyMenu("2025-04-15")
	require.True(t, m.IsEmpty())

	// a hall with an empty section still counts as empty: only items matter
	m.AppendHall(Lunch, DiningHall{Name: "Parkside", Sections: []Section{{Name: "Grill"}}})
	require.True(t, m.IsEmpty())

	m.AppendHall(Dinner, DiningHall{
		Name: "USC Village",
		Sections: []Section{{
			Name:  "Flexitarian",
			Items: []FoodItem{{Name: "Tofu", Allergens: []string{"Soy", "Vegan"}}},
		}},
	})
	require.False(t, m.IsEmpty())
}
