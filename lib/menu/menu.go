// Package menu holds the canonical menu document model shared by the
// scrapers and the storage layer: food items with normalized dietary
// tags, grouped into stations, grouped into dining halls, grouped by
// serving period under a single per-date document.
package menu

import "strings"

// FoodItem is a single dish as listed on a station. The Allergens
// field carries both allergen and dietary-preference tags under one
// wire name, which is what the front end expects.
type FoodItem struct {
	Name      string   `json:"name"`
	Allergens []string `json:"allergens"`
}

type Section struct {
	Name  string     `json:"name"`
	Items []FoodItem `json:"items"`
}

type DiningHall struct {
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

type MealType string

const (
	Breakfast MealType = "breakfast"
	Brunch    MealType = "brunch"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists all serving periods in display order.
var MealTypes = []MealType{Breakfast, Brunch, Lunch, Dinner}

// ClassifyMeal maps a raw serving-period label ("Breakfast", "Sunday
// Brunch", ...) onto the fixed MealType enumeration by substring
// match. Brunch is checked first so labels containing overlapping
// substrings don't get misrouted. Unrecognized labels report false
// and their meal block is skipped by callers.
func ClassifyMeal(label string) (MealType, bool) {
	t := strings.ToLower(label)
	switch {
	case strings.Contains(t, "brunch"):
		return Brunch, true
	case strings.Contains(t, "breakfast"):
		return Breakfast, true
	case strings.Contains(t, "lunch"):
		return Lunch, true
	case strings.Contains(t, "dinner"):
		return Dinner, true
	}
	return "", false
}

// DailyMenu is the composite per-date document. Each meal key is
// always present as an array in the stored JSON, empty when no hall
// served that period.
type DailyMenu struct {
	Date      string       `json:"date"`
	Breakfast []DiningHall `json:"breakfast"`
	Brunch    []DiningHall `json:"brunch"`
	Lunch     []DiningHall `json:"lunch"`
	Dinner    []DiningHall `json:"dinner"`
}

func NewDailyMenu(date string) DailyMenu {
	return DailyMenu{
		Date:      date,
		Breakfast: []DiningHall{},
		Brunch:    []DiningHall{},
		Lunch:     []DiningHall{},
		Dinner:    []DiningHall{},
	}
}

// Meal returns the hall list for a serving period.
func (m *DailyMenu) Meal(t MealType) []DiningHall {
	switch t {
	case Breakfast:
		return m.Breakfast
	case Brunch:
		return m.Brunch
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return nil
}

func (m *DailyMenu) AppendHall(t MealType, hall DiningHall) {
	switch t {
	case Breakfast:
		m.Breakfast = append(m.Breakfast, hall)
	case Brunch:
		m.Brunch = append(m.Brunch, hall)
	case Lunch:
		m.Lunch = append(m.Lunch, hall)
	case Dinner:
		m.Dinner = append(m.Dinner, hall)
	}
}

// IsEmpty reports whether the document contains no food items at all
// across every serving period. An empty document must never be
// written over previously good data.
func (m DailyMenu) IsEmpty() bool {
	for _, t := range MealTypes {
		for _, hall := range m.Meal(t) {
			for _, section := range hall.Sections {
				if len(section.Items) > 0 {
					return false
				}
			}
		}
	}
	return true
}
