package menu

import "fmt"

// Merge combines two partial documents for the same date into a new
// composite, concatenating the hall lists per serving period. Neither
// input is mutated. Halls are not deduplicated by name here: the
// orchestrator guarantees each hall is scraped exactly once per run,
// so concatenation keeps the merge associative and order-independent
// in the set of halls it produces.
func Merge(a, b DailyMenu) (DailyMenu, error) {
	if a.Date != b.Date {
		return DailyMenu{}, fmt.Errorf("cannot merge menus for different dates: %q vs %q", a.Date, b.Date)
	}
	out := NewDailyMenu(a.Date)
	for _, t := range MealTypes {
		halls := make([]DiningHall, 0, len(a.Meal(t))+len(b.Meal(t)))
		halls = append(halls, a.Meal(t)...)
		halls = append(halls, b.Meal(t)...)
		switch t {
		case Breakfast:
			out.Breakfast = halls
		case Brunch:
			out.Brunch = halls
		case Lunch:
			out.Lunch = halls
		case Dinner:
			out.Dinner = halls
		}
	}
	return out, nil
}
