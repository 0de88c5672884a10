package hospitality

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/textutil"
)

// noisePhrases are fragments of section banners and promotional notes
// that the site marks up identically to food entries. Uppercase,
// matched case-insensitively against the entry name.
var noisePhrases = []string{
	"MADE TO ORDER",
	"BAR",
	"STATION OPENS",
	"*",
	"NUTS AND PEANUTS ARE USED HERE",
	"CHEF'S",
	"SALAD AND DELI BAR",
	"HOT CHICKEN SANDWICH BAR",
}

func isNoiseName(name string) bool {
	return textutil.ContainsAny(name, noisePhrases) ||
		textutil.IsShouting(name, 3)
}

// buildItem turns a raw entry into a FoodItem, reporting false when
// the entry should be skipped. An empty name is always skipped. An
// entry without any allergen/preference data whose name looks like a
// banner is skipped too; carrying tag data overrides the name
// heuristics, since the site only annotates genuine food entries.
func buildItem(name string, allergens, preferences []string) (menu.FoodItem, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return menu.FoodItem{}, false
	}
	tags := menu.NormalizeTags(allergens, preferences)
	if len(tags) == 0 {
		if isNoiseName(name) {
			return menu.FoodItem{}, false
		}
		tags = []string{}
	}
	return menu.FoodItem{Name: name, Allergens: tags}, true
}

func extractStationItems(station apiStation) []menu.FoodItem {
	var items []menu.FoodItem
	for _, raw := range station.Menu {
		item, ok := buildItem(raw.Item, raw.Allergens, raw.Preferences)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// assembleHall groups a meal's stations into named sections under one
// hall. Stations yielding zero items after filtering are omitted
// entirely; a hall left with no sections reports false and must be
// treated as absent, never stored empty.
func assembleHall(hallName string, stations []apiStation) (menu.DiningHall, bool) {
	hall := menu.DiningHall{Name: hallName}
	for _, station := range stations {
		items := extractStationItems(station)
		if len(items) == 0 {
			continue
		}
		name := strings.TrimSpace(station.Station)
		if name == "" {
			name = "Station"
		}
		hall.Sections = append(hall.Sections, menu.Section{
			Name:  name,
			Items: items,
		})
	}
	if len(hall.Sections) == 0 {
		return menu.DiningHall{}, false
	}
	return hall, true
}

// ParseAPIMenu transforms one hall's hsp-api response into a partial
// per-date document. Meal blocks with unrecognized labels are dropped
// wholesale.
func ParseAPIMenu(payload []byte, hallName, date string) (menu.DailyMenu, error) {
	var res apiResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return menu.DailyMenu{}, fmt.Errorf("decoding menu api response: %w", err)
	}

	doc := menu.NewDailyMenu(date)
	for _, meal := range res.Meals {
		mealType, ok := menu.ClassifyMeal(meal.Name)
		if !ok {
			slog.Debug("skipping unrecognized meal label", "label", meal.Name, "hall", hallName)
			continue
		}
		hall, ok := assembleHall(hallName, meal.Stations)
		if !ok {
			continue
		}
		doc.AppendHall(mealType, hall)
	}
	return doc, nil
}
