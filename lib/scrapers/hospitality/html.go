package hospitality

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"uscmenu-backend/lib/htmlutil"
	"uscmenu-backend/lib/menu"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
)

const hallMatchThreshold = 0.85

// SnapHallName matches a scraped venue title against the configured
// hall roster. Page titles drift across template revisions ("Parkside
// Restaurant & Grill" vs "Parkside"), so after an exact substring
// check the closest roster name by Jaro-Winkler similarity wins; a
// title too far from every roster entry is kept verbatim.
func SnapHallName(title string, halls []Hall) string {
	lowered := strings.ToLower(title)
	best := ""
	bestScore := 0.0
	for _, h := range halls {
		name := strings.ToLower(h.Name)
		if strings.Contains(lowered, name) {
			return h.Name
		}
		score := matchr.JaroWinkler(lowered, name, false)
		if score > bestScore {
			bestScore = score
			best = h.Name
		}
	}
	if bestScore >= hallMatchThreshold {
		return best
	}
	return title
}

// attrTagList decodes a JSON array attribute such as
// data-allergens='["dairy","soy"]'.
func attrTagList(sel *goquery.Selection, attr string) []string {
	raw, ok := sel.Attr(attr)
	if !ok || raw == "" || raw == "[]" {
		return nil
	}
	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		slog.Warn("failed to parse tag attribute", "attr", attr, "raw", raw)
		return nil
	}
	return tokens
}

// ParseVenuePage extracts a partial per-date document from the legacy
// HTML menu template. The entry name is taken from the list node's
// direct text only, so nested icon and badge markup never leaks into
// item names.
func ParseVenuePage(r io.Reader, date string, halls []Hall) (menu.DailyMenu, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return menu.DailyMenu{}, fmt.Errorf("parsing venue page: %w", err)
	}

	venue := htmlutil.CleanText(page.Find("h2.title.js-venue-title").First().Text())
	if venue == "" {
		venue = "Unknown Dining Hall"
	}
	hallName := SnapHallName(venue, halls)

	doc := menu.NewDailyMenu(date)
	page.Find(".meal-container[data-meal]").Each(func(_ int, container *goquery.Selection) {
		label, _ := container.Attr("data-meal")
		mealType, ok := menu.ClassifyMeal(label)
		if !ok {
			slog.Debug("skipping unrecognized meal label", "label", label, "venue", venue)
			return
		}

		hall := menu.DiningHall{Name: hallName}
		container.Find(".station").Each(func(_ int, station *goquery.Selection) {
			stationName := htmlutil.CleanText(station.Find("p.title").First().Text())
			if stationName == "" {
				stationName = "Station"
			}

			var items []menu.FoodItem
			station.Find("li.js-menu-item").Each(func(_ int, entry *goquery.Selection) {
				if len(entry.Nodes) == 0 {
					return
				}
				name := htmlutil.DirectText(entry.Nodes[0])
				item, ok := buildItem(
					name,
					attrTagList(entry, "data-allergens"),
					attrTagList(entry, "data-preferences"),
				)
				if !ok {
					return
				}
				items = append(items, item)
			})
			if len(items) == 0 {
				return
			}
			hall.Sections = append(hall.Sections, menu.Section{Name: stationName, Items: items})
		})

		if len(hall.Sections) > 0 {
			doc.AppendHall(mealType, hall)
		}
	})

	return doc, nil
}
