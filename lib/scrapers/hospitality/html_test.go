package hospitality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const venuePageFixture = `<!DOCTYPE html>
<html>
<body>
	<h2 class="title js-venue-title">Parkside Restaurant &amp; Grill</h2>
	<div class="meal-container" data-meal="Lunch">
		<div class="station">
			<p class="title">Grill</p>
			<ul>
				<li class="js-menu-item" data-allergens="[]" data-preferences="[&quot;vegetarian&quot;]">
					Veggie Burger
					<span class="icon allergen-icon"></span>
				</li>
				<li class="js-menu-item" data-allergens="[]" data-preferences="[]">
					STATION OPENS AT 11AM
				</li>
			</ul>
		</div>
		<div class="station">
			<p class="title">Soup Well</p>
			<ul>
				<li class="js-menu-item" data-allergens="[]" data-preferences="[]">
					SOUP OF THE DAY *
				</li>
			</ul>
		</div>
	</div>
	<div class="meal-container" data-meal="Teatime">
		<div class="station">
			<p class="title">Pastries</p>
			<ul>
				<li class="js-menu-item" data-allergens="[&quot;gluten&quot;]">Scone</li>
			</ul>
		</div>
	</div>
</body>
</html>`

func TestParseVenuePage(t *testing.T) {
	doc, err := ParseVenuePage(strings.NewReader(venuePageFixture), "2025-04-15", DefaultHalls)
	require.NoError(t, err)

	require.Equal(t, "2025-04-15", doc.Date)
	require.Len(t, doc.Lunch, 1)

	hall := doc.Lunch[0]
	// the page title snaps onto the roster name
	require.Equal(t, "Parkside", hall.Name)
	// the Soup Well station only held a banner, so it is dropped
	require.Len(t, hall.Sections, 1)
	require.Equal(t, "Grill", hall.Sections[0].Name)
	require.Len(t, hall.Sections[0].Items, 1)

	item := hall.Sections[0].Items[0]
	// nested icon markup must not leak into the name
	require.Equal(t, "Veggie Burger", item.Name)
	require.Equal(t, []string{"Vegetarian"}, item.Allergens)

	// the unrecognized "Teatime" block is discarded wholesale
	require.Empty(t, doc.Breakfast)
	require.Empty(t, doc.Brunch)
	require.Empty(t, doc.Dinner)
}

func TestParseVenuePageWithoutVenueTitle(t *testing.T) {
	html := `<html><body>
		<div class="meal-container" data-meal="dinner">
			<div class="station">
				<p class="title">Hot Line</p>
				<ul><li class="js-menu-item" data-allergens="[&quot;soy&quot;]">Tofu</li></ul>
			</div>
		</div>
	</body></html>`

	doc, err := ParseVenuePage(strings.NewReader(html), "2025-04-15", DefaultHalls)
	require.NoError(t, err)
	require.Len(t, doc.Dinner, 1)
	require.Equal(t, "Unknown Dining Hall", doc.Dinner[0].Name)
}

func TestSnapHallName(t *testing.T) {
	cases := []struct {
		title  string
		expect string
	}{
		{"Parkside Restaurant & Grill", "Parkside"},
		{"Everybody's Kitchen", "Everybody's Kitchen"},
		{"USC Village Dining Hall", "USC Village"},
		// far from every roster entry: kept verbatim
		{"Law School Cafe", "Law School Cafe"},
	}
	for _, c := range cases {
		require.Equal(t, c.expect, SnapHallName(c.title, DefaultHalls), "title %q", c.title)
	}
}
