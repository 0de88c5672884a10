package hospitality

// Hall identifies a dining hall: the display name stored in menu
// documents and the slug used by the hospitality site's endpoints.
type Hall struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DefaultHalls is the residential dining roster as of the current
// school year.
var DefaultHalls = []Hall{
	{Name: "Everybody's Kitchen", Slug: "evk"},
	{Name: "Parkside", Slug: "parkside"},
	{Name: "USC Village", Slug: "university-village"},
}

// wire model of the hsp-api get-res-dining-menus response.
type apiResponse struct {
	Meals []apiMeal `json:"meals"`
}

type apiMeal struct {
	Name     string       `json:"name"`
	Stations []apiStation `json:"stations"`
}

type apiStation struct {
	Station string        `json:"station"`
	Menu    []apiMenuItem `json:"menu"`
}

type apiMenuItem struct {
	Item        string   `json:"item"`
	Allergens   []string `json:"allergens"`
	Preferences []string `json:"preferences"`
}
