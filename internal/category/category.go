package category

// Facet is one distinct category or tag value and how many entries use it.
type Facet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets lists the free-text groupings in use across the catalog.
type Facets struct {
	ProductCategories []Facet `json:"productCategories"`
	ServiceTags       []Facet `json:"serviceTags"`
}
