package filters

// TitleFilters narrows the title list. Zero values mean "no filter".
type TitleFilters struct {
	Genre    string `schema:"genre" validate:"omitempty,max=50"`
	Category string `schema:"category" validate:"omitempty,max=50"`
	Year     int    `schema:"year" validate:"omitempty,gte=1900"`
	Name     string `schema:"name" validate:"omitempty,max=256"`
}
