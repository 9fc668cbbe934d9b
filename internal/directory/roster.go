package directory

import "github.com/parleyapp/parley/internal/models"

// DefaultRoster is the built-in demo roster used when no roster directory
// is configured.
func DefaultRoster() []models.Entity {
	return []models.Entity{
		{ID: 1, Name: "Emma Thompson", Kind: models.KindIndividual},
		{ID: 2, Name: "James Wilson", Kind: models.KindIndividual},
		{ID: 3, Name: "Project Team", Kind: models.KindGroup, Members: []string{"Sarah Parker", "Michael Brown", "Lisa Anderson"}},
		{ID: 4, Name: "Oliver Davis", Kind: models.KindIndividual},
		{ID: 5, Name: "Marketing Team", Kind: models.KindGroup, Members: []string{"John Smith", "Emily White", "David Clark"}},
		{ID: 6, Name: "Sophie Turner", Kind: models.KindIndividual},
		{ID: 7, Name: "William Brown", Kind: models.KindIndividual},
		{ID: 8, Name: "Isabella Martinez", Kind: models.KindIndividual},
		{ID: 9, Name: "Lucas Anderson", Kind: models.KindIndividual},
		{ID: 10, Name: "Olivia Taylor", Kind: models.KindIndividual},
		{ID: 11, Name: "Ethan Wright", Kind: models.KindIndividual},
		{ID: 12, Name: "Ava Johnson", Kind: models.KindIndividual},
		{ID: 13, Name: "Noah Garcia", Kind: models.KindIndividual},
		{ID: 14, Name: "Mia Robinson", Kind: models.KindIndividual},
		{ID: 15, Name: "Liam Thomas", Kind: models.KindIndividual},
		{ID: 16, Name: "Charlotte Lee", Kind: models.KindIndividual},
		{ID: 17, Name: "Henry Clark", Kind: models.KindIndividual},
		{ID: 18, Name: "Amelia White", Kind: models.KindIndividual},
		{ID: 19, Name: "Benjamin King", Kind: models.KindIndividual},
		{ID: 20, Name: "Sofia Rodriguez", Kind: models.KindIndividual},
	}
}

// Default builds a directory over the built-in roster.
func Default() *Directory {
	d, err := New(DefaultRoster())
	if err != nil {
		panic(err)
	}
	return d
}
