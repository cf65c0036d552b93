package pipeline

import (
	"fmt"

	"go-viewer-dashboard/internal/model"
)

// Filter returns the records whose country is in the predicate's set and whose
// age lies in [AgeMin, AgeMax]. Order is preserved. A null age or country never
// matches.
func Filter(records []model.Record, p model.FilterPredicate) []model.Record {
	countries := p.CountrySet()
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, countries, p.AgeMin, p.AgeMax) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.Record, countries map[string]struct{}, ageMin, ageMax int) bool {
	country, ok := rec.Category(model.FieldCountry)
	if !ok {
		return false
	}
	if _, in := countries[country]; !in {
		return false
	}
	if rec.IsNull(model.FieldAge) {
		return false
	}
	return rec.Age >= ageMin && rec.Age <= ageMax
}

// ValidatePredicate checks the predicate against the dataset it will be applied to.
func ValidatePredicate(p model.FilterPredicate, ds *model.Dataset) error {
	if p.AgeMin > p.AgeMax {
		return fmt.Errorf("%w: age_min %d greater than age_max %d", model.ErrInvalidPredicate, p.AgeMin, p.AgeMax)
	}
	for _, c := range p.Countries {
		if !ds.HasCountry(c) {
			return fmt.Errorf("%w: unknown country %q", model.ErrInvalidPredicate, c)
		}
	}
	return nil
}

// DefaultPredicate selects every country and the full age range of the dataset.
func DefaultPredicate(ds *model.Dataset) model.FilterPredicate {
	countries := make([]string, len(ds.Profile.Countries))
	copy(countries, ds.Profile.Countries)
	return model.FilterPredicate{
		Countries: countries,
		AgeMin:    ds.Profile.AgeMin,
		AgeMax:    ds.Profile.AgeMax,
	}
}
