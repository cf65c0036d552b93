package pipeline

import (
	"strings"
	"unicode"

	"go-viewer-dashboard/internal/model"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headerAliases maps normalized source headers onto canonical column names.
// Both the English export and the translated dashboard drafts are accepted.
var headerAliases = map[string]string{
	"user_id":                model.FieldUserID,
	"userid":                 model.FieldUserID,
	"id":                     model.FieldUserID,
	"id_usuario":             model.FieldUserID,
	"name":                   model.FieldName,
	"nombre":                 model.FieldName,
	"age":                    model.FieldAge,
	"edad":                   model.FieldAge,
	"country":                model.FieldCountry,
	"pais":                   model.FieldCountry,
	"subscription_type":      model.FieldSubscriptionType,
	"subscription":           model.FieldSubscriptionType,
	"tipo_de_suscripcion":    model.FieldSubscriptionType,
	"suscripcion":            model.FieldSubscriptionType,
	"watch_time_hours":       model.FieldWatchTimeHours,
	"watch_time":             model.FieldWatchTimeHours,
	"horas_de_visualizacion": model.FieldWatchTimeHours,
	"horas_vistas":           model.FieldWatchTimeHours,
	"favorite_genre":         model.FieldFavoriteGenre,
	"genre":                  model.FieldFavoriteGenre,
	"genero_favorito":        model.FieldFavoriteGenre,
	"last_login":             model.FieldLastLogin,
	"ultimo_acceso":          model.FieldLastLogin,
	"ultima_conexion":        model.FieldLastLogin,
}

// fieldLabels are the axis and title names used for summary tables
var fieldLabels = map[string]string{
	model.FieldUserID:           "User ID",
	model.FieldName:             "Name",
	model.FieldAge:              "Age",
	model.FieldCountry:          "Country",
	model.FieldSubscriptionType: "Subscription type",
	model.FieldWatchTimeHours:   "Weekly watch time (hours)",
	model.FieldFavoriteGenre:    "Favorite genre",
	model.FieldLastLogin:        "Last login",
	model.FieldAgeRange:         "Age range",
	model.FieldLoginMonth:       "Login month",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader trims, unquotes, lower-cases and snake-cases a header, then
// maps known aliases onto the canonical column name.
func NormalizeHeader(h string) string {
	clean := strings.TrimPrefix(h, "\ufeff")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, `"`, "")
	if folded, _, err := transform.String(stripMarks, clean); err == nil {
		clean = folded
	}
	clean = strings.ToLower(clean)
	clean = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '.' {
			return '_'
		}
		return r
	}, clean)
	for strings.Contains(clean, "__") {
		clean = strings.ReplaceAll(clean, "__", "_")
	}
	clean = strings.Trim(clean, "_")

	if canonical, ok := headerAliases[clean]; ok {
		return canonical
	}
	return clean
}

// NormalizeHeaders applies NormalizeHeader to every header.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// FieldLabel returns the display name of a column.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// IsNumericField reports whether field supports means, correlation and binning.
func IsNumericField(field string) bool {
	for _, f := range model.NumericFields {
		if f == field {
			return true
		}
	}
	return false
}

// IsCategoricalField reports whether field can be used as a grouping key.
func IsCategoricalField(field string) bool {
	for _, f := range model.CategoricalFields {
		if f == field {
			return true
		}
	}
	return false
}

// categoryOf resolves a grouping key, including keys derived from other columns.
func categoryOf(rec model.Record, field string) (string, bool) {
	if field == model.FieldAgeRange {
		age, ok := rec.Float(model.FieldAge)
		if !ok {
			return "", false
		}
		label, ok := AgeBins.labelFor(age)
		if !ok {
			return "", false
		}
		return label, true
	}
	return rec.Category(field)
}
