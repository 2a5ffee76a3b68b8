package prenomina

import (
	"github.com/schollz/closestmatch"

	"prenomina-service/internal/domain"
)

// requiredColumn pairs the raw header expected in the upload with its
// normalized identifier, so schema errors can name both forms.
type requiredColumn struct {
	Raw        string
	Normalized string
}

// validateSchema checks that every required column is present in the
// normalized table. Missing columns are reported with a closest-match
// suggestion drawn from the headers actually found.
func validateSchema(file string, t *domain.Table, required []requiredColumn) error {
	var missing []MissingColumn
	for _, req := range required {
		if t.ColumnIndex(req.Normalized) >= 0 {
			continue
		}
		missing = append(missing, MissingColumn{
			Raw:        req.Raw,
			Normalized: req.Normalized,
			Suggestion: suggestColumn(req.Normalized, t.Columns),
		})
	}
	if len(missing) > 0 {
		return &SchemaError{File: file, Missing: missing}
	}
	return nil
}

func suggestColumn(want string, found []string) string {
	candidates := make([]string, 0, len(found))
	for _, c := range found {
		if c != "" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	cm := closestmatch.New(candidates, []int{2, 3, 4})
	return cm.Closest(want)
}
