package model

// Treatment is immutable reference data: a bookable procedure and how long
// it takes.
type Treatment struct {
	ID              int    `json:"id"`
	NameEN          string `json:"name_en"`
	NameKU          string `json:"name_ku"`
	DurationMinutes int    `json:"duration"`
}

// TreatmentCatalog resolves treatment ids. Built once at startup from config.
type TreatmentCatalog struct {
	treatments []Treatment
	byID       map[int]Treatment
}

func NewTreatmentCatalog(treatments []Treatment) *TreatmentCatalog {
	byID := make(map[int]Treatment, len(treatments))
	for _, t := range treatments {
		byID[t.ID] = t
	}
	return &TreatmentCatalog{treatments: treatments, byID: byID}
}

// Lookup returns the treatment for id. The second return is false for an
// unknown id; callers surface that as an error, never a default.
func (c *TreatmentCatalog) Lookup(id int) (Treatment, bool) {
	t, ok := c.byID[id]
	return t, ok
}

func (c *TreatmentCatalog) List() []Treatment {
	out := make([]Treatment, len(c.treatments))
	copy(out, c.treatments)
	return out
}
