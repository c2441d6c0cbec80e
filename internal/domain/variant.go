package domain

// Variant parameterizes one wizard flavor: which storage keys it
// persists under and which vuelta fields its circuit records. The
// page-level duplication of the original flows collapses into these
// three configurations.
type Variant struct {
	Name      string
	Key       string
	EditKey   string
	LapFields []VueltaField
}

var (
	// General is the default truck flow: full five-instant circuit.
	General = Variant{
		Name:    "general",
		Key:     "demorasProcess",
		EditKey: "editDemoras",
		LapFields: []VueltaField{
			FieldArrivalAtPoint,
			FieldDepartureFromPoint,
			FieldArrivalAtScale,
			FieldEntryToScale,
			FieldDepartureFromScale,
		},
	}

	// Granel skips the scale-entry instant.
	Granel = Variant{
		Name:    "granel",
		Key:     "granelProcess",
		EditKey: "editGranel",
		LapFields: []VueltaField{
			FieldArrivalAtPoint,
			FieldDepartureFromPoint,
			FieldArrivalAtScale,
			FieldDepartureFromScale,
		},
	}

	// Molino adds the mill's extra proceeding to each pass.
	Molino = Variant{
		Name:    "molino",
		Key:     "molinoProcess",
		EditKey: "editMolino",
		LapFields: []VueltaField{
			FieldArrivalAtPoint,
			FieldDepartureFromPoint,
			FieldArrivalAtScale,
			FieldEntryToScale,
			FieldDepartureFromScale,
			FieldProcesoAdicional,
		},
	}
)

var variants = map[string]Variant{
	General.Name: General,
	Granel.Name:  Granel,
	Molino.Name:  Molino,
}

func VariantByName(name string) (Variant, bool) {
	v, ok := variants[name]
	return v, ok
}

// StorageKey returns the per-variant well-known draft key, switching
// to the edit-mode key when an already-submitted operation is being
// corrected.
func (v Variant) StorageKey(edit bool) string {
	if edit {
		return v.EditKey
	}
	return v.Key
}

func (v Variant) HasLapField(f VueltaField) bool {
	for _, lf := range v.LapFields {
		if lf == f {
			return true
		}
	}
	return false
}
