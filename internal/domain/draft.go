package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/reloj"
)

// Draft is the whole multi-step record for one in-progress operation:
// identity captured once at creation plus the four named step sections.
type Draft struct {
	ID             string         `json:"id"`
	Variant        string         `json:"variant"`
	FechaInicio    string         `json:"fechaInicio"`
	UserID         string         `json:"userId"`
	UserName       string         `json:"userName"`
	PrimerProceso  PrimerProceso  `json:"primerProceso"`
	SegundoProceso SegundoProceso `json:"segundoProceso"`
	TercerProceso  TercerProceso  `json:"tercerProceso"`
	ProcesoFinal   ProcesoFinal   `json:"procesoFinal"`
}

func NewDraft(variant Variant, userID, userName string) *Draft {
	return &Draft{
		ID:          uuid.New().String(),
		Variant:     variant.Name,
		FechaInicio: reloj.NowStamp(),
		UserID:      userID,
		UserName:    userName,
	}
}

// Section returns the named step section by value.
func (d *Draft) Section(name string) (any, error) {
	switch name {
	case SectionPrimerProceso:
		return d.PrimerProceso, nil
	case SectionSegundoProceso:
		return d.SegundoProceso, nil
	case SectionTercerProceso:
		return d.TercerProceso, nil
	case SectionProcesoFinal:
		return d.ProcesoFinal, nil
	default:
		return nil, fmt.Errorf("unknown section %q", name)
	}
}

// SetSection replaces the named section wholesale with the decoded
// value. Fields absent from raw fall back to their zero values, so a
// persisted section never carries undefined fields.
func (d *Draft) SetSection(name string, raw json.RawMessage) error {
	switch name {
	case SectionPrimerProceso:
		var s PrimerProceso
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		d.PrimerProceso = s
	case SectionSegundoProceso:
		var s SegundoProceso
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		d.SegundoProceso = s
	case SectionTercerProceso:
		var s TercerProceso
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		d.TercerProceso = s
	case SectionProcesoFinal:
		var s ProcesoFinal
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		d.ProcesoFinal = s
	default:
		return fmt.Errorf("unknown section %q", name)
	}
	return nil
}

// ValidationError reports the fields that block a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// Validate checks the draft before submission: the identifying scalars
// must be present and every non-empty recorded time must be a complete
// HH:MM:SS value.
func (d *Draft) Validate() error {
	var bad []string

	if d.PrimerProceso.NumeroTransaccion == "" {
		bad = append(bad, "primerProceso.numeroTransaccion")
	}
	if d.PrimerProceso.Placa == "" {
		bad = append(bad, "primerProceso.placa")
	}

	for name, sub := range d.subtimes() {
		if sub.Hora != "" && !reloj.Valid(sub.Hora) {
			bad = append(bad, name)
		}
	}

	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

func (d *Draft) subtimes() map[string]Subtime {
	m := map[string]Subtime{
		"primerProceso.tiempoEntradaPlanta":  d.PrimerProceso.TiempoEntradaPlanta,
		"primerProceso.tiempoAutorizacion":   d.PrimerProceso.TiempoAutorizacion,
		"segundoProceso.tiempoLlegadaPunto":  d.SegundoProceso.TiempoLlegadaPunto,
		"segundoProceso.tiempoInicioCarga":   d.SegundoProceso.TiempoInicioCarga,
		"segundoProceso.tiempoTerminaCarga":  d.SegundoProceso.TiempoTerminaCarga,
		"segundoProceso.tiempoSalidaPunto":   d.SegundoProceso.TiempoSalidaPunto,
		"tercerProceso.tiempoLlegadaBascula": d.TercerProceso.TiempoLlegadaBascula,
		"tercerProceso.tiempoEntradaBascula": d.TercerProceso.TiempoEntradaBascula,
		"tercerProceso.tiempoSalidaBascula":  d.TercerProceso.TiempoSalidaBascula,
		"procesoFinal.tiempoSalidaPlanta":    d.ProcesoFinal.TiempoSalidaPlanta,
	}

	for _, v := range d.TercerProceso.Vueltas {
		prefix := fmt.Sprintf("tercerProceso.vueltas[%d].", v.Numero)
		m[prefix+string(FieldArrivalAtPoint)] = v.ArrivalAtPoint
		m[prefix+string(FieldDepartureFromPoint)] = v.DepartureFromPoint
		m[prefix+string(FieldArrivalAtScale)] = v.ArrivalAtScale
		m[prefix+string(FieldEntryToScale)] = v.EntryToScale
		m[prefix+string(FieldDepartureFromScale)] = v.DepartureFromScale
		m[prefix+string(FieldProcesoAdicional)] = v.ProcesoAdicional
	}

	return m
}
