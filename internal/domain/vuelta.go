package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPrimeraVuelta = errors.New("vuelta 1 is derived from earlier steps and cannot be removed")
	ErrVueltaRange   = errors.New("vuelta number out of range")
	ErrNoBaseVuelta  = errors.New("vuelta list has no base vuelta yet")
)

// VueltaField names one of the recorded instants of a circuit pass.
type VueltaField string

const (
	FieldArrivalAtPoint     VueltaField = "arrivalAtPoint"
	FieldDepartureFromPoint VueltaField = "departureFromPoint"
	FieldArrivalAtScale     VueltaField = "arrivalAtScale"
	FieldEntryToScale       VueltaField = "entryToScale"
	FieldDepartureFromScale VueltaField = "departureFromScale"
	FieldProcesoAdicional   VueltaField = "procesoAdicional"
)

// Vuelta is one numbered pass of a vehicle through the loading and
// weighing circuit. Vuelta 1 mirrors the primary pass captured in the
// earlier wizard steps; vueltas 2+ record the uncommon return trips.
// The struct carries every field any variant uses; the variant's
// LapFields list decides which ones are active.
type Vuelta struct {
	Numero             int     `json:"numero"`
	ArrivalAtPoint     Subtime `json:"arrivalAtPoint"`
	DepartureFromPoint Subtime `json:"departureFromPoint"`
	ArrivalAtScale     Subtime `json:"arrivalAtScale"`
	EntryToScale       Subtime `json:"entryToScale"`
	DepartureFromScale Subtime `json:"departureFromScale"`
	ProcesoAdicional   Subtime `json:"procesoAdicional"`
}

func (v *Vuelta) field(f VueltaField) (*Subtime, error) {
	switch f {
	case FieldArrivalAtPoint:
		return &v.ArrivalAtPoint, nil
	case FieldDepartureFromPoint:
		return &v.DepartureFromPoint, nil
	case FieldArrivalAtScale:
		return &v.ArrivalAtScale, nil
	case FieldEntryToScale:
		return &v.EntryToScale, nil
	case FieldDepartureFromScale:
		return &v.DepartureFromScale, nil
	case FieldProcesoAdicional:
		return &v.ProcesoAdicional, nil
	default:
		return nil, fmt.Errorf("unknown vuelta field %q", f)
	}
}

// mirrorVuelta builds the derived first vuelta from the designated
// fields of the second and third step sections.
func mirrorVuelta(d *Draft, variant Variant) Vuelta {
	sources := map[VueltaField]Subtime{
		FieldArrivalAtPoint:     d.SegundoProceso.TiempoLlegadaPunto,
		FieldDepartureFromPoint: d.SegundoProceso.TiempoSalidaPunto,
		FieldArrivalAtScale:     d.TercerProceso.TiempoLlegadaBascula,
		FieldEntryToScale:       d.TercerProceso.TiempoEntradaBascula,
		FieldDepartureFromScale: d.TercerProceso.TiempoSalidaBascula,
		FieldProcesoAdicional:   d.TercerProceso.TiempoProcesoAdicional,
	}

	v := Vuelta{Numero: 1}
	for _, f := range variant.LapFields {
		target, _ := v.field(f)
		*target = sources[f]
	}
	return v
}

// SyncVueltas keeps vuelta 1 consistent with the data entered in the
// earlier sections. An empty list gets vuelta 1 synthesized; a
// non-empty list has only vuelta 1's active fields overwritten,
// leaving vueltas 2+ untouched. Runs on every load of the third step
// and again immediately before every save of it.
func SyncVueltas(d *Draft, variant Variant) {
	mirror := mirrorVuelta(d, variant)

	if len(d.TercerProceso.Vueltas) == 0 {
		d.TercerProceso.Vueltas = []Vuelta{mirror}
		return
	}
	d.TercerProceso.Vueltas[0] = mirror
}

// AddVuelta appends an empty vuelta numbered after the last one. The
// list must already hold its base vuelta.
func AddVuelta(d *Draft) error {
	n := len(d.TercerProceso.Vueltas)
	if n == 0 {
		return ErrNoBaseVuelta
	}

	d.TercerProceso.Vueltas = append(d.TercerProceso.Vueltas, Vuelta{Numero: n + 1})
	return nil
}

// RemoveVuelta removes the vuelta with the given number and renumbers
// the remainder sequentially from 1. Vuelta 1 cannot be removed.
// Confirmation of the irreversible action happens at the transport
// layer before this is called.
func RemoveVuelta(d *Draft, numero int) error {
	if numero == 1 {
		return ErrPrimeraVuelta
	}

	vueltas := d.TercerProceso.Vueltas
	if numero < 1 || numero > len(vueltas) {
		return ErrVueltaRange
	}

	vueltas = append(vueltas[:numero-1], vueltas[numero:]...)
	for i := range vueltas {
		vueltas[i].Numero = i + 1
	}
	d.TercerProceso.Vueltas = vueltas
	return nil
}

// EditVueltaField overwrites one subtime of the given vuelta. Edits
// against vuelta 1 are silently ignored rather than rejected, so UI
// elements that stay interactive by mistake cannot corrupt the mirror.
func EditVueltaField(d *Draft, variant Variant, numero int, f VueltaField, value Subtime) error {
	if numero == 1 {
		return nil
	}

	vueltas := d.TercerProceso.Vueltas
	if numero < 1 || numero > len(vueltas) {
		return ErrVueltaRange
	}
	if !variant.HasLapField(f) {
		return fmt.Errorf("vuelta field %q not used by variant %q", f, variant.Name)
	}

	target, err := vueltas[numero-1].field(f)
	if err != nil {
		return err
	}
	*target = value
	return nil
}
