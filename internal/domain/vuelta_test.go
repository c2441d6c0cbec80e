package domain

import "testing"

func draftWithTimes() *Draft {
	d := NewDraft(General, "u1", "User One")
	d.SegundoProceso.TiempoLlegadaPunto = Subtime{Hora: "08:00:00", Comentarios: "en punto"}
	d.SegundoProceso.TiempoSalidaPunto = Subtime{Hora: "08:20:00"}
	d.TercerProceso.TiempoLlegadaBascula = Subtime{Hora: "08:30:00"}
	d.TercerProceso.TiempoEntradaBascula = Subtime{Hora: "08:35:00"}
	d.TercerProceso.TiempoSalidaBascula = Subtime{Hora: "08:45:00"}
	return d
}

func TestSyncVueltasSynthesizesFirst(t *testing.T) {
	d := draftWithTimes()

	SyncVueltas(d, General)

	if len(d.TercerProceso.Vueltas) != 1 {
		t.Fatalf("expected 1 vuelta, got %d", len(d.TercerProceso.Vueltas))
	}

	v := d.TercerProceso.Vueltas[0]
	if v.Numero != 1 {
		t.Fatalf("vuelta numero = %d, want 1", v.Numero)
	}
	if v.ArrivalAtPoint != d.SegundoProceso.TiempoLlegadaPunto {
		t.Errorf("arrivalAtPoint = %+v, want %+v", v.ArrivalAtPoint, d.SegundoProceso.TiempoLlegadaPunto)
	}
	if v.EntryToScale != d.TercerProceso.TiempoEntradaBascula {
		t.Errorf("entryToScale = %+v, want %+v", v.EntryToScale, d.TercerProceso.TiempoEntradaBascula)
	}
}

func TestSyncVueltasResyncsAfterSourceChange(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)

	if err := AddVuelta(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.TercerProceso.Vueltas[1].ArrivalAtPoint = Subtime{Hora: "10:00:00"}

	d.SegundoProceso.TiempoLlegadaPunto = Subtime{Hora: "09:15:00", Comentarios: "corregido"}
	SyncVueltas(d, General)

	v1 := d.TercerProceso.Vueltas[0]
	if v1.ArrivalAtPoint != d.SegundoProceso.TiempoLlegadaPunto {
		t.Fatalf("vuelta 1 not resynced: %+v", v1.ArrivalAtPoint)
	}

	v2 := d.TercerProceso.Vueltas[1]
	if v2.ArrivalAtPoint.Hora != "10:00:00" {
		t.Fatalf("vuelta 2 touched by sync: %+v", v2.ArrivalAtPoint)
	}
}

func TestSyncVueltasGranelSkipsEntryToScale(t *testing.T) {
	d := draftWithTimes()
	d.Variant = Granel.Name

	SyncVueltas(d, Granel)

	v := d.TercerProceso.Vueltas[0]
	if v.EntryToScale.Hora != "" {
		t.Fatalf("granel vuelta carries entryToScale %q, want empty", v.EntryToScale.Hora)
	}
	if v.DepartureFromScale != d.TercerProceso.TiempoSalidaBascula {
		t.Fatalf("departureFromScale = %+v, want mirror", v.DepartureFromScale)
	}
}

func TestSyncVueltasMolinoIncludesProcesoAdicional(t *testing.T) {
	d := draftWithTimes()
	d.Variant = Molino.Name
	d.TercerProceso.TiempoProcesoAdicional = Subtime{Hora: "09:00:00"}

	SyncVueltas(d, Molino)

	v := d.TercerProceso.Vueltas[0]
	if v.ProcesoAdicional.Hora != "09:00:00" {
		t.Fatalf("procesoAdicional = %q, want 09:00:00", v.ProcesoAdicional.Hora)
	}
}

func TestAddVueltaRequiresBase(t *testing.T) {
	d := NewDraft(General, "u1", "User One")

	if err := AddVuelta(d); err != ErrNoBaseVuelta {
		t.Fatalf("expected ErrNoBaseVuelta, got %v", err)
	}
}

func TestAddVueltaNumbersSequentially(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)

	for i := 0; i < 3; i++ {
		if err := AddVuelta(d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for i, v := range d.TercerProceso.Vueltas {
		if v.Numero != i+1 {
			t.Errorf("vuelta %d numero = %d, want %d", i, v.Numero, i+1)
		}
	}
}

func TestRemoveVueltaRenumbers(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)
	for i := 0; i < 4; i++ {
		AddVuelta(d)
	}
	d.TercerProceso.Vueltas[2].ArrivalAtPoint = Subtime{Hora: "11:00:00"}
	d.TercerProceso.Vueltas[3].ArrivalAtPoint = Subtime{Hora: "12:00:00"}

	if err := RemoveVuelta(d, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vueltas := d.TercerProceso.Vueltas
	if len(vueltas) != 4 {
		t.Fatalf("expected 4 vueltas after removal, got %d", len(vueltas))
	}
	for i, v := range vueltas {
		if v.Numero != i+1 {
			t.Errorf("vuelta at %d numero = %d, want %d", i, v.Numero, i+1)
		}
	}
	if vueltas[2].ArrivalAtPoint.Hora != "12:00:00" {
		t.Fatalf("wrong vuelta removed: %+v", vueltas[2].ArrivalAtPoint)
	}
}

func TestRemoveVueltaGuards(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)
	AddVuelta(d)

	if err := RemoveVuelta(d, 1); err != ErrPrimeraVuelta {
		t.Fatalf("expected ErrPrimeraVuelta, got %v", err)
	}
	if err := RemoveVuelta(d, 5); err != ErrVueltaRange {
		t.Fatalf("expected ErrVueltaRange, got %v", err)
	}
	if len(d.TercerProceso.Vueltas) != 2 {
		t.Fatalf("failed removals mutated the list: %d vueltas", len(d.TercerProceso.Vueltas))
	}
}

func TestEditVueltaFieldIgnoresFirst(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)
	before := d.TercerProceso.Vueltas[0]

	err := EditVueltaField(d, General, 1, FieldArrivalAtPoint, Subtime{Hora: "23:00:00"})
	if err != nil {
		t.Fatalf("edit against vuelta 1 must not error, got %v", err)
	}

	if d.TercerProceso.Vueltas[0] != before {
		t.Fatalf("vuelta 1 changed by direct edit")
	}
}

func TestEditVueltaField(t *testing.T) {
	d := draftWithTimes()
	SyncVueltas(d, General)
	AddVuelta(d)

	sub := Subtime{Hora: "10:05:00", Comentarios: "segunda vuelta"}
	if err := EditVueltaField(d, General, 2, FieldArrivalAtScale, sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := d.TercerProceso.Vueltas[1].ArrivalAtScale; got != sub {
		t.Fatalf("arrivalAtScale = %+v, want %+v", got, sub)
	}

	if err := EditVueltaField(d, Granel, 2, FieldEntryToScale, sub); err == nil {
		t.Fatalf("expected error for field inactive in variant")
	}
	if err := EditVueltaField(d, General, 9, FieldArrivalAtScale, sub); err != ErrVueltaRange {
		t.Fatalf("expected ErrVueltaRange, got %v", err)
	}
}
