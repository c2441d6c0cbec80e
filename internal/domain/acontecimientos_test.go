package domain

import (
	"strings"
	"testing"
)

func TestEventLogAddOrUpdateAppends(t *testing.T) {
	l := NewEventLog("u1", "User One")

	err := l.AddOrUpdate(Acontecimiento{
		Razon:      "Lluvia",
		HoraInicio: "08:00:00",
		HoraFin:    "09:30:15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(l.Eventos) != 1 {
		t.Fatalf("expected 1 evento, got %d", len(l.Eventos))
	}
	if got := l.Eventos[0].Duracion; got != "01:30:15" {
		t.Fatalf("duracion = %q, want 01:30:15", got)
	}
}

func TestEventLogAddOrUpdateValidation(t *testing.T) {
	tests := []struct {
		name    string
		evento  Acontecimiento
		wantErr error
	}{
		{
			name:    "missing razon",
			evento:  Acontecimiento{HoraInicio: "08:00:00", HoraFin: "09:00:00"},
			wantErr: ErrEventoIncompleto,
		},
		{
			name:    "missing fin",
			evento:  Acontecimiento{Razon: "Lluvia", HoraInicio: "08:00:00"},
			wantErr: ErrEventoIncompleto,
		},
		{
			name:    "fin before inicio",
			evento:  Acontecimiento{Razon: "Lluvia", HoraInicio: "09:00:00", HoraFin: "08:00:00"},
			wantErr: ErrRangoNegativo,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewEventLog("u1", "User One")

			if err := l.AddOrUpdate(tt.evento); err != tt.wantErr {
				t.Fatalf("AddOrUpdate error = %v, want %v", err, tt.wantErr)
			}
			if len(l.Eventos) != 0 {
				t.Fatalf("rejected evento was stored")
			}
		})
	}
}

func TestEventLogAddOrUpdateMalformedTime(t *testing.T) {
	l := NewEventLog("u1", "User One")

	err := l.AddOrUpdate(Acontecimiento{Razon: "Lluvia", HoraInicio: "8:00", HoraFin: "09:00:00"})
	if err == nil {
		t.Fatalf("expected error for malformed hora inicio")
	}
}

func TestEventLogEditIndexReplaces(t *testing.T) {
	l := NewEventLog("u1", "User One")
	l.AddOrUpdate(Acontecimiento{Razon: "Lluvia", HoraInicio: "08:00:00", HoraFin: "08:30:00"})
	l.AddOrUpdate(Acontecimiento{Razon: "Limpieza", HoraInicio: "09:00:00", HoraFin: "09:10:00"})

	idx := 0
	l.EditIndex = &idx

	err := l.AddOrUpdate(Acontecimiento{Razon: "Falla de equipo", HoraInicio: "08:00:00", HoraFin: "08:45:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(l.Eventos) != 2 {
		t.Fatalf("edit appended instead of replacing: %d eventos", len(l.Eventos))
	}
	if l.Eventos[0].Razon != "Falla de equipo" {
		t.Fatalf("evento 0 razon = %q", l.Eventos[0].Razon)
	}
	if l.EditIndex != nil {
		t.Fatalf("EditIndex not cleared after update")
	}
}

func TestEventLogRemove(t *testing.T) {
	l := NewEventLog("u1", "User One")
	l.AddOrUpdate(Acontecimiento{Razon: "Lluvia", HoraInicio: "08:00:00", HoraFin: "08:30:00"})
	l.AddOrUpdate(Acontecimiento{Razon: "Limpieza", HoraInicio: "09:00:00", HoraFin: "09:10:00"})

	if err := l.Remove(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Eventos) != 1 || l.Eventos[0].Razon != "Limpieza" {
		t.Fatalf("wrong evento removed: %+v", l.Eventos)
	}

	if err := l.Remove(5); err != ErrEventoRange {
		t.Fatalf("expected ErrEventoRange, got %v", err)
	}
}

func TestEventLogAddRazon(t *testing.T) {
	l := NewEventLog("u1", "User One")
	base := len(l.Razones)

	l.AddRazon("Corte de energia")
	l.AddRazon("Corte de energia")
	l.AddRazon("   ")

	if len(l.Razones) != base+1 {
		t.Fatalf("razones = %v", l.Razones)
	}
}

func TestEventLogSnapshot(t *testing.T) {
	l := NewEventLog("u1", "User One")
	l.AddOrUpdate(Acontecimiento{Razon: "Lluvia", HoraInicio: "08:00:00", HoraFin: "08:30:00", Observaciones: "fuerte"})
	l.Current = Acontecimiento{Razon: "Limpieza", HoraInicio: "09:00:00"}

	text := l.Snapshot()

	for _, want := range []string{"Lluvia", "00:30:00", "fuerte", "En edicion", "Limpieza", "User One"} {
		if !strings.Contains(text, want) {
			t.Errorf("snapshot missing %q:\n%s", want, text)
		}
	}
}
