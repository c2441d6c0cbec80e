package domain

import (
	"testing"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/reloj"
)

func TestSubtimeEditors(t *testing.T) {
	var s Subtime

	s.SetTimeMasked("083015")
	if s.Hora != "08:30:15" {
		t.Fatalf("masked set = %q, want 08:30:15", s.Hora)
	}

	s.SetComment("nota")
	if s.Comentarios != "nota" {
		t.Fatalf("comment = %q", s.Comentarios)
	}

	// a partial masked edit keeps the comment untouched
	s.SetTimeMasked("0930")
	if s.Hora != "09:30" || s.Comentarios != "nota" {
		t.Fatalf("partial edit broke state: %+v", s)
	}

	s.SetTime("10:00:00")
	if s.Hora != "10:00:00" {
		t.Fatalf("verbatim set = %q", s.Hora)
	}

	s.SetNow()
	if !reloj.Valid(s.Hora) {
		t.Fatalf("SetNow produced %q", s.Hora)
	}
}
