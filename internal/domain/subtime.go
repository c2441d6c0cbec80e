package domain

import "github.com/AdoDeveloper/sistema-demoras-sub003/internal/reloj"

// Subtime is one recorded event instant: a clock time plus an optional
// free-text note.
type Subtime struct {
	Hora        string `json:"hora"`
	Comentarios string `json:"comentarios"`
}

// SetTime stores value verbatim. Used when the value arrives from a
// control that already constrains it to time syntax.
func (s *Subtime) SetTime(value string) {
	s.Hora = value
}

// SetTimeMasked runs value through the progressive digit mask before
// storing it. Partial input is kept as typed; validation happens at
// submission.
func (s *Subtime) SetTimeMasked(value string) {
	s.Hora = reloj.FormatDigits(value)
}

// SetNow captures the current facility wall-clock time.
func (s *Subtime) SetNow() {
	s.Hora = reloj.Now()
}

func (s *Subtime) SetComment(value string) {
	s.Comentarios = value
}
