package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/reloj"
)

var (
	ErrEventoIncompleto = errors.New("acontecimiento requires razon, hora inicio and hora fin")
	ErrRangoNegativo    = errors.New("hora fin precedes hora inicio")
	ErrEventoRange      = errors.New("acontecimiento index out of range")
)

// Acontecimiento is one discrete interruption of the operation.
type Acontecimiento struct {
	Razon         string `json:"razon"`
	HoraInicio    string `json:"horaInicio"`
	HoraFin       string `json:"horaFin"`
	Duracion      string `json:"duracion"`
	Observaciones string `json:"observaciones"`
}

// DefaultRazones seeds the reason list; users extend it at runtime.
var DefaultRazones = []string{
	"Falla de equipo",
	"Falta de producto",
	"Cambio de turno",
	"Lluvia",
	"Limpieza",
}

// EventLog is the acontecimientos draft: an ordered list of
// interruption events plus the entry currently being typed and, when
// set, the index being edited instead of appended.
type EventLog struct {
	FechaInicio string           `json:"fechaInicio"`
	UserID      string           `json:"userId"`
	UserName    string           `json:"userName"`
	Razones     []string         `json:"razones"`
	Eventos     []Acontecimiento `json:"eventos"`
	EditIndex   *int             `json:"editIndex"`
	Current     Acontecimiento   `json:"current"`
}

func NewEventLog(userID, userName string) *EventLog {
	return &EventLog{
		FechaInicio: reloj.NowStamp(),
		UserID:      userID,
		UserName:    userName,
		Razones:     append([]string(nil), DefaultRazones...),
		Eventos:     []Acontecimiento{},
	}
}

// AddRazon extends the reason enumeration. Duplicates and blanks are
// ignored.
func (l *EventLog) AddRazon(r string) {
	r = strings.TrimSpace(r)
	if r == "" {
		return
	}
	for _, existing := range l.Razones {
		if existing == r {
			return
		}
	}
	l.Razones = append(l.Razones, r)
}

// AddOrUpdate accepts the event: replacing the entry at EditIndex when
// one is set, appending otherwise. Razon, inicio and fin must be
// present and well-formed, and fin must not precede inicio. Duracion
// is derived here; callers never set it.
func (l *EventLog) AddOrUpdate(e Acontecimiento) error {
	if e.Razon == "" || e.HoraInicio == "" || e.HoraFin == "" {
		return ErrEventoIncompleto
	}

	start, err := reloj.Seconds(e.HoraInicio)
	if err != nil {
		return err
	}
	end, err := reloj.Seconds(e.HoraFin)
	if err != nil {
		return err
	}
	if end < start {
		return ErrRangoNegativo
	}

	e.Duracion, _ = reloj.Diff(e.HoraInicio, e.HoraFin)

	if l.EditIndex != nil {
		i := *l.EditIndex
		if i < 0 || i >= len(l.Eventos) {
			return ErrEventoRange
		}
		l.Eventos[i] = e
	} else {
		l.Eventos = append(l.Eventos, e)
	}

	l.EditIndex = nil
	l.Current = Acontecimiento{}
	return nil
}

// Remove deletes the entry at index. Confirmation of the irreversible
// action happens at the transport layer.
func (l *EventLog) Remove(index int) error {
	if index < 0 || index >= len(l.Eventos) {
		return ErrEventoRange
	}

	l.Eventos = append(l.Eventos[:index], l.Eventos[index+1:]...)

	if l.EditIndex != nil && *l.EditIndex == index {
		l.EditIndex = nil
	}
	return nil
}

// Snapshot renders the full log, including the entry mid-edit, as
// plain text. This is the last-chance export offered when the user
// cancels instead of submitting, so nothing typed is lost silently.
func (l *EventLog) Snapshot() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Acontecimientos — %s\n", l.FechaInicio)
	fmt.Fprintf(&b, "Usuario: %s (%s)\n\n", l.UserName, l.UserID)

	for i, e := range l.Eventos {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.Razon)
		fmt.Fprintf(&b, "   Inicio: %s  Fin: %s  Duracion: %s\n", e.HoraInicio, e.HoraFin, e.Duracion)
		if e.Observaciones != "" {
			fmt.Fprintf(&b, "   Observaciones: %s\n", e.Observaciones)
		}
	}
	if len(l.Eventos) == 0 {
		b.WriteString("(sin eventos registrados)\n")
	}

	if l.Current != (Acontecimiento{}) {
		b.WriteString("\nEn edicion:\n")
		fmt.Fprintf(&b, "   Razon: %s  Inicio: %s  Fin: %s\n", l.Current.Razon, l.Current.HoraInicio, l.Current.HoraFin)
		if l.Current.Observaciones != "" {
			fmt.Fprintf(&b, "   Observaciones: %s\n", l.Current.Observaciones)
		}
	}

	return b.String()
}
