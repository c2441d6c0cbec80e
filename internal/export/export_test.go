package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

func sampleDraft() *domain.Draft {
	d := domain.NewDraft(domain.General, "u1", "User One")
	d.PrimerProceso.NumeroTransaccion = "T-9"
	d.PrimerProceso.Placa = "C 123-456"
	d.SegundoProceso.Enlonador = "X"
	d.SegundoProceso.TiempoLlegadaPunto = domain.Subtime{Hora: "08:00:00"}
	domain.SyncVueltas(d, domain.General)
	return d
}

func TestOperationRows(t *testing.T) {
	record, err := storage.FromDraft(sampleDraft())
	require.NoError(t, err)

	rows := OperationRows([]storage.OperationRecord{*record})
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(OperationsHeader))

	assert.Equal(t, "demoras", rows[0][1])
	assert.Equal(t, "T-9", rows[0][3])
	assert.Equal(t, "X", rows[0][5])
	assert.Equal(t, "08:00:00", rows[0][6])
	assert.Equal(t, "1", rows[0][10])
}

func TestOperationRowsEventLog(t *testing.T) {
	l := domain.NewEventLog("u1", "User One")
	require.NoError(t, l.AddOrUpdate(domain.Acontecimiento{
		Razon:      "Lluvia",
		HoraInicio: "08:00:00",
		HoraFin:    "08:30:00",
	}))
	record, err := storage.FromEventLog("op-1", l)
	require.NoError(t, err)

	rows := OperationRows([]storage.OperationRecord{*record})
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(OperationsHeader))
	assert.Equal(t, "acontecimientos", rows[0][1])
}

func TestVueltaRows(t *testing.T) {
	d := sampleDraft()
	require.NoError(t, domain.AddVuelta(d))

	rows := VueltaRows(d, domain.General)

	// header plus five active fields per vuelta
	assert.Len(t, rows, 1+2*len(domain.General.LapFields))
	assert.Equal(t, []string{"1", "arrivalAtPoint", "08:00:00", ""}, rows[1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	err := WriteXLSX(&buf, "Operaciones", OperationsHeader, [][]string{
		{"2026-08-31 08:00:00", "demoras", "general"},
	})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())

	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
