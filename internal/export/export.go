// Package export flattens archived operations into row payloads and
// renders them as downloadable spreadsheets. The data assembly is the
// interesting part; the workbook rendering stays a thin pass-through
// to excelize.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

// OperationsHeader is the column layout of the per-user report.
var OperationsHeader = []string{
	"Fecha inicio", "Tipo", "Variante", "Transaccion", "Placa",
	"Enlonador", "Llegada punto", "Salida punto",
	"Llegada bascula", "Salida bascula", "Vueltas", "Salida planta",
}

// OperationRows flattens archived operations into one row each,
// following OperationsHeader. Acontecimientos records collapse to
// their identifying columns; their detail lives in the snapshot
// export.
func OperationRows(records []storage.OperationRecord) [][]string {
	rows := make([][]string, 0, len(records))

	for _, rec := range records {
		row := []string{rec.FechaInicio, string(rec.Kind), rec.Variant}

		if rec.Kind == storage.KindDemoras {
			var d domain.Draft
			if err := json.Unmarshal(rec.Payload, &d); err == nil {
				row = append(row,
					d.PrimerProceso.NumeroTransaccion,
					d.PrimerProceso.Placa,
					d.SegundoProceso.Enlonador,
					d.SegundoProceso.TiempoLlegadaPunto.Hora,
					d.SegundoProceso.TiempoSalidaPunto.Hora,
					d.TercerProceso.TiempoLlegadaBascula.Hora,
					d.TercerProceso.TiempoSalidaBascula.Hora,
					fmt.Sprintf("%d", len(d.TercerProceso.Vueltas)),
					d.ProcesoFinal.TiempoSalidaPlanta.Hora,
				)
			}
		}

		for len(row) < len(OperationsHeader) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	return rows
}

// VueltaRows expands one draft's vuelta list, one row per recorded
// instant per vuelta, for the detailed sheet.
func VueltaRows(d *domain.Draft, variant domain.Variant) [][]string {
	rows := [][]string{{"Vuelta", "Campo", "Hora", "Comentarios"}}

	for _, v := range d.TercerProceso.Vueltas {
		subs := map[domain.VueltaField]domain.Subtime{
			domain.FieldArrivalAtPoint:     v.ArrivalAtPoint,
			domain.FieldDepartureFromPoint: v.DepartureFromPoint,
			domain.FieldArrivalAtScale:     v.ArrivalAtScale,
			domain.FieldEntryToScale:       v.EntryToScale,
			domain.FieldDepartureFromScale: v.DepartureFromScale,
			domain.FieldProcesoAdicional:   v.ProcesoAdicional,
		}
		for _, f := range variant.LapFields {
			sub := subs[f]
			rows = append(rows, []string{
				fmt.Sprintf("%d", v.Numero), string(f), sub.Hora, sub.Comentarios,
			})
		}
	}

	return rows
}

// WriteXLSX renders header plus rows into a single-sheet workbook.
func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	all := append([][]string{header}, rows...)
	for i, row := range all {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
