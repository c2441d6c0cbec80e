package domain

// Section names as they appear in persisted drafts.
const (
	SectionPrimerProceso  = "primerProceso"
	SectionSegundoProceso = "segundoProceso"
	SectionTercerProceso  = "tercerProceso"
	SectionProcesoFinal   = "procesoFinal"
)

// SectionNames lists the four step sections in wizard order.
var SectionNames = []string{
	SectionPrimerProceso,
	SectionSegundoProceso,
	SectionTercerProceso,
	SectionProcesoFinal,
}

// PrimerProceso captures the transaction and vehicle at plant entry.
type PrimerProceso struct {
	NumeroTransaccion   string  `json:"numeroTransaccion"`
	Placa               string  `json:"placa"`
	NombreMotorista     string  `json:"nombreMotorista"`
	EmpresaTransporte   string  `json:"empresaTransporte"`
	Producto            string  `json:"producto"`
	PuntoDespacho       string  `json:"puntoDespacho"`
	BasculaEntrada      string  `json:"basculaEntrada"`
	TiempoEntradaPlanta Subtime `json:"tiempoEntradaPlanta"`
	TiempoAutorizacion  Subtime `json:"tiempoAutorizacion"`
}

// SegundoProceso captures the loading crew and the punto-de-carga pass.
type SegundoProceso struct {
	Enlonador          string  `json:"enlonador"`
	Operador           string  `json:"operador"`
	ModeloEquipo       string  `json:"modeloEquipo"`
	PersonalAsignado   int     `json:"personalAsignado"`
	TipoCarga          string  `json:"tipoCarga"`
	TiempoLlegadaPunto Subtime `json:"tiempoLlegadaPunto"`
	TiempoInicioCarga  Subtime `json:"tiempoInicioCarga"`
	TiempoTerminaCarga Subtime `json:"tiempoTerminaCarga"`
	TiempoSalidaPunto  Subtime `json:"tiempoSalidaPunto"`
}

// TercerProceso captures the báscula pass and the vuelta list.
type TercerProceso struct {
	PesadorSalida          string   `json:"pesadorSalida"`
	BasculaSalida          string   `json:"basculaSalida"`
	TiempoLlegadaBascula   Subtime  `json:"tiempoLlegadaBascula"`
	TiempoEntradaBascula   Subtime  `json:"tiempoEntradaBascula"`
	TiempoSalidaBascula    Subtime  `json:"tiempoSalidaBascula"`
	TiempoProcesoAdicional Subtime  `json:"tiempoProcesoAdicional"`
	Vueltas                []Vuelta `json:"vueltas"`
}

// ProcesoFinal closes the operation at plant exit.
type ProcesoFinal struct {
	PesoNeto           string  `json:"pesoNeto"`
	PorteriaSalida     string  `json:"porteriaSalida"`
	TiempoSalidaPlanta Subtime `json:"tiempoSalidaPlanta"`
	Comentarios        string  `json:"comentarios"`
}
