// Package pipeline turns raw flight records into the fixed feature table the
// delay model trains on and predicts from. Frames are gota dataframes; the
// caller's frame is never modified in place.
package pipeline

// Column names of the source dataset.
const (
	ColFechaI    = "Fecha-I" // scheduled operation time
	ColFechaO    = "Fecha-O" // actual operation time (training data only)
	ColOpera     = "OPERA"   // operating airline
	ColTipoVuelo = "TIPOVUELO"
	ColMes       = "MES"
	ColDelay     = "delay"
)

// Engineered intermediate columns. They are added to the working frame for
// every run but are not part of the trained feature schema.
const (
	ColMinDiff    = "min_diff"
	ColPeriodDay  = "period_day"
	ColHighSeason = "high_season"
)

// TopFeatures is the trained feature schema: the exact indicator columns the
// model's weights are positionally bound to. The order is significant —
// reordering it invalidates every previously fitted model — so both the
// encoder and the model reference this one constant.
var TopFeatures = []string{
	"OPERA_Latin American Wings",
	"MES_7",
	"MES_10",
	"OPERA_Grupo LATAM",
	"MES_12",
	"TIPOVUELO_I",
	"MES_4",
	"MES_11",
	"OPERA_Sky Airline",
	"OPERA_Copa Air",
}
