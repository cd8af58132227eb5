package compute

import (
	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// DefaultShiftAvailableHours is the reference shift length used when the
// caller does not configure one.
const DefaultShiftAvailableHours = 12.0

// Input holds everything recorded for one shift instance. Records must
// already exclude soft-deleted rows.
type Input struct {
	// ShiftID identifies the shift; empty means "no shift selected".
	ShiftID string

	Production  []types.ProductionRecord
	QualityLoss []types.QualityLossRecord

	// Events are the shift's stoppages normalised by package normalize.
	Events []normalize.Event

	// AvailableHours is the nominal shift length in hours.
	AvailableHours float64
}

// Output is the OEE breakdown for one shift. Percentages are 0–100; the two
// time values are hours. All fields are rounded to 2 decimals.
type Output struct {
	Availability     float64 `json:"availability"`
	Performance      float64 `json:"performance"`
	Quality          float64 `json:"quality"`
	OEE              float64 `json:"oee"`
	NetOperatingTime float64 `json:"net_operating_time"`
	ValuableTime     float64 `json:"valuable_time"`

	// Raw inputs behind the percentages, exposed for tables and alerts.
	TotalProduced    float64 `json:"total_produced"`
	TotalLoss        float64 `json:"total_loss"`
	NominalSpeed     float64 `json:"nominal_speed"`
	StrategicMinutes float64 `json:"strategic_minutes"`
	BigMinutes       float64 `json:"big_minutes"`
	OperatingTime    float64 `json:"operating_time"`
}

// Compute calculates the OEE breakdown for one shift.
//
// Conventions:
//   - nominal speed is the first non-zero speed snapshot, not an average;
//   - performance is capped at 100 so running above nominal never inflates OEE;
//   - quality is 100 when nothing was produced;
//   - no shift or no production records yields an all-zero Output.
func Compute(in Input) Output {
	if in.ShiftID == "" || len(in.Production) == 0 {
		return Output{}
	}

	var produced, speed float64
	for _, p := range in.Production {
		produced += p.Quantity
		if speed == 0 && p.NominalSpeed > 0 {
			speed = p.NominalSpeed
		}
	}

	var strategicMin, bigMin float64
	for _, ev := range in.Events {
		switch {
		case ev.IsStrategic():
			strategicMin += ev.Minutes()
		case ev.IsBig():
			bigMin += ev.Minutes()
		}
	}

	availableAdjusted := in.AvailableHours - strategicMin/60
	operating := availableAdjusted - bigMin/60

	var availability float64
	if availableAdjusted > 0 {
		availability = clamp(operating/availableAdjusted*100, 0, 100)
	}

	var netOperating float64
	if speed > 0 {
		netOperating = produced / speed
	}

	var performance float64
	if operating > 0 {
		performance = clamp(netOperating/operating*100, 0, 100)
	}

	var loss float64
	for _, q := range in.QualityLoss {
		loss += q.Quantity
	}

	quality := 100.0
	if produced > 0 {
		quality = clamp((produced-loss)/produced*100, 0, 100)
	}

	oee := availability / 100 * performance / 100 * quality / 100 * 100
	valuable := quality / 100 * netOperating

	return Output{
		Availability:     Round2(availability),
		Performance:      Round2(performance),
		Quality:          Round2(quality),
		OEE:              Round2(oee),
		NetOperatingTime: Round2(netOperating),
		ValuableTime:     Round2(valuable),
		TotalProduced:    produced,
		TotalLoss:        loss,
		NominalSpeed:     speed,
		StrategicMinutes: Round2(strategicMin),
		BigMinutes:       Round2(bigMin),
		OperatingTime:    Round2(operating),
	}
}
