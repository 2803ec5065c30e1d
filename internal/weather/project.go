package weather

import (
	"fmt"
	"slices"
)

// NewRecord projects forecast onto the stored subset under the given id.
// Values are copied as-is; fields outside the subset are dropped.
func NewRecord(id string, forecast *ForecastResponse) (StoredRecord, error) {
	if err := forecast.Validate(); err != nil {
		return StoredRecord{}, fmt.Errorf("incomplete forecast: %w", err)
	}

	return StoredRecord{
		ID: id,
		Forecast: ForecastSnapshot{
			Elevation:        *forecast.Elevation,
			GenerationTimeMS: *forecast.GenerationTimeMS,
			Hourly: HourlySnapshot{
				Temperature2M: cloneSeries(forecast.Hourly.Temperature2M),
				Time:          slices.Clone(forecast.Hourly.Time),
			},
			HourlyUnits: HourlyUnitsSnapshot{
				Temperature2M: *forecast.HourlyUnits.Temperature2M,
				Time:          *forecast.HourlyUnits.Time,
			},
			Latitude:             *forecast.Latitude,
			Longitude:            *forecast.Longitude,
			Timezone:             *forecast.Timezone,
			TimezoneAbbreviation: *forecast.TimezoneAbbreviation,
			UTCOffsetSeconds:     *forecast.UTCOffsetSeconds,
		},
	}, nil
}

// cloneSeries copies values so the record shares no memory with the payload.
// Nil elements stay nil.
func cloneSeries(values []*float64) []*float64 {
	if values == nil {
		return nil
	}
	out := make([]*float64, len(values))
	for i, v := range values {
		if v != nil {
			c := *v
			out[i] = &c
		}
	}
	return out
}
