package weather

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ForecastResponse is the Open-Meteo forecast payload.
// Pointer fields let the decoder tell a missing value apart from a zero one;
// every field tagged required must be present for the payload to be usable.
type ForecastResponse struct {
	Latitude             *float64      `json:"latitude" validate:"required"`
	Longitude            *float64      `json:"longitude" validate:"required"`
	GenerationTimeMS     *float64      `json:"generationtime_ms" validate:"required"`
	UTCOffsetSeconds     *int          `json:"utc_offset_seconds" validate:"required"`
	Timezone             *string       `json:"timezone" validate:"required"`
	TimezoneAbbreviation *string       `json:"timezone_abbreviation" validate:"required"`
	Elevation            *float64      `json:"elevation" validate:"required"`
	CurrentUnits         *CurrentUnits `json:"current_units,omitempty"`
	Current              *Current      `json:"current,omitempty"`
	HourlyUnits          *HourlyUnits  `json:"hourly_units" validate:"required"`
	Hourly               *Hourly       `json:"hourly" validate:"required"`
}

// Current holds the "current" block requested alongside the hourly series.
type Current struct {
	Time          string  `json:"time"`
	Interval      int     `json:"interval"`
	Temperature2M float64 `json:"temperature_2m"`
	WindSpeed10M  float64 `json:"wind_speed_10m"`
}

// CurrentUnits holds unit labels for Current.
type CurrentUnits struct {
	Time          string `json:"time"`
	Interval      string `json:"interval"`
	Temperature2M string `json:"temperature_2m"`
	WindSpeed10M  string `json:"wind_speed_10m"`
}

// Hourly holds the hourly series. Time and Temperature2M are index-aligned.
// Open-Meteo reports a missing hourly value as null, kept here as a nil element.
type Hourly struct {
	Time               []string   `json:"time" validate:"required"`
	Temperature2M      []*float64 `json:"temperature_2m" validate:"required"`
	RelativeHumidity2M []*float64 `json:"relative_humidity_2m,omitempty"`
	WindSpeed10M       []*float64 `json:"wind_speed_10m,omitempty"`
}

// HourlyUnits holds unit labels for Hourly.
type HourlyUnits struct {
	Time               *string `json:"time" validate:"required"`
	Temperature2M      *string `json:"temperature_2m" validate:"required"`
	RelativeHumidity2M string  `json:"relative_humidity_2m,omitempty"`
	WindSpeed10M       string  `json:"wind_speed_10m,omitempty"`
}

// Validate reports whether every field needed to build a StoredRecord is present.
func (f *ForecastResponse) Validate() error {
	if f == nil {
		return errNilForecast
	}
	return validate.Struct(f)
}

// StoredRecord is the item persisted once per successful invocation.
type StoredRecord struct {
	ID       string           `json:"id" dynamodbav:"id"`
	Forecast ForecastSnapshot `json:"forecast" dynamodbav:"forecast"`
}

// ForecastSnapshot is the subset of ForecastResponse kept in a StoredRecord.
// Field order matches the serialized item.
type ForecastSnapshot struct {
	Elevation            float64             `json:"elevation" dynamodbav:"elevation"`
	GenerationTimeMS     float64             `json:"generationtime_ms" dynamodbav:"generationtime_ms"`
	Hourly               HourlySnapshot      `json:"hourly" dynamodbav:"hourly"`
	HourlyUnits          HourlyUnitsSnapshot `json:"hourly_units" dynamodbav:"hourly_units"`
	Latitude             float64             `json:"latitude" dynamodbav:"latitude"`
	Longitude            float64             `json:"longitude" dynamodbav:"longitude"`
	Timezone             string              `json:"timezone" dynamodbav:"timezone"`
	TimezoneAbbreviation string              `json:"timezone_abbreviation" dynamodbav:"timezone_abbreviation"`
	UTCOffsetSeconds     int                 `json:"utc_offset_seconds" dynamodbav:"utc_offset_seconds"`
}

// HourlySnapshot is the stored hourly temperature series. A nil element is
// written as JSON null and as a DynamoDB NULL attribute.
type HourlySnapshot struct {
	Temperature2M []*float64 `json:"temperature_2m" dynamodbav:"temperature_2m"`
	Time          []string   `json:"time" dynamodbav:"time"`
}

// HourlyUnitsSnapshot is the stored pair of unit labels.
type HourlyUnitsSnapshot struct {
	Temperature2M string `json:"temperature_2m" dynamodbav:"temperature_2m"`
	Time          string `json:"time" dynamodbav:"time"`
}
