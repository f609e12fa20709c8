package roi

import (
	"errors"
	"fmt"
	"math"
)

type Industry string

const (
	IndustryServices      Industry = "Services"
	IndustryRetail        Industry = "Commerce & Distribution"
	IndustryManufacturing Industry = "Industrie"
	IndustryHealthcare    Industry = "Santé"
	IndustryFinance       Industry = "Finance & Assurance"
	IndustryRealEstate    Industry = "Immobilier"
	IndustryTech          Industry = "Technologie"
	IndustryConstruction  Industry = "BTP & Construction"
	IndustryLogistics     Industry = "Transport & Logistique"
	IndustryOther         Industry = "Autre"
)

// Industries keeps the order of the form select.
var Industries = []Industry{
	IndustryServices,
	IndustryRetail,
	IndustryManufacturing,
	IndustryHealthcare,
	IndustryFinance,
	IndustryRealEstate,
	IndustryTech,
	IndustryConstruction,
	IndustryLogistics,
	IndustryOther,
}

func (i Industry) Valid() bool {
	for _, known := range Industries {
		if i == known {
			return true
		}
	}
	return false
}

var (
	ErrNegative        = errors.New("value must not be negative")
	ErrNotFinite       = errors.New("value must be a finite number")
	ErrUnknownIndustry = errors.New("unknown industry")
	ErrOutOfRange      = errors.New("value exceeds the accepted maximum")
)

// Upper bounds accepted at the input boundary. They sit well above the
// form sliders and keep every intermediate product of Compute below 2^53.
const (
	MaxEmployees       = 1_000_000
	MaxHourlyWage      = 100_000
	MaxHoursRepetitive = 168
)

type Inputs struct {
	Employees       int      `json:"employees"`
	HourlyWage      float64  `json:"hourlyWage"`
	HoursRepetitive float64  `json:"hoursRepetitive"`
	Industry        Industry `json:"industry"`
}

// Validate is the input boundary check. Compute never calls it.
func (in Inputs) Validate() error {
	if in.Employees < 0 {
		return fmt.Errorf("employees: %w", ErrNegative)
	}
	if in.Employees > MaxEmployees {
		return fmt.Errorf("employees: %w (%d)", ErrOutOfRange, MaxEmployees)
	}
	if err := checkAmount(in.HourlyWage, MaxHourlyWage); err != nil {
		return fmt.Errorf("hourlyWage: %w", err)
	}
	if err := checkAmount(in.HoursRepetitive, MaxHoursRepetitive); err != nil {
		return fmt.Errorf("hoursRepetitive: %w", err)
	}
	if !in.Industry.Valid() {
		return fmt.Errorf("industry %q: %w", in.Industry, ErrUnknownIndustry)
	}
	return nil
}

func checkAmount(v, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNotFinite
	}
	if v < 0 {
		return ErrNegative
	}
	if v > max {
		return fmt.Errorf("%w (%g)", ErrOutOfRange, max)
	}
	return nil
}

type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// FormLimits are the slider ranges of the calculator form. The number
// inputs next to the sliders accept values above Max.
type FormLimits struct {
	Employees       Range `json:"employees"`
	HourlyWage      Range `json:"hourlyWage"`
	HoursRepetitive Range `json:"hoursRepetitive"`
}

var Limits = FormLimits{
	Employees:       Range{Min: 1, Max: 200, Step: 1},
	HourlyWage:      Range{Min: 15, Max: 150, Step: 1},
	HoursRepetitive: Range{Min: 0, Max: 35, Step: 0.5},
}

var DefaultInputs = Inputs{
	Employees:       10,
	HourlyWage:      25,
	HoursRepetitive: 5,
	Industry:        IndustryServices,
}
