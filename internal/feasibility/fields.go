package feasibility

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field identifies one Answer-Set field.
type Field int

const (
	FieldBusinessName Field = iota
	FieldBusinessType
	FieldActivityCategory
	FieldActivitySubcategory
	FieldWhatYouSell
	FieldWhere
	FieldWhereCity
	FieldWorkingAlone
	FieldNumberOfPartners
	FieldNumberOfEmployees
	FieldProductionPercentage
	FieldSalesPercentage
	FieldIsSeasonal
	FieldHighMonths
	FieldLowMonths
	FieldFirstClientsDescription
	FieldCompetitiveAdvantage
	FieldWhyRecommend
	FieldTeamDescription
	FieldNeedsAuthorizations
	FieldHasAuthorizations
	FieldAuthorizationCost
	FieldAuthorizationDelay
	FieldDesiredSalary
	FieldTargetRevenueProduct
	FieldTargetRevenueService
	FieldAverageBasket
	FieldCustomersPerMonth
	FieldMonthlyCharges
	FieldPersonalContribution
	FieldFinancialNeedAtLaunch
	FieldMonthsToReachSalary

	// derived
	FieldRevenueToUse
	FieldRevenuePerDay
	FieldHourlyRate
	FieldRealisticMonths

	fieldCount
)

// Kind is the declared value type of a field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBool
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBool:
		return "boolean"
	case KindStringList:
		return "string list"
	default:
		return "unknown"
	}
}

type fieldSpec struct {
	name    string
	kind    Kind
	derived bool
}

var fieldSpecs = [fieldCount]fieldSpec{
	FieldBusinessName:            {"businessName", KindString, false},
	FieldBusinessType:            {"businessType", KindString, false},
	FieldActivityCategory:        {"activityCategory", KindString, false},
	FieldActivitySubcategory:     {"activitySubcategory", KindString, false},
	FieldWhatYouSell:             {"whatYouSell", KindString, false},
	FieldWhere:                   {"where", KindStringList, false},
	FieldWhereCity:               {"whereCity", KindString, false},
	FieldWorkingAlone:            {"workingAlone", KindBool, false},
	FieldNumberOfPartners:        {"numberOfPartners", KindInteger, false},
	FieldNumberOfEmployees:       {"numberOfEmployees", KindInteger, false},
	FieldProductionPercentage:    {"productionPercentage", KindNumber, false},
	FieldSalesPercentage:         {"salesPercentage", KindNumber, false},
	FieldIsSeasonal:              {"isSeasonal", KindBool, false},
	FieldHighMonths:              {"highMonths", KindStringList, false},
	FieldLowMonths:               {"lowMonths", KindStringList, false},
	FieldFirstClientsDescription: {"firstClientsDescription", KindString, false},
	FieldCompetitiveAdvantage:    {"competitiveAdvantage", KindString, false},
	FieldWhyRecommend:            {"whyRecommend", KindString, false},
	FieldTeamDescription:         {"teamDescription", KindString, false},
	FieldNeedsAuthorizations:     {"needsAuthorizations", KindBool, false},
	FieldHasAuthorizations:       {"hasAuthorizations", KindBool, false},
	FieldAuthorizationCost:       {"authorizationCost", KindNumber, false},
	FieldAuthorizationDelay:      {"authorizationDelay", KindInteger, false},
	FieldDesiredSalary:           {"desiredSalary", KindNumber, false},
	FieldTargetRevenueProduct:    {"targetRevenueProduct", KindNumber, false},
	FieldTargetRevenueService:    {"targetRevenueService", KindNumber, false},
	FieldAverageBasket:           {"averageBasket", KindNumber, false},
	FieldCustomersPerMonth:       {"customersPerMonth", KindInteger, false},
	FieldMonthlyCharges:          {"monthlyCharges", KindNumber, false},
	FieldPersonalContribution:    {"personalContribution", KindNumber, false},
	FieldFinancialNeedAtLaunch:   {"financialNeedAtLaunch", KindNumber, false},
	FieldMonthsToReachSalary:     {"monthsToReachSalary", KindInteger, false},
	FieldRevenueToUse:            {"revenueToUse", KindNumber, true},
	FieldRevenuePerDay:           {"revenuePerDay", KindNumber, true},
	FieldHourlyRate:              {"hourlyRate", KindNumber, true},
	FieldRealisticMonths:         {"realisticMonths", KindInteger, true},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[fieldSpecs[f].name] = f
	}
	return m
}()

// ParseField resolves a questionnaire field name.
func ParseField(name string) (Field, error) {
	f, ok := fieldsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

func (f Field) valid() bool { return f >= 0 && f < fieldCount }

// Name returns the wire name of the field.
func (f Field) Name() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldSpecs[f].name
}

func (f Field) String() string { return f.Name() }

// Kind returns the declared value type.
func (f Field) Kind() Kind {
	if !f.valid() {
		return -1
	}
	return fieldSpecs[f].kind
}

// Derived reports whether the field is computed and therefore not writable.
func (f Field) Derived() bool {
	return f.valid() && fieldSpecs[f].derived
}

// EditableFields lists every writable field in declaration order.
func EditableFields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		if !fieldSpecs[f].derived {
			out = append(out, f)
		}
	}
	return out
}

func asString(f Field, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(f, v)
	}
	return s, nil
}

func asBool(f Field, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(f, v)
	}
	return b, nil
}

func asNumber(f Field, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, mismatch(f, v)
		}
		return x, nil
	default:
		return 0, mismatch(f, v)
	}
}

func asInteger(f Field, v any) (int, error) {
	x, err := asNumber(f, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) ||
		x < math.MinInt || x >= math.MaxInt {
		return 0, mismatch(f, v)
	}
	return int(x), nil
}

func asStringList(f Field, v any) ([]string, error) {
	switch l := v.(type) {
	case []string:
		out := make([]string, len(l))
		copy(out, l)
		return out, nil
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, mismatch(f, v)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, mismatch(f, v)
	}
}

func mismatch(f Field, v any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrFieldTypeMismatch, f.Name(), f.Kind(), v)
}
