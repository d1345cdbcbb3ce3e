// Package feasibility holds the derivation rules and the feasibility score
// of a questionnaire answer-set. Everything here is pure.
package feasibility

import (
	"errors"
	"fmt"

	"feasibility-workers/internal/models"
)

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrFieldTypeMismatch = errors.New("field type mismatch")
	ErrDerivedField      = errors.New("derived field is not writable")
)

const (
	workingDaysPerMonth = 20
	hoursPerDay         = 8
	realisticFactor     = 3
)

// ApplyFieldUpdateByName resolves name and applies the update.
func ApplyFieldUpdateByName(set models.AnswerSet, name string, value any) (models.AnswerSet, error) {
	f, err := ParseField(name)
	if err != nil {
		return set, err
	}
	return ApplyFieldUpdate(set, f, value)
}

// ApplyFieldUpdate writes value into a copy of set and re-derives the
// fields that depend on f. The input set is never modified. Values are
// not range checked.
func ApplyFieldUpdate(set models.AnswerSet, f Field, value any) (models.AnswerSet, error) {
	if !f.valid() {
		return set, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if f.Derived() {
		return set, fmt.Errorf("%w: %s", ErrDerivedField, f)
	}

	out := set.Clone()
	if err := assign(&out, f, value); err != nil {
		return set, err
	}

	switch f {
	case FieldBusinessType,
		FieldTargetRevenueProduct,
		FieldTargetRevenueService,
		FieldAverageBasket,
		FieldCustomersPerMonth:
		deriveRevenue(&out)
	case FieldMonthsToReachSalary:
		out.RealisticMonths = out.MonthsToReachSalary * realisticFactor
	case FieldProductionPercentage:
		out.SalesPercentage = 100 - out.ProductionPercentage
	case FieldSalesPercentage:
		out.ProductionPercentage = 100 - out.SalesPercentage
	}

	return out, nil
}

// Recompute re-derives every derived field from the authoritative ones.
// The time split is rebuilt from the production side and both month sets
// are reapplied, so wire input cannot exceed MaxSeasonMonths.
func Recompute(set models.AnswerSet) models.AnswerSet {
	out := set.Clone()
	out = out.SetMonths(models.SeasonHigh, out.HighMonths).SetMonths(models.SeasonLow, out.LowMonths)
	deriveRevenue(&out)
	out.RealisticMonths = out.MonthsToReachSalary * realisticFactor
	out.SalesPercentage = 100 - out.ProductionPercentage
	return out
}

// RevenueToUse is average basket times customers when both are positive,
// otherwise the target revenue matching the business type.
func RevenueToUse(set models.AnswerSet) float64 {
	if set.AverageBasket > 0 && set.CustomersPerMonth > 0 {
		return set.AverageBasket * float64(set.CustomersPerMonth)
	}
	switch set.BusinessType {
	case models.BusinessTypeProduct:
		return set.TargetRevenueProduct
	case models.BusinessTypeService:
		return set.TargetRevenueService
	default:
		return 0
	}
}

func deriveRevenue(s *models.AnswerSet) {
	s.RevenueToUse = RevenueToUse(*s)
	s.RevenuePerDay = s.RevenueToUse / workingDaysPerMonth
	s.HourlyRate = s.RevenuePerDay / hoursPerDay
}

func assign(s *models.AnswerSet, f Field, value any) error {
	switch f.Kind() {
	case KindString:
		v, err := asString(f, value)
		if err != nil {
			return err
		}
		assignString(s, f, v)
	case KindNumber:
		v, err := asNumber(f, value)
		if err != nil {
			return err
		}
		assignNumber(s, f, v)
	case KindInteger:
		v, err := asInteger(f, value)
		if err != nil {
			return err
		}
		assignInteger(s, f, v)
	case KindBool:
		v, err := asBool(f, value)
		if err != nil {
			return err
		}
		assignBool(s, f, v)
	case KindStringList:
		v, err := asStringList(f, value)
		if err != nil {
			return err
		}
		switch f {
		case FieldWhere:
			s.Where = v
		case FieldHighMonths:
			*s = s.SetMonths(models.SeasonHigh, v)
		case FieldLowMonths:
			*s = s.SetMonths(models.SeasonLow, v)
		}
	}
	return nil
}

func assignString(s *models.AnswerSet, f Field, v string) {
	switch f {
	case FieldBusinessName:
		s.BusinessName = v
	case FieldBusinessType:
		s.BusinessType = models.BusinessType(v)
	case FieldActivityCategory:
		s.ActivityCategory = v
	case FieldActivitySubcategory:
		s.ActivitySubcategory = v
	case FieldWhatYouSell:
		s.WhatYouSell = v
	case FieldWhereCity:
		s.WhereCity = v
	case FieldFirstClientsDescription:
		s.FirstClientsDescription = v
	case FieldCompetitiveAdvantage:
		s.CompetitiveAdvantage = v
	case FieldWhyRecommend:
		s.WhyRecommend = v
	case FieldTeamDescription:
		s.TeamDescription = v
	}
}

func assignNumber(s *models.AnswerSet, f Field, v float64) {
	switch f {
	case FieldProductionPercentage:
		s.ProductionPercentage = v
	case FieldSalesPercentage:
		s.SalesPercentage = v
	case FieldAuthorizationCost:
		s.AuthorizationCost = v
	case FieldDesiredSalary:
		s.DesiredSalary = v
	case FieldTargetRevenueProduct:
		s.TargetRevenueProduct = v
	case FieldTargetRevenueService:
		s.TargetRevenueService = v
	case FieldAverageBasket:
		s.AverageBasket = v
	case FieldMonthlyCharges:
		s.MonthlyCharges = v
	case FieldPersonalContribution:
		s.PersonalContribution = v
	case FieldFinancialNeedAtLaunch:
		s.FinancialNeedAtLaunch = v
	}
}

func assignInteger(s *models.AnswerSet, f Field, v int) {
	switch f {
	case FieldNumberOfPartners:
		s.NumberOfPartners = v
	case FieldNumberOfEmployees:
		s.NumberOfEmployees = v
	case FieldAuthorizationDelay:
		s.AuthorizationDelay = v
	case FieldCustomersPerMonth:
		s.CustomersPerMonth = v
	case FieldMonthsToReachSalary:
		s.MonthsToReachSalary = v
	}
}

func assignBool(s *models.AnswerSet, f Field, v bool) {
	switch f {
	case FieldWorkingAlone:
		s.WorkingAlone = v
	case FieldIsSeasonal:
		s.IsSeasonal = v
	case FieldNeedsAuthorizations:
		s.NeedsAuthorizations = v
	case FieldHasAuthorizations:
		s.HasAuthorizations = v
	}
}
