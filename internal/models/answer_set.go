package models

// BusinessType selects which target revenue feeds the derived revenue.
type BusinessType string

const (
	BusinessTypeUnset   BusinessType = ""
	BusinessTypeProduct BusinessType = "product"
	BusinessTypeService BusinessType = "service"
)

// MaxSeasonMonths caps each seasonality set.
const MaxSeasonMonths = 3

// AnswerSet is the full questionnaire record of one session.
type AnswerSet struct {
	// General
	BusinessName        string       `json:"businessName"`
	BusinessType        BusinessType `json:"businessType"`
	ActivityCategory    string       `json:"activityCategory"`
	ActivitySubcategory string       `json:"activitySubcategory"`
	WhatYouSell         string       `json:"whatYouSell"`
	Where               []string     `json:"where"`
	WhereCity           string       `json:"whereCity"`

	// Team
	WorkingAlone      bool `json:"workingAlone"`
	NumberOfPartners  int  `json:"numberOfPartners"`
	NumberOfEmployees int  `json:"numberOfEmployees"`

	// Time allocation, always sums to 100
	ProductionPercentage float64 `json:"productionPercentage"`
	SalesPercentage      float64 `json:"salesPercentage"`

	// Seasonality
	IsSeasonal bool     `json:"isSeasonal"`
	HighMonths []string `json:"highMonths"`
	LowMonths  []string `json:"lowMonths"`

	// Market narrative
	FirstClientsDescription string `json:"firstClientsDescription"`
	CompetitiveAdvantage    string `json:"competitiveAdvantage"`
	WhyRecommend            string `json:"whyRecommend"`
	TeamDescription         string `json:"teamDescription"`

	// Regulatory
	NeedsAuthorizations bool    `json:"needsAuthorizations"`
	HasAuthorizations   bool    `json:"hasAuthorizations"`
	AuthorizationCost   float64 `json:"authorizationCost"`
	AuthorizationDelay  int     `json:"authorizationDelay"`

	// Finance
	DesiredSalary         float64 `json:"desiredSalary"`
	TargetRevenueProduct  float64 `json:"targetRevenueProduct"`
	TargetRevenueService  float64 `json:"targetRevenueService"`
	AverageBasket         float64 `json:"averageBasket"`
	CustomersPerMonth     int     `json:"customersPerMonth"`
	MonthlyCharges        float64 `json:"monthlyCharges"`
	PersonalContribution  float64 `json:"personalContribution"`
	FinancialNeedAtLaunch float64 `json:"financialNeedAtLaunch"`
	MonthsToReachSalary   int     `json:"monthsToReachSalary"`

	// Derived, never authoritative
	RevenueToUse    float64 `json:"revenueToUse"`
	RevenuePerDay   float64 `json:"revenuePerDay"`
	HourlyRate      float64 `json:"hourlyRate"`
	RealisticMonths int     `json:"realisticMonths"`
}

// NewAnswerSet returns the session-start defaults.
func NewAnswerSet() AnswerSet {
	return AnswerSet{
		Where:                []string{},
		HighMonths:           []string{},
		LowMonths:            []string{},
		ProductionPercentage: 50,
		SalesPercentage:      50,
	}
}

// Clone returns a copy that shares no slices with s.
func (s AnswerSet) Clone() AnswerSet {
	out := s
	out.Where = cloneStrings(s.Where)
	out.HighMonths = cloneStrings(s.HighMonths)
	out.LowMonths = cloneStrings(s.LowMonths)
	return out
}

// Season selects one of the two month sets.
type Season int

const (
	SeasonHigh Season = iota
	SeasonLow
)

func (s Season) String() string {
	if s == SeasonLow {
		return "low"
	}
	return "high"
}

// Months returns the month set for season.
func (s AnswerSet) Months(season Season) []string {
	if season == SeasonLow {
		return s.LowMonths
	}
	return s.HighMonths
}

// AddMonth inserts month into the season set. Duplicates and a fourth
// month are ignored. The other season is left alone.
func (s AnswerSet) AddMonth(season Season, month string) AnswerSet {
	out := s.Clone()
	set := out.Months(season)
	if containsString(set, month) || len(set) >= MaxSeasonMonths {
		return out
	}
	out.setMonths(season, append(set, month))
	return out
}

// RemoveMonth drops month from the season set.
func (s AnswerSet) RemoveMonth(season Season, month string) AnswerSet {
	out := s.Clone()
	set := out.Months(season)
	kept := make([]string, 0, len(set))
	for _, m := range set {
		if m != month {
			kept = append(kept, m)
		}
	}
	out.setMonths(season, kept)
	return out
}

// ToggleMonth removes month when present, otherwise adds it.
func (s AnswerSet) ToggleMonth(season Season, month string) AnswerSet {
	if containsString(s.Months(season), month) {
		return s.RemoveMonth(season, month)
	}
	return s.AddMonth(season, month)
}

// SetMonths replaces the season set, keeping the first MaxSeasonMonths
// distinct entries.
func (s AnswerSet) SetMonths(season Season, months []string) AnswerSet {
	out := s.Clone()
	out.setMonths(season, []string{})
	for _, m := range months {
		out = out.AddMonth(season, m)
	}
	return out
}

func (s *AnswerSet) setMonths(season Season, months []string) {
	if season == SeasonLow {
		s.LowMonths = months
		return
	}
	s.HighMonths = months
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// LegacyAnswerSet is the early 12-field questionnaire.
//
// Deprecated: accepted on input only; call Upgrade and work on AnswerSet.
type LegacyAnswerSet struct {
	BusinessName      string  `json:"businessName"`
	BusinessType      string  `json:"businessType"`
	TargetMarket      string  `json:"targetMarket"`
	InitialInvestment float64 `json:"initialInvestment"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	Experience        string  `json:"experience"`
	HasTeam           string  `json:"hasTeam"`
	Location          string  `json:"location"`
	Timeline          string  `json:"timeline"`
	MarketingBudget   float64 `json:"marketingBudget"`
	Competitors       string  `json:"competitors"`
	UniqueValue       string  `json:"uniqueValue"`
}

// Upgrade maps the legacy record onto AnswerSet. The free-text activity
// goes to WhatYouSell and the monthly revenue is stored as both targets,
// since the legacy form never chose a business type. Derived fields are
// left for the caller to recompute.
func (l LegacyAnswerSet) Upgrade() AnswerSet {
	s := NewAnswerSet()
	s.BusinessName = l.BusinessName
	s.WhatYouSell = l.BusinessType
	s.FirstClientsDescription = l.TargetMarket
	s.WhereCity = l.Location
	s.PersonalContribution = l.InitialInvestment
	s.TargetRevenueProduct = l.MonthlyRevenue
	s.TargetRevenueService = l.MonthlyRevenue
	s.CompetitiveAdvantage = l.UniqueValue
	s.WorkingAlone = l.HasTeam == "solo"
	return s
}
