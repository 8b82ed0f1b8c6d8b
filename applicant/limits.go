package applicant

import (
	"sort"
	"strconv"
	"strings"
)

// Range is an inclusive bound used by the form widgets.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

func (r Range) contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) String() string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + " and " + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// Limits are presentation-layer guardrails. Nothing guarantees the model was
// trained on data inside these bounds.
var Limits = map[string]Range{
	ColLoanNumber:      {Min: 1, Max: 60, Step: 1},
	ColLoanAmount:      {Min: 5000, Max: 1_000_000, Step: 1000},
	ColLoanTotalDue:    {Min: 5000, Max: 1_000_000, Step: 1000},
	ColOnTimeRatio:     {Min: 0, Max: 1, Step: 0.01},
	ColAvgLoanTermDays: {Min: 10, Max: 100, Step: 1},
	ColCreditScore:     {Min: 0, Max: 100, Step: 1},
	ColAge:             {Min: 18, Max: 100, Step: 1},
}

// DefaultForm returns the values the form starts with.
func DefaultForm() Form {
	return Form{
		LoanNumber:       20,
		LoanAmount:       50_000,
		LoanTotalDue:     50_000,
		BankAccountType:  AccountSavings,
		BankName:         BankAccess,
		EmploymentStatus: EmploymentContract,
		EducationLevel:   EducationNone,
		OnTimeRatio:      0.5,
		AvgLoanTermDays:  60,
		CreditScore:      50,
		Age:              50,
		State:            StateAbia,
	}
}

// ValidationErrors maps a column name to what is wrong with its value.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k]
	}
	return "invalid applicant form: " + strings.Join(parts, "; ")
}

// Validate checks every field against Limits and the enum variants.
// It returns nil or a ValidationErrors.
func (f Form) Validate() error {
	errs := ValidationErrors{}
	numbers := map[string]float64{
		ColLoanNumber:      float64(f.LoanNumber),
		ColLoanAmount:      f.LoanAmount,
		ColLoanTotalDue:    f.LoanTotalDue,
		ColOnTimeRatio:     f.OnTimeRatio,
		ColAvgLoanTermDays: float64(f.AvgLoanTermDays),
		ColCreditScore:     float64(f.CreditScore),
		ColAge:             float64(f.Age),
	}
	for name, v := range numbers {
		r := Limits[name]
		if !r.contains(v) {
			errs[name] = "must be between " + r.String()
		}
	}
	if !f.BankAccountType.Valid() {
		errs[ColBankAccountType] = "select an account type"
	}
	if !f.BankName.Valid() {
		errs[ColBankName] = "select a bank"
	}
	if !f.EmploymentStatus.Valid() {
		errs[ColEmploymentStatus] = "select an employment status"
	}
	if !f.EducationLevel.Valid() {
		errs[ColEducationLevel] = "select a level of education"
	}
	if !f.State.Valid() {
		errs[ColState] = "select a state"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
