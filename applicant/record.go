// Package applicant defines the loan-applicant record submitted for one prediction.
package applicant

import (
	"errors"
	"fmt"
)

// Column names, in the order the record presents them.
const (
	ColLoanNumber       = "loan_number"
	ColLoanAmount       = "loan_amount"
	ColLoanTotalDue     = "loan_total_due"
	ColBankAccountType  = "bank_account_type"
	ColBankName         = "bank_name_clients"
	ColEmploymentStatus = "employment_status_clients"
	ColEducationLevel   = "level_of_education_clients"
	ColOnTimeRatio      = "on_time_ratio"
	ColAvgLoanTermDays  = "avg_loan_term_days"
	ColCreditScore      = "credit_score"
	ColAge              = "age"
	ColState            = "state"
	ColLoanToDueRatio   = "loan_to_due_ratio"
)

// ErrDivision is returned when loan_total_due is zero and the ratio cannot be derived.
var ErrDivision = errors.New("division by zero")

// Form carries the twelve raw inputs collected from the applicant form.
type Form struct {
	LoanNumber       int              `json:"loan_number"`
	LoanAmount       float64          `json:"loan_amount"`
	LoanTotalDue     float64          `json:"loan_total_due"`
	BankAccountType  BankAccountType  `json:"bank_account_type"`
	BankName         BankName         `json:"bank_name_clients"`
	EmploymentStatus EmploymentStatus `json:"employment_status_clients"`
	EducationLevel   EducationLevel   `json:"level_of_education_clients"`
	OnTimeRatio      float64          `json:"on_time_ratio"`
	AvgLoanTermDays  int              `json:"avg_loan_term_days"`
	CreditScore      int              `json:"credit_score"`
	Age              int              `json:"age"`
	State            State            `json:"state"`
}

// Record is the assembled single-row input for the model. It can only be
// built by Assemble, so the derived ratio always matches the source fields.
type Record struct {
	form  Form
	ratio float64
}

// Field is one named column of a Record. Categorical fields carry Text,
// numeric fields carry Number.
type Field struct {
	Name        string
	Categorical bool
	Number      float64
	Text        string
}

// Assemble derives loan_to_due_ratio and freezes the form into a Record.
func Assemble(form Form) (Record, error) {
	if form.LoanTotalDue == 0 {
		return Record{}, fmt.Errorf("loan_to_due_ratio: loan_total_due is zero: %w", ErrDivision)
	}
	return Record{
		form:  form,
		ratio: form.LoanAmount / form.LoanTotalDue,
	}, nil
}

// Form returns a copy of the raw inputs the record was built from.
func (r Record) Form() Form { return r.form }

func (r Record) LoanToDueRatio() float64 { return r.ratio }

// Columns returns the 13 fields of the record, the derived ratio last.
func (r Record) Columns() []Field {
	f := r.form
	return []Field{
		{Name: ColLoanNumber, Number: float64(f.LoanNumber)},
		{Name: ColLoanAmount, Number: f.LoanAmount},
		{Name: ColLoanTotalDue, Number: f.LoanTotalDue},
		{Name: ColBankAccountType, Categorical: true, Text: f.BankAccountType.String()},
		{Name: ColBankName, Categorical: true, Text: f.BankName.String()},
		{Name: ColEmploymentStatus, Categorical: true, Text: f.EmploymentStatus.String()},
		{Name: ColEducationLevel, Categorical: true, Text: f.EducationLevel.String()},
		{Name: ColOnTimeRatio, Number: f.OnTimeRatio},
		{Name: ColAvgLoanTermDays, Number: float64(f.AvgLoanTermDays)},
		{Name: ColCreditScore, Number: float64(f.CreditScore)},
		{Name: ColAge, Number: float64(f.Age)},
		{Name: ColState, Categorical: true, Text: f.State.String()},
		{Name: ColLoanToDueRatio, Number: r.ratio},
	}
}

// ColumnNames lists the record's column names in order.
func ColumnNames() []string {
	return []string{
		ColLoanNumber,
		ColLoanAmount,
		ColLoanTotalDue,
		ColBankAccountType,
		ColBankName,
		ColEmploymentStatus,
		ColEducationLevel,
		ColOnTimeRatio,
		ColAvgLoanTermDays,
		ColCreditScore,
		ColAge,
		ColState,
		ColLoanToDueRatio,
	}
}
