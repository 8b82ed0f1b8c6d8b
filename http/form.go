package http

import (
	"net/url"
	"strconv"
	"strings"

	"loanrisk/applicant"
)

// parseApplicantForm reads the submitted form. Numbers that fail to parse keep
// their default value; every failure is reported in the returned ValidationErrors.
func parseApplicantForm(values url.Values) (applicant.Form, applicant.ValidationErrors) {
	form := applicant.DefaultForm()
	errs := applicant.ValidationErrors{}

	intField := func(name string, dst *int) {
		raw := strings.TrimSpace(values.Get(name))
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs[name] = "must be a whole number"
			return
		}
		*dst = v
	}
	floatField := func(name string, dst *float64) {
		raw := strings.TrimSpace(values.Get(name))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs[name] = "must be a number"
			return
		}
		*dst = v
	}
	enumField := func(name string, parse func(string) error) {
		if err := parse(values.Get(name)); err != nil {
			errs[name] = err.Error()
		}
	}

	intField(applicant.ColLoanNumber, &form.LoanNumber)
	floatField(applicant.ColLoanAmount, &form.LoanAmount)
	floatField(applicant.ColLoanTotalDue, &form.LoanTotalDue)
	floatField(applicant.ColOnTimeRatio, &form.OnTimeRatio)
	intField(applicant.ColAvgLoanTermDays, &form.AvgLoanTermDays)
	intField(applicant.ColCreditScore, &form.CreditScore)
	intField(applicant.ColAge, &form.Age)

	enumField(applicant.ColBankAccountType, func(s string) (err error) {
		form.BankAccountType, err = applicant.ParseBankAccountType(s)
		return err
	})
	enumField(applicant.ColBankName, func(s string) (err error) {
		form.BankName, err = applicant.ParseBankName(s)
		return err
	})
	enumField(applicant.ColEmploymentStatus, func(s string) (err error) {
		form.EmploymentStatus, err = applicant.ParseEmploymentStatus(s)
		return err
	})
	enumField(applicant.ColEducationLevel, func(s string) (err error) {
		form.EducationLevel, err = applicant.ParseEducationLevel(s)
		return err
	})
	enumField(applicant.ColState, func(s string) (err error) {
		form.State, err = applicant.ParseState(s)
		return err
	})

	if len(errs) == 0 {
		return form, nil
	}
	return form, errs
}
