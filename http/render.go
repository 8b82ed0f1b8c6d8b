package http

import (
	"embed"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loanrisk/applicant"
	"loanrisk/risk"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type option struct {
	Value    string
	Selected bool
}

type inputField struct {
	Name   string
	Label  string
	Value  string
	Min    string
	Max    string
	Step   string
	Slider bool
	Error  string
}

type selectField struct {
	Name    string
	Label   string
	Options []option
	Error   string
}

type section struct {
	Title   string
	Inputs  []inputField
	Selects []selectField
}

type resultView struct {
	Repay    bool
	Icon     string
	Headline string
	Detail   string
	Amount   string
	TotalDue string
	Ratio    string
}

type pageData struct {
	Sections []section
	Result   *resultView
	Error    string
}

func newPageData(form applicant.Form, errs applicant.ValidationErrors) pageData {
	input := func(name, label string, value float64, slider bool) inputField {
		r := applicant.Limits[name]
		return inputField{
			Name:   name,
			Label:  label,
			Value:  formatPlain(value),
			Min:    formatPlain(r.Min),
			Max:    formatPlain(r.Max),
			Step:   formatPlain(r.Step),
			Slider: slider,
			Error:  errs[name],
		}
	}
	sel := func(name, label string, values []string, selected string) selectField {
		opts := make([]option, len(values))
		for i, v := range values {
			opts[i] = option{Value: v, Selected: v == selected}
		}
		return selectField{Name: name, Label: label, Options: opts, Error: errs[name]}
	}

	return pageData{Sections: []section{
		{
			Title: "💳 Loan Information",
			Inputs: []inputField{
				input(applicant.ColLoanNumber, "Number of Loans Taken", float64(form.LoanNumber), false),
				input(applicant.ColLoanAmount, "Loan Amount (₦)", form.LoanAmount, false),
				input(applicant.ColLoanTotalDue, "Total Loan Due (₦)", form.LoanTotalDue, false),
			},
			Selects: []selectField{
				sel(applicant.ColBankAccountType, "Bank Account Type", names(applicant.BankAccountTypes()), form.BankAccountType.String()),
				sel(applicant.ColBankName, "Bank Name", names(applicant.BankNames()), form.BankName.String()),
			},
		},
		{
			Title: "👔 Employment & Education",
			Selects: []selectField{
				sel(applicant.ColEmploymentStatus, "Employment Status", names(applicant.EmploymentStatuses()), form.EmploymentStatus.String()),
				sel(applicant.ColEducationLevel, "Level of Education", names(applicant.EducationLevels()), form.EducationLevel.String()),
			},
		},
		{
			Title: "📊 Credit & Repayment Behavior",
			Inputs: []inputField{
				input(applicant.ColOnTimeRatio, "On-time Repayment Ratio (0-1)", form.OnTimeRatio, true),
				input(applicant.ColAvgLoanTermDays, "Average Loan Term (days)", float64(form.AvgLoanTermDays), false),
				input(applicant.ColCreditScore, "Credit Score (0-100)", float64(form.CreditScore), false),
			},
		},
		{
			Title: "👤 Personal Information",
			Inputs: []inputField{
				input(applicant.ColAge, "Age", float64(form.Age), true),
			},
			Selects: []selectField{
				sel(applicant.ColState, "State of Residence", names(applicant.States()), form.State.String()),
			},
		},
	}}
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func names[T interface{ String() string }](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func newResultView(res risk.Result) *resultView {
	p := message.NewPrinter(language.English)
	form := res.Record.Form()
	return &resultView{
		Repay:    bool(res.Outcome),
		Icon:     res.Outcome.Icon(),
		Headline: res.Outcome.Headline(),
		Detail:   res.Outcome.Detail(),
		Amount:   formatNaira(p, form.LoanAmount),
		TotalDue: formatNaira(p, form.LoanTotalDue),
		Ratio:    p.Sprintf("%.4f", res.Record.LoanToDueRatio()),
	}
}

// formatNaira groups digits, dropping the fraction for whole amounts.
func formatNaira(p *message.Printer, amount float64) string {
	if amount == math.Trunc(amount) {
		return p.Sprintf("₦%d", int64(amount))
	}
	return p.Sprintf("₦%.2f", amount)
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTemplate.Execute(w, data)
}
