package risk

// Outcome is true when the applicant is predicted to repay.
type Outcome bool

const (
	Repay   Outcome = true
	Default Outcome = false
)

const (
	repayHeadline   = "Likely to Repay"
	repayDetail     = "This customer is predicted to repay the loan on time."
	defaultHeadline = "Likely to Default"
	defaultDetail   = "This customer may fail to repay the loan."
)

func (o Outcome) Verdict() string {
	if o {
		return "repay"
	}
	return "default"
}

// Icon is the emoji shown before the headline.
func (o Outcome) Icon() string {
	if o {
		return "✅"
	}
	return "⚠️"
}

func (o Outcome) Headline() string {
	if o {
		return repayHeadline
	}
	return defaultHeadline
}

func (o Outcome) Detail() string {
	if o {
		return repayDetail
	}
	return defaultDetail
}

// Message is the full text shown to the user.
func (o Outcome) Message() string {
	return o.Icon() + " " + o.Headline() + ": " + o.Detail()
}
