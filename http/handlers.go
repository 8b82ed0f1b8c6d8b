package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"loanrisk/applicant"
	"loanrisk/ml"
	"loanrisk/risk"
)

// Predictor is the prediction operation the routes depend on.
type Predictor interface {
	Evaluate(form applicant.Form) (risk.Result, error)
}

type Handler struct {
	predictor Predictor
	log       *zap.Logger
	metrics   *Metrics
}

func NewHandler(predictor Predictor, log *zap.Logger, metrics *Metrics) *Handler {
	return &Handler{predictor: predictor, log: log, metrics: metrics}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleFormPage)
	r.Post("/predict", h.handleFormPredict)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)
		r.Get("/options", handleOptions)
		r.Post("/predict", h.handleAPIPredict)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type optionsResponse struct {
	BankAccountTypes   []string                   `json:"bank_account_type"`
	BankNames          []string                   `json:"bank_name_clients"`
	EmploymentStatuses []string                   `json:"employment_status_clients"`
	EducationLevels    []string                   `json:"level_of_education_clients"`
	States             []string                   `json:"state"`
	Limits             map[string]applicant.Range `json:"limits"`
	Defaults           applicant.Form             `json:"defaults"`
}

func handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		BankAccountTypes:   names(applicant.BankAccountTypes()),
		BankNames:          names(applicant.BankNames()),
		EmploymentStatuses: names(applicant.EmploymentStatuses()),
		EducationLevels:    names(applicant.EducationLevels()),
		States:             names(applicant.States()),
		Limits:             applicant.Limits,
		Defaults:           applicant.DefaultForm(),
	})
}

func (h *Handler) handleFormPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, newPageData(applicant.DefaultForm(), nil))
}

func (h *Handler) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.metrics.IncrementError("validation")
		status, msg := http.StatusBadRequest, "The form could not be read. Please submit it again."
		if isTooLarge(err) {
			status, msg = http.StatusRequestEntityTooLarge, "The form submission is too large."
		}
		renderPage(w, status, pageData{
			Sections: newPageData(applicant.DefaultForm(), nil).Sections,
			Error:    msg,
		})
		return
	}

	form, errs := parseApplicantForm(r.PostForm)
	errs = mergeValidationErrors(errs, asValidationErrors(form.Validate()))
	if len(errs) > 0 {
		h.metrics.IncrementError("validation")
		page := newPageData(form, errs)
		page.Error = "Please correct the highlighted fields."
		renderPage(w, http.StatusUnprocessableEntity, page)
		return
	}

	page := newPageData(form, nil)
	res, err := h.predictor.Evaluate(form)
	if err != nil {
		status, msg := h.failure(r, err)
		page.Error = msg
		renderPage(w, status, page)
		return
	}

	h.metrics.IncrementPrediction(res.Outcome.Verdict())
	page.Result = newResultView(res)
	renderPage(w, http.StatusOK, page)
}

type predictResponse struct {
	Repay          bool    `json:"repay"`
	Verdict        string  `json:"verdict"`
	Message        string  `json:"message"`
	LoanToDueRatio float64 `json:"loan_to_due_ratio"`
}

type errorResponse struct {
	Error  string                     `json:"error"`
	Fields applicant.ValidationErrors `json:"fields,omitempty"`
}

func (h *Handler) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	var form applicant.Form
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		h.metrics.IncrementError("validation")
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if errs := asValidationErrors(form.Validate()); len(errs) > 0 {
		h.metrics.IncrementError("validation")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid applicant form", Fields: errs})
		return
	}

	res, err := h.predictor.Evaluate(form)
	if err != nil {
		status, msg := h.failure(r, err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	h.metrics.IncrementPrediction(res.Outcome.Verdict())
	writeJSON(w, http.StatusOK, predictResponse{
		Repay:          bool(res.Outcome),
		Verdict:        res.Outcome.Verdict(),
		Message:        res.Outcome.Message(),
		LoanToDueRatio: res.Record.LoanToDueRatio(),
	})
}

// failure maps a prediction error to a status and the message shown to the user.
func (h *Handler) failure(r *http.Request, err error) (int, string) {
	var (
		kind   string
		status int
		msg    string
	)
	switch {
	case errors.Is(err, applicant.ErrDivision):
		kind, status = "division", http.StatusUnprocessableEntity
		msg = "Total loan due must be greater than zero."
	case errors.Is(err, ml.ErrSchema):
		kind, status = "schema", http.StatusInternalServerError
		msg = "The prediction model does not accept this applicant record: " + err.Error()
	default:
		kind, status = "internal", http.StatusInternalServerError
		msg = "Prediction failed. Please try again later."
	}

	h.metrics.IncrementError(kind)
	fields := []zap.Field{
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if start := GetStartTime(r.Context()); !start.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	}
	h.log.Error("prediction failed", fields...)
	return status, msg
}

func asValidationErrors(err error) applicant.ValidationErrors {
	var errs applicant.ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

// mergeValidationErrors adds range errors to parse errors. A field that failed
// to parse keeps its parse message.
func mergeValidationErrors(parsed, validated applicant.ValidationErrors) applicant.ValidationErrors {
	if len(parsed) == 0 {
		return validated
	}
	for name, msg := range validated {
		if _, ok := parsed[name]; !ok {
			parsed[name] = msg
		}
	}
	return parsed
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
