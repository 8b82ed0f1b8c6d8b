package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanrisk/applicant"
	"loanrisk/ml"
	"loanrisk/risk"
)

type fakePredictor struct {
	outcome risk.Outcome
	err     error
	calls   int
}

func (f *fakePredictor) Evaluate(form applicant.Form) (risk.Result, error) {
	f.calls++
	if f.err != nil {
		return risk.Result{}, f.err
	}
	rec, err := applicant.Assemble(form)
	if err != nil {
		return risk.Result{}, err
	}
	return risk.Result{Outcome: f.outcome, Record: rec}, nil
}

func newTestRouter(t *testing.T, predictor Predictor) (http.Handler, *Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	return NewRouter(ServerConfig{}, Deps{Predictor: predictor, Metrics: metrics, Gatherer: reg}), metrics, reg
}

func formValues(mutate func(url.Values)) url.Values {
	v := url.Values{
		"loan_number":                {"20"},
		"loan_amount":                {"50000"},
		"loan_total_due":             {"50000"},
		"bank_account_type":          {"Savings"},
		"bank_name_clients":          {"Zenith Bank"},
		"employment_status_clients":  {"Permanent"},
		"level_of_education_clients": {"Graduate"},
		"on_time_ratio":              {"0.5"},
		"avg_loan_term_days":         {"60"},
		"credit_score":               {"50"},
		"age":                        {"50"},
		"state":                      {"Lagos"},
	}
	if mutate != nil {
		mutate(v)
	}
	return v
}

func postForm(router http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFormPage(t *testing.T) {
	router, _, _ := newTestRouter(t, &fakePredictor{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Predict Loan Default Risk")
	assert.Contains(t, body, `name="loan_amount"`)
	assert.Contains(t, body, `max="1000000"`)
	assert.Contains(t, body, "Abuja Federal Capital Territory")
	assert.NotContains(t, body, "success-box\"")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestFormPredictRendersOutcome(t *testing.T) {
	cases := []struct {
		outcome risk.Outcome
		box     string
		text    string
	}{
		{risk.Repay, `class="success-box"`, "This customer is predicted to repay the loan on time."},
		{risk.Default, `class="error-box"`, "This customer may fail to repay the loan."},
	}
	for _, tc := range cases {
		t.Run(tc.outcome.Verdict(), func(t *testing.T) {
			router, metrics, _ := newTestRouter(t, &fakePredictor{outcome: tc.outcome})
			w := postForm(router, formValues(func(v url.Values) {
				v.Set("loan_amount", "20000")
				v.Set("loan_total_due", "80000")
			}))

			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tc.box)
			assert.Contains(t, body, tc.text)
			assert.Contains(t, body, "₦20,000")
			assert.Contains(t, body, "₦80,000")
			assert.Contains(t, body, "0.2500")
			// submitted values are kept in the form
			assert.Contains(t, body, `<option value="Zenith Bank" selected>`)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues(tc.outcome.Verdict())))
		})
	}
}

func TestFormPredictValidation(t *testing.T) {
	predictor := &fakePredictor{outcome: risk.Repay}
	router, metrics, _ := newTestRouter(t, predictor)

	w := postForm(router, formValues(func(v url.Values) {
		v.Set("loan_number", "61")
		v.Set("age", "abc")
		v.Set("state", "Atlantis")
	}))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please correct the highlighted fields.")
	assert.Contains(t, body, "must be a whole number")
	assert.Contains(t, body, "unknown state")
	// range errors are reported alongside parse errors in the same response
	assert.Contains(t, body, "must be between 1 and 60")
	assert.NotContains(t, body, "select a state")
	assert.Zero(t, predictor.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PredictionErrors.WithLabelValues("validation")))
}

func TestFormPredictRangeValidation(t *testing.T) {
	predictor := &fakePredictor{outcome: risk.Repay}
	router, _, _ := newTestRouter(t, predictor)

	w := postForm(router, formValues(func(v url.Values) { v.Set("loan_number", "61") }))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must be between 1 and 60")
	assert.Zero(t, predictor.calls)
}

func TestPredictErrorsAreShown(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		text   string
		kind   string
	}{
		{"division", applicant.ErrDivision, http.StatusUnprocessableEntity, "Total loan due must be greater than zero.", "division"},
		{"schema", &ml.SchemaError{Column: "state", Reason: "unknown category"}, http.StatusInternalServerError, "does not accept this applicant record", "schema"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "Prediction failed.", "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, metrics, _ := newTestRouter(t, &fakePredictor{err: tc.err})
			w := postForm(router, formValues(nil))

			require.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.text)
			assert.Contains(t, w.Body.String(), `class="error-box" role="alert"`)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PredictionErrors.WithLabelValues(tc.kind)))
		})
	}
}

func TestAPIPredictWithLoadedModel(t *testing.T) {
	model, err := ml.LoadModel(filepath.Join("..", "models", "loandefault.json"))
	require.NoError(t, err)
	predictor, err := risk.NewPredictor(model)
	require.NoError(t, err)
	router, _, _ := newTestRouter(t, predictor)

	body := `{
		"loan_number": 20, "loan_amount": 50000, "loan_total_due": 50000,
		"bank_account_type": "Savings", "bank_name_clients": "Access Bank",
		"employment_status_clients": "Contract", "level_of_education_clients": "None",
		"on_time_ratio": 0.5, "avg_loan_term_days": 60, "credit_score": 50, "age": 50,
		"state": "Abia"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp predictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Repay)
	assert.Equal(t, "repay", resp.Verdict)
	assert.Equal(t, risk.Repay.Message(), resp.Message)
	assert.Equal(t, 1.0, resp.LoanToDueRatio)
}

func TestAPIPredictRejectsBadInput(t *testing.T) {
	predictor := &fakePredictor{outcome: risk.Repay}
	router, _, _ := newTestRouter(t, predictor)

	cases := map[string]struct {
		body   string
		status int
	}{
		"malformed":     {`{"loan_number":`, http.StatusBadRequest},
		"unknown field": {`{"income": 10}`, http.StatusBadRequest},
		"unknown enum":  {`{"state": "Atlantis"}`, http.StatusBadRequest},
		"out of range":  {`{"loan_number": 0}`, http.StatusUnprocessableEntity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
	assert.Zero(t, predictor.calls)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t, &fakePredictor{outcome: risk.Default})
	postForm(router, formValues(nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `loanrisk_predictions_total{verdict="default"} 1`)
	assert.Contains(t, w.Body.String(), `loanrisk_http_request_duration_seconds_count{code="200",route="/predict"} 1`)
}

func TestPredictBodyTooLarge(t *testing.T) {
	predictor := &fakePredictor{outcome: risk.Repay}
	router := NewRouter(ServerConfig{MaxBodyBytes: 16}, Deps{Predictor: predictor})

	t.Run("form", func(t *testing.T) {
		w := postForm(router, formValues(nil))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "too large")
	})
	t.Run("api", func(t *testing.T) {
		body := `{"loan_number": 20, "loan_amount": 50000, "loan_total_due": 50000}`
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "request body too large", resp.Error)
	})
	assert.Zero(t, predictor.calls)
}
