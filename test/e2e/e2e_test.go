package e2e

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retention-workers/internal/api"
	"retention-workers/internal/assessment"
	"retention-workers/internal/classifier"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/models"
	"retention-workers/internal/roster"

	adr "retention-workers/internal/workers/risk/assess-dropout-risk"
	nst "retention-workers/internal/workers/risk/notify-support-team"
	vsr "retention-workers/internal/workers/risk/validate-student-record"
)

// modelServer answers like the training service: 0.82 for students on
// probation, 0.15 otherwise.
type modelServer struct {
	*httptest.Server
	predictions atomic.Int32
}

func newModelServer(t *testing.T) *modelServer {
	m := &modelServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		m.predictions.Add(1)
		var body struct {
			Record map[string]interface{} `json:"record"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p := 0.15
		if body.Record["probation_status"] == float64(1) {
			p = 0.82
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"probability": p})
	})
	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Close)
	return m
}

type stack struct {
	model   *modelServer
	service *assessment.Service
	router  *gin.Engine
	log     logger.Logger
}

func newStack(t *testing.T) *stack {
	log := logger.NewTestLogger(t)
	model := newModelServer(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	remote := classifier.NewRemote(config.ClassifierConfig{URL: model.URL, Timeout: 2000}, log)
	require.NoError(t, remote.Ready(context.Background()))

	scorer := classifier.NewCached(remote, rdb, time.Hour, log)
	service := assessment.NewService(scorer, nil, log)

	router := api.NewRouter(gin.TestMode, api.Dependencies{
		Service:   service,
		Readiness: remote,
		Logger:    log,
		Version:   "e2e",
	})
	return &stack{model: model, service: service, router: router, log: log}
}

func probationRecord() models.Record {
	r := models.DefaultRecord()
	r.ProbationStatus = true
	r.CurrentCGPA = 2.1
	r.AttendancePercentage = 62
	r.FeePaymentStatus = models.FeesOwing
	return r
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPI_AssessmentFlow(t *testing.T) {
	s := newStack(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = post(t, s.router, "/api/v1/assessments", probationRecord())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Assessment assessment.Assessment `json:"assessment"`
		View       struct {
			Banner      string   `json:"banner"`
			Probability string   `json:"probability"`
			RiskFactors []string `json:"riskFactors"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, assessment.TierHigh, resp.Assessment.Tier)
	assert.Equal(t, "URGENT ACTION REQUIRED", resp.Assessment.Plan.Headline)
	assert.Equal(t, "HIGH RISK", resp.View.Banner)
	assert.Equal(t, "82.0%", resp.View.Probability)
	assert.Contains(t, resp.View.RiskFactors, "On Probation: Critical academic status")
	assert.Contains(t, resp.View.RiskFactors, "Owing Fees: Financial barrier")

	// same record again is served from the score cache
	w = post(t, s.router, "/api/v1/assessments", probationRecord())
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, s.model.predictions.Load())

	w = post(t, s.router, "/api/v1/assessments", models.DefaultRecord())
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, assessment.TierLow, resp.Assessment.Tier)
	assert.EqualValues(t, 2, s.model.predictions.Load())
}

func TestAPI_ModelDown(t *testing.T) {
	s := newStack(t)
	s.model.Close()

	w := post(t, s.router, "/api/v1/assessments", models.DefaultRecord())
	assert.GreaterOrEqual(t, w.Code, http.StatusInternalServerError)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rw := httptest.NewRecorder()
	s.router.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusServiceUnavailable, rw.Code)
}

type fakeSES struct{ sent []*ses.SendEmailInput }

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.sent = append(f.sent, in)
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeSNS struct{ published []*sns.PublishInput }

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.published = append(f.published, in)
	return &sns.PublishOutput{MessageId: aws.String("sms-1")}, nil
}

func rosterColumns(r *models.Record) ([]string, []driver.Value) {
	v := reflect.ValueOf(r).Elem()
	typ := v.Type()
	var cols []string
	var vals []driver.Value
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			vals = append(vals, f.String())
		case reflect.Int:
			vals = append(vals, f.Int())
		default:
			vals = append(vals, f.Interface())
		}
	}
	return cols, vals
}

func toVariables(t *testing.T, v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// TestWorkers_Pipeline drives the three task types in process order:
// validate the roster record, assess it, and alert the support team.
func TestWorkers_Pipeline(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := probationRecord()
	cols, vals := rosterColumns(&stored)
	mock.ExpectQuery(`SELECT .* FROM students WHERE student_id = \$1`).
		WithArgs("STU-2024-0042").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(vals...))

	validator, err := vsr.NewHandler(vsr.HandlerOptions{CustomConfig: vsr.DefaultConfig(), Logger: s.log})
	require.NoError(t, err)
	validated, err := validator.Execute(ctx, &vsr.Input{
		StudentID: "STU-2024-0042",
		Record:    toVariables(t, stored),
	})
	require.NoError(t, err)
	require.True(t, validated.IsValid, "%v", validated.Errors)

	assessor, err := adr.NewHandler(adr.HandlerOptions{
		CustomConfig: adr.DefaultConfig(),
		Roster:       roster.NewRepository(db),
		Service:      s.service,
		Logger:       s.log,
	})
	require.NoError(t, err)
	assessed, err := assessor.Execute(ctx, &adr.Input{StudentID: "STU-2024-0042"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, assessment.TierHigh, assessed.RiskTier)
	assert.True(t, assessed.RequiresIntervention)
	assert.NotEmpty(t, assessed.AssessmentID)

	notifyCfg := nst.DefaultConfig()
	notifyCfg.EmailEnabled = true
	notifyCfg.SMSEnabled = true
	notifyCfg.PhoneNumber = "+2348000000000"
	sesFake, snsFake := &fakeSES{}, &fakeSNS{}

	notifier, err := nst.NewHandler(nst.HandlerOptions{
		CustomConfig: notifyCfg,
		SES:          sesFake,
		SNS:          snsFake,
		Logger:       s.log,
	})
	require.NoError(t, err)
	notified, err := notifier.Execute(ctx, &nst.Input{
		StudentID:    assessed.StudentID,
		AssessmentID: assessed.AssessmentID,
		Assessment:   assessed.Assessment,
	})
	require.NoError(t, err)

	assert.Equal(t, nst.StatusSent, notified.Status)
	assert.ElementsMatch(t, []string{nst.ChannelEmail, nst.ChannelSMS}, notified.Channels)
	require.Len(t, sesFake.sent, 1)
	assert.Contains(t, *sesFake.sent[0].Message.Subject.Data, "STU-2024-0042")
	require.Len(t, snsFake.published, 1)
	assert.Equal(t, "+2348000000000", *snsFake.published[0].PhoneNumber)
}
