package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/simulation"
	"github.com/abhisek/aalp/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	ledger     []store.LedgerRecord
	tallies    map[string]store.RuleTally
	maxLevel   int
	narratives []string
}

func (m *mockEventRepo) AppendAttempt(_ context.Context, _ store.AttemptEventData) error { return nil }
func (m *mockEventRepo) AppendHint(_ context.Context, _ store.HintEventData) error       { return nil }
func (m *mockEventRepo) AppendSession(_ context.Context, _ store.SessionEventData) error { return nil }
func (m *mockEventRepo) AppendUnlock(_ context.Context, _ store.UnlockEventData) error   { return nil }
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}

func (m *mockEventRepo) AppendLedger(_ context.Context, data store.LedgerEventData) error {
	m.ledger = append(m.ledger, store.LedgerRecord{LedgerEventData: data})
	return nil
}

func (m *mockEventRepo) ListAttempts(_ context.Context, _ store.QueryOpts) ([]store.AttemptRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) LevelStats(_ context.Context, _ int) (store.LevelStats, error) {
	return store.LevelStats{}, nil
}

func (m *mockEventRepo) RuleStats(_ context.Context) (map[string]store.RuleTally, error) {
	return m.tallies, nil
}

func (m *mockEventRepo) ListLedger(_ context.Context, _ store.QueryOpts) ([]store.LedgerRecord, error) {
	return m.ledger, nil
}

func (m *mockEventRepo) MaxUnlockedLevel(_ context.Context) (int, error) {
	return m.maxLevel, nil
}

func (m *mockEventRepo) RecentNarratives(_ context.Context, _ int) ([]string, error) {
	return m.narratives, nil
}

func (m *mockEventRepo) LLMSpend(_ context.Context) (store.LLMTotals, error) {
	return store.LLMTotals{}, nil
}

func newTestServer(repo *mockEventRepo) *Server {
	return New(repo, simulation.New(repo), narrative.NewGenerator(42))
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestAssertionsFilteredByLevel(t *testing.T) {
	s := newTestServer(&mockEventRepo{})

	rec := doRequest(t, s, http.MethodGet, "/api/assertions?level=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Level   int              `json:"level"`
		Domains []domainGroupDTO `json:"domains"`
	}
	decode(t, rec, &body)
	if body.Level != 1 {
		t.Fatalf("level = %d", body.Level)
	}
	if len(body.Domains) == 0 {
		t.Fatal("no domains at level 1")
	}
	for _, dg := range body.Domains {
		for _, a := range dg.Assertions {
			if a.Level > 1 {
				t.Fatalf("level %d assertion %s leaked into level 1", a.Level, a.Code)
			}
		}
	}
}

func TestAssertionsDefaultsToUnlockedLevel(t *testing.T) {
	s := newTestServer(&mockEventRepo{maxLevel: 2})
	rec := doRequest(t, s, http.MethodGet, "/api/assertions", nil)
	var body struct {
		Level int `json:"level"`
	}
	decode(t, rec, &body)
	if body.Level != 2 {
		t.Fatalf("default level = %d, want 2 from unlock log", body.Level)
	}
}

func TestAssertionsRejectsBadLevel(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	rec := doRequest(t, s, http.MethodGet, "/api/assertions?level=zero", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestClassificationsFilteredByLevel(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	rec := doRequest(t, s, http.MethodGet, "/api/classifications?level=2", nil)
	var body struct {
		Classifications []ruleDTO `json:"classifications"`
	}
	decode(t, rec, &body)
	if len(body.Classifications) == 0 {
		t.Fatal("no classifications at level 2")
	}
	for _, r := range body.Classifications {
		if r.Level > 2 {
			t.Fatalf("level %d rule %s leaked into level 2", r.Level, r.Key)
		}
		if len(r.Required) == 0 {
			t.Fatalf("rule %s without required set", r.Key)
		}
	}
}

func TestNewProblem(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	rec := doRequest(t, s, http.MethodPost, "/api/problems/new?level=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var p problemDTO
	decode(t, rec, &p)
	if p.ID == "" || p.Narrative == "" || p.RuleKey == "" {
		t.Fatalf("problem = %+v", p)
	}
	if p.Level > 1 {
		t.Fatalf("problem level = %d at level 1", p.Level)
	}
}

func TestClassifyCorrectSubmission(t *testing.T) {
	s := newTestServer(&mockEventRepo{})

	req := classifyRequest{
		Expected: "cash-sale",
		Selected: map[string]map[string]string{
			"revenue-earned":         {"amount": "300"},
			"consideration-received": {"amount": "300", "medium": "cash"},
		},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/classify", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body classifyResponse
	decode(t, rec, &body)
	if body.Status != "correct" {
		t.Fatalf("status = %s", body.Status)
	}
	if body.Entry == nil || len(body.Entry.Lines) != 2 {
		t.Fatalf("entry = %+v", body.Entry)
	}
	if body.Entry.Lines[0].Account != "Cash" || body.Entry.Lines[0].Side != "DR" {
		t.Fatalf("first line = %+v", body.Entry.Lines[0])
	}
}

func TestClassifyIncorrectReturnsHints(t *testing.T) {
	s := newTestServer(&mockEventRepo{})

	req := classifyRequest{
		Expected: "cash-sale",
		Selected: map[string]map[string]string{
			"revenue-earned": {"amount": "300"},
		},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/classify", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body classifyResponse
	decode(t, rec, &body)
	if body.Status == "correct" {
		t.Fatal("partial selection classified correct")
	}
	if body.Nearest == nil || body.Nearest.Distance == 0 {
		t.Fatalf("nearest = %+v", body.Nearest)
	}
	if len(body.Hints) == 0 {
		t.Fatal("no hints returned")
	}
}

func TestClassifyUnknownCodeRejected(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	req := classifyRequest{
		Expected: "cash-sale",
		Selected: map[string]map[string]string{"vibes-good": {}},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/classify", req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestClassifyUnknownExpectedKey(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	req := classifyRequest{Expected: "no-such-rule"}
	rec := doRequest(t, s, http.MethodPost, "/api/classify", req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestClassifyMalformedBody(t *testing.T) {
	s := newTestServer(&mockEventRepo{})
	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProgress(t *testing.T) {
	repo := &mockEventRepo{
		maxLevel: 2,
		tallies: map[string]store.RuleTally{
			"cash-sale": {Attempts: 4, Correct: 3},
		},
	}
	s := newTestServer(repo)
	rec := doRequest(t, s, http.MethodGet, "/api/progress", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body progressDTO
	decode(t, rec, &body)
	if body.Level != 2 {
		t.Fatalf("level = %d", body.Level)
	}
	if body.MaxLvl != 3 {
		t.Fatalf("max level = %d", body.MaxLvl)
	}
	if body.Tallies["cash-sale"].Attempts != 4 {
		t.Fatalf("tallies = %v", body.Tallies)
	}
}

func TestBalances(t *testing.T) {
	repo := &mockEventRepo{
		ledger: []store.LedgerRecord{
			{LedgerEventData: store.LedgerEventData{Account: "Cash", Side: "DR", Amount: 250}},
			{LedgerEventData: store.LedgerEventData{Account: "Revenue", Side: "CR", Amount: 250}},
		},
	}
	s := newTestServer(repo)
	rec := doRequest(t, s, http.MethodGet, "/api/balances", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Balances []simulation.Balance `json:"balances"`
	}
	decode(t, rec, &body)
	byAccount := make(map[string]float64)
	for _, b := range body.Balances {
		byAccount[string(b.Account)] = b.Amount
	}
	if byAccount["Cash"] != 250 || byAccount["Revenue"] != 250 {
		t.Fatalf("balances = %v", byAccount)
	}
}
