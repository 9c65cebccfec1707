package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agroveda/agroveda-system/internal/model"
	"github.com/agroveda/agroveda-system/internal/scan"
)

type stubRegistry struct {
	findResp   *model.Customer
	createResp model.Customer
	listResp   []model.Customer

	createdPhone string
}

func (s *stubRegistry) FindByPhone(phone string) *model.Customer {
	return s.findResp
}

func (s *stubRegistry) Create(phone, name, email string) model.Customer {
	s.createdPhone = phone
	return s.createResp
}

func (s *stubRegistry) ListAll() []model.Customer {
	return s.listResp
}

type stubLedger struct {
	listResp []model.Batch

	added         []model.Batch
	setStatusID   string
	setStatus     model.BatchStatus
	setLocation   string
	consumedID    string
	consumedValue decimal.Decimal
}

func (s *stubLedger) Add(batch model.Batch) {
	s.added = append(s.added, batch)
}

func (s *stubLedger) SetStatus(id string, status model.BatchStatus, location string) {
	s.setStatusID = id
	s.setStatus = status
	s.setLocation = location
}

func (s *stubLedger) Consume(id string, amount decimal.Decimal) {
	s.consumedID = id
	s.consumedValue = amount
}

func (s *stubLedger) ListAll() []model.Batch {
	return s.listResp
}

type stubResolver struct {
	resp scan.Resolution
}

func (s *stubResolver) Resolve(code string) scan.Resolution {
	return s.resp
}

func newTestHandler(t *testing.T, reg Registry, led Ledger, res Resolver) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return NewHandler(reg, led, res, logger)
}

func serve(t *testing.T, h *Handler, method, target string, body []byte) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()

	h.SetupRouter().ServeHTTP(rec, req)
	return rec.Result()
}

func TestCreateCustomer_New(t *testing.T) {
	reg := &stubRegistry{
		createResp: model.Customer{Phone: "+91 98765-43210", MemberID: "AGV-543210", Name: "Asha"},
	}
	h := newTestHandler(t, reg, &stubLedger{}, &stubResolver{})

	body, _ := json.Marshal(createCustomerRequest{Phone: "+91 98765-43210", Name: "Asha"})
	res := serve(t, h, http.MethodPost, "/api/customers", body)

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var got model.Customer
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MemberID != "AGV-543210" {
		t.Fatalf("MemberID = %q, want AGV-543210", got.MemberID)
	}
}

func TestCreateCustomer_ExistingReturnsOK(t *testing.T) {
	existing := model.Customer{Phone: "+91 98765-43210", MemberID: "AGV-543210", Name: "Asha"}
	reg := &stubRegistry{
		findResp:   &existing,
		createResp: existing,
	}
	h := newTestHandler(t, reg, &stubLedger{}, &stubResolver{})

	body, _ := json.Marshal(createCustomerRequest{Phone: "+91 98765-43210", Name: "Someone Else"})
	res := serve(t, h, http.MethodPost, "/api/customers", body)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
}

func TestCreateCustomer_BlankPhone(t *testing.T) {
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, &stubResolver{})

	body, _ := json.Marshal(createCustomerRequest{Phone: "   "})
	res := serve(t, h, http.MethodPost, "/api/customers", body)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestListCustomers_NoContent(t *testing.T) {
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, &stubResolver{})

	res := serve(t, h, http.MethodGet, "/api/customers", nil)

	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNoContent)
	}
}

func TestLookupCustomer_NotFound(t *testing.T) {
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, &stubResolver{})

	res := serve(t, h, http.MethodGet, "/api/customers/lookup?phone=000", nil)

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}

func TestAddBatch_IssuesID(t *testing.T) {
	led := &stubLedger{}
	h := newTestHandler(t, &stubRegistry{}, led, &stubResolver{})

	body := []byte(`{"name":"Alphonso Mango","quantity":"500","unit":"kg"}`)
	res := serve(t, h, http.MethodPost, "/api/batches", body)

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}
	if len(led.added) != 1 {
		t.Fatalf("added %d batches, want 1", len(led.added))
	}
	if led.added[0].ID == "" {
		t.Fatalf("handler must issue an id when the caller omits it")
	}
	if led.added[0].Status != model.BatchStatusPending {
		t.Fatalf("default status = %q, want Pending", led.added[0].Status)
	}
}

func TestAddBatch_UnknownStatus(t *testing.T) {
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, &stubResolver{})

	body := []byte(`{"id":"1","status":"Teleported"}`)
	res := serve(t, h, http.MethodPost, "/api/batches", body)

	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestSetBatchStatus(t *testing.T) {
	led := &stubLedger{}
	h := newTestHandler(t, &stubRegistry{}, led, &stubResolver{})

	body, _ := json.Marshal(setStatusRequest{Status: "Retail", Location: "Pune Retail Hub"})
	res := serve(t, h, http.MethodPost, "/api/batches/2/status", body)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if led.setStatusID != "2" || led.setStatus != model.BatchStatusRetail {
		t.Fatalf("SetStatus(%q, %q), want (2, Retail)", led.setStatusID, led.setStatus)
	}
	if led.setLocation != "Pune Retail Hub" {
		t.Fatalf("location = %q, want Pune Retail Hub", led.setLocation)
	}
}

func TestConsumeBatch(t *testing.T) {
	led := &stubLedger{}
	h := newTestHandler(t, &stubRegistry{}, led, &stubResolver{})

	body := []byte(`{"amount":"700"}`)
	res := serve(t, h, http.MethodPost, "/api/batches/1/consume", body)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if led.consumedID != "1" || !led.consumedValue.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("Consume(%q, %v), want (1, 700)", led.consumedID, led.consumedValue)
	}
}

func TestResolveScan_Member(t *testing.T) {
	resolver := &stubResolver{
		resp: scan.Resolution{
			Customer: &model.Customer{Phone: "+91 98765-43210", MemberID: "AGV-543210"},
		},
	}
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, resolver)

	body, _ := json.Marshal(resolveRequest{Code: "AGV-543210"})
	res := serve(t, h, http.MethodPost, "/api/scan/resolve", body)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var got resolveResponse
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Type != "member" || got.Customer == nil {
		t.Fatalf("resolve response = %+v, want member", got)
	}
}

func TestResolveScan_NotFound(t *testing.T) {
	h := newTestHandler(t, &stubRegistry{}, &stubLedger{}, &stubResolver{})

	body, _ := json.Marshal(resolveRequest{Code: "nobody"})
	res := serve(t, h, http.MethodPost, "/api/scan/resolve", body)

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
}
