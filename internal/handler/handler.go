// Package handler содержит HTTP-обработчики API системы агроведа.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agroveda/agroveda-system/internal/model"
	"github.com/agroveda/agroveda-system/internal/scan"
)

// Registry определяет контракт реестра покупателей, используемый HTTP-обработчиками.
type Registry interface {
	FindByPhone(phone string) *model.Customer
	Create(phone, name, email string) model.Customer
	ListAll() []model.Customer
}

// Ledger определяет контракт журнала партий, используемый HTTP-обработчиками.
type Ledger interface {
	Add(batch model.Batch)
	SetStatus(id string, status model.BatchStatus, location string)
	Consume(id string, amount decimal.Decimal)
	ListAll() []model.Batch
}

// Resolver определяет контракт интерпретации распознанных кодов.
type Resolver interface {
	Resolve(code string) scan.Resolution
}

// Handler реализует HTTP-обработчики API системы агроведа.
type Handler struct {
	registry Registry
	ledger   Ledger
	resolver Resolver
	logger   *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(registry Registry, ledger Ledger, resolver Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		ledger:   ledger,
		resolver: resolver,
		logger:   logger,
	}
}

type createCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateCustomer регистрирует покупателя. Повторная регистрация того же
// телефона возвращает существующую запись со статусом 200 вместо 201.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Phone) == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	existing := h.registry.FindByPhone(req.Phone)
	customer := h.registry.Create(req.Phone, req.Name, req.Email)

	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}

	writeJSON(w, status, customer)
}

// ListCustomers возвращает всех покупателей в порядке регистрации.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.registry.ListAll()
	if len(customers) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// LookupCustomer ищет покупателя по телефону из query-параметра.
func (h *Handler) LookupCustomer(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	customer := h.registry.FindByPhone(phone)
	if customer == nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// AddBatch добавляет партию в журнал. Если идентификатор не передан,
// он выдаётся сервером.
func (h *Handler) AddBatch(w http.ResponseWriter, r *http.Request) {
	var batch model.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	if batch.Status == "" {
		batch.Status = model.BatchStatusPending
	}
	if !batch.Status.IsValid() {
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	h.ledger.Add(batch)
	writeJSON(w, http.StatusCreated, batch)
}

// ListBatches возвращает все партии в порядке добавления.
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches := h.ledger.ListAll()
	if len(batches) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

type setStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// SetBatchStatus заменяет статус партии и, опционально, её местоположение.
// Журнал не требует прохождения промежуточных этапов; неизвестный
// идентификатор — no-op, ответ в обоих случаях 200.
func (h *Handler) SetBatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.BatchStatus(req.Status)
	if !status.IsValid() {
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		return
	}

	h.ledger.SetStatus(id, status, req.Location)
	w.WriteHeader(http.StatusOK)
}

type consumeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ConsumeBatch списывает количество из остатка партии. Списание большего,
// чем осталось, обнуляет остаток; неизвестный идентификатор — no-op.
func (h *Handler) ConsumeBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req consumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.ledger.Consume(id, req.Amount)
	w.WriteHeader(http.StatusOK)
}

type resolveRequest struct {
	Code string `json:"code"`
}

type resolveResponse struct {
	Type     string          `json:"type"`
	Customer *model.Customer `json:"customer,omitempty"`
	Batch    *model.Batch    `json:"batch,omitempty"`
}

// ResolveScan интерпретирует распознанный сканером код как членский
// идентификатор, телефон или идентификатор партии.
func (h *Handler) ResolveScan(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	res := h.resolver.Resolve(req.Code)
	if !res.Found() {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	resp := resolveResponse{}
	switch {
	case res.Customer != nil:
		resp.Type = "member"
		resp.Customer = res.Customer
	case res.Batch != nil:
		resp.Type = "batch"
		resp.Batch = res.Batch
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
