package daily_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/entry"
	httpDaily "github.com/javedfarm/dairybook/internal/http/daily"
)

type mirrorStub struct {
	calls int
}

func (m *mirrorStub) Mirror(context.Context) error {
	m.calls++
	return nil
}

type saveFixture struct {
	customerRepo *customer.MockRepository
	entryRepo    *entry.MockRepository
	mirror       *mirrorStub
	router       chi.Router
}

func newSaveFixture(t *testing.T) *saveFixture {
	ctrl := gomock.NewController(t)

	f := &saveFixture{
		customerRepo: customer.NewMockRepository(ctrl),
		entryRepo:    entry.NewMockRepository(ctrl),
		mirror:       &mirrorStub{},
		router:       chi.NewRouter(),
	}

	customerSvc := customer.NewService(f.customerRepo)
	sheetSvc := dailysheet.NewService(customerSvc, entry.NewService(f.entryRepo))

	handler := httpDaily.NewHandler(sheetSvc, customerSvc, f.mirror)
	handler.Routes(f.router)

	return f
}

func (f *saveFixture) save(customerID uuid.UUID, body string) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/2024-03-15/customers/%s", customerID)
	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestSave(t *testing.T) {
	f := newSaveFixture(t)
	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Rate: 5000, Active: true}

	f.customerRepo.EXPECT().
		GetCustomer(gomock.Any(), c.ID).
		Return(c, nil)
	f.entryRepo.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		Return(nil)

	rec := f.save(c.ID, `{"quantity": 2}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, f.mirror.calls)
}

func TestSave_StoreFailureIsInternal(t *testing.T) {
	f := newSaveFixture(t)
	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Rate: 5000, Active: true}

	f.customerRepo.EXPECT().
		GetCustomer(gomock.Any(), c.ID).
		Return(c, nil)
	f.entryRepo.EXPECT().
		UpsertEntry(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("disk full"))

	rec := f.save(c.ID, `{"quantity": 2}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, f.mirror.calls, "failed save must not refresh the mirror")
}

func TestSave_NegativeQuantityIsBadRequest(t *testing.T) {
	f := newSaveFixture(t)
	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Rate: 5000, Active: true}

	f.customerRepo.EXPECT().
		GetCustomer(gomock.Any(), c.ID).
		Return(c, nil)

	rec := f.save(c.ID, `{"quantity": -1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave_UnknownCustomer(t *testing.T) {
	f := newSaveFixture(t)
	id := uuid.New()

	f.customerRepo.EXPECT().
		GetCustomer(gomock.Any(), id).
		Return(nil, customer.ErrNotFound)

	rec := f.save(id, `{"quantity": 2}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
