package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/models"
)

func TestGetSyncStatus(t *testing.T) {
	th := newTestHandler(t, false)
	th.endpoint.EXPECT().GetIsNeedSync(gomock.Any(), testBook).Return(models.SyncStatus{PendingStashes: 2}, nil)

	rec := th.do(http.MethodGet, "/api/books/"+testBook+"/sync", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending_stashes":2,"pending_assets":0,"need_sync":true}`, rec.Body.String())
}

func TestSync_Schedules(t *testing.T) {
	th := newTestHandler(t, false)
	th.endpoint.EXPECT().ToSync(testBook).Return(finishedRun{})

	rec := th.do(http.MethodPost, "/api/books/"+testBook+"/sync", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSync_WaitReportsStatus(t *testing.T) {
	th := newTestHandler(t, false)
	gomock.InOrder(
		th.endpoint.EXPECT().ToSync(testBook).Return(finishedRun{}),
		th.endpoint.EXPECT().GetIsNeedSync(gomock.Any(), testBook).Return(models.SyncStatus{}, nil),
	)

	rec := th.do(http.MethodPost, "/api/books/"+testBook+"/sync?wait=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending_stashes":0,"pending_assets":0,"need_sync":false}`, rec.Body.String())
}

func TestSync_WaitReportsRunError(t *testing.T) {
	th := newTestHandler(t, false)
	th.endpoint.EXPECT().ToSync(testBook).Return(finishedRun{err: service.ErrSyncLockTimeout})

	rec := th.do(http.MethodPost, "/api/books/"+testBook+"/sync?wait=1", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelSync(t *testing.T) {
	th := newTestHandler(t, false)
	th.endpoint.EXPECT().CancelSync(testBook)

	rec := th.do(http.MethodDelete, "/api/books/"+testBook+"/sync", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
