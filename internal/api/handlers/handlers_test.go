package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/api/middleware"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/pagination"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	services := service.NewServices(&service.ServiceDeps{Repos: repository.NewInMemoryRepositories()})
	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, NewHandlers(services))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestScheduleLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members/", gin.H{"userId": "u1", "password": "p1", "name": "N", "email": "e@x.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode[models.MemberResponse](t, w)
	assert.NotZero(t, member.ID)

	w = doJSON(t, r, http.MethodPost, "/schedules/", gin.H{"title": "T", "author": "A", "password": "sp", "memberId": member.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	schedule := decode[models.ScheduleResponse](t, w)
	assert.NotZero(t, schedule.ID)
	schedulePath := fmt.Sprintf("/schedules/%d", schedule.ID)

	w = doJSON(t, r, http.MethodPut, schedulePath, gin.H{"title": "T2", "author": "A2", "password": "sp"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.ScheduleResponse](t, w)
	assert.Equal(t, "T2", updated.Title)
	require.NotNil(t, updated.Member)
	assert.Equal(t, member.ID, updated.Member.ID)

	w = doJSON(t, r, http.MethodPut, schedulePath, gin.H{"title": "T3", "author": "A3", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	errBody := decode[models.ErrorResponse](t, w)
	assert.Equal(t, http.StatusUnauthorized, errBody.Status)
	assert.NotEmpty(t, errBody.Message)

	w = doJSON(t, r, http.MethodGet, schedulePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T2", decode[models.ScheduleResponse](t, w).Title)

	w = doJSON(t, r, http.MethodDelete, schedulePath, gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodDelete, schedulePath, gin.H{"password": "sp", "id": schedule.ID + 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ID_INCORRECT", decode[models.ErrorResponse](t, w).Code)

	w = doJSON(t, r, http.MethodDelete, schedulePath, gin.H{"password": "sp"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, schedulePath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, decode[models.ErrorResponse](t, w).Status)
}

func TestMemberRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members", gin.H{"userId": "u1", "password": "p1", "name": "Kim"})
	require.Equal(t, http.StatusCreated, w.Code)
	member := decode[models.MemberResponse](t, w)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPost, "/members/", gin.H{"userId": "u1", "password": "p2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/members/", gin.H{"password": "p2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/members/userId?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, member.ID, decode[models.MemberResponse](t, w).ID)

	w = doJSON(t, r, http.MethodGet, "/members/userId?userId=ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/members/name?name=Kim", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.MemberResponse](t, w), 1)

	path := fmt.Sprintf("/members/%d", member.ID)
	w = doJSON(t, r, http.MethodPut, path, gin.H{"userId": "u1", "password": "wrong", "name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPut, path, gin.H{"userId": "u1", "password": "p1", "name": "Lee"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lee", decode[models.MemberResponse](t, w).Name)

	w = doJSON(t, r, http.MethodGet, "/members/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, gin.H{"password": "p1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulePagedRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members/", gin.H{"userId": "u1", "password": "p1"})
	require.Equal(t, http.StatusCreated, w.Code)
	member := decode[models.MemberResponse](t, w)

	var first models.ScheduleResponse
	for i := 0; i < 3; i++ {
		w = doJSON(t, r, http.MethodPost, "/schedules", gin.H{
			"title": fmt.Sprintf("T%d", i), "author": "kim", "password": "sp",
			"member": gin.H{"userId": "u1"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		if i == 0 {
			first = decode[models.ScheduleResponse](t, w)
		}
	}
	today := first.UpdatedAt.UTC().Format(repository.DateLayout)

	w = doJSON(t, r, http.MethodGet, "/schedules/search?author=kim&page=1&pageSize=2&recordSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pagination.Page[models.ScheduleResponse]](t, w)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, "T2", page.Content[0].Title)

	w = doJSON(t, r, http.MethodGet, "/schedules/search?author=kim&page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[pagination.Page[models.ScheduleResponse]](t, w).Empty)

	w = doJSON(t, r, http.MethodGet, "/schedules/search?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/schedules/date?updatedAt="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[pagination.Page[models.ScheduleResponse]](t, w).Content, 3)

	w = doJSON(t, r, http.MethodGet, "/schedules/date?updatedAt=2001-01-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/schedules/dateDesc?page=1&pageSize=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), decode[pagination.Page[models.ScheduleResponse]](t, w).TotalElements)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/schedules/date/%d?field=createdAt&date=%s", first.ID, today), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, today, decode[models.SingleDateScheduleResponse](t, w).SelectedDate)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/schedules/date/%d?field=bogus&date=%s", first.ID, today), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/schedules/%d/%d", member.ID, first.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), decode[pagination.Page[models.ScheduleResponse]](t, w).TotalElements)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/schedules/%d/schedules/%d", member.ID, first.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T0", decode[models.ScheduleResponse](t, w).Title)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/schedules/%d/schedules/%d", member.ID+1, first.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulePageSizeZeroClampsToOne(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members/", gin.H{"userId": "u1", "password": "p1"})
	require.Equal(t, http.StatusCreated, w.Code)
	member := decode[models.MemberResponse](t, w)

	for i := 0; i < 12; i++ {
		w = doJSON(t, r, http.MethodPost, "/schedules/", gin.H{
			"title": fmt.Sprintf("T%d", i), "author": "A", "password": "sp", "memberId": member.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/schedules/dateDesc?page=2&pageSize=0&recordSize=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pagination.Page[models.ScheduleResponse]](t, w)
	assert.Equal(t, 1, page.PageSize)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "T10", page.Content[0].Title)

	// absent parameters take the defaults
	w = doJSON(t, r, http.MethodGet, "/schedules/dateDesc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[pagination.Page[models.ScheduleResponse]](t, w)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Content, 10)
}

func TestScheduleCreateValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/schedules/", gin.H{"title": "T", "author": "A", "password": "sp"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/schedules/", gin.H{"title": "T", "author": "A", "password": "sp", "memberId": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/schedules/", gin.H{"author": "A", "password": "sp", "memberId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
