package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"pedidos-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorService_ValidateUser_Found(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usuarios/14", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateUser(context.Background(), 14)

	assert.NoError(t, err)
}

func TestValidatorService_ValidateUser_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateUser(context.Background(), 99)

	assert.Equal(t, service.KindNotFound, kindOf(t, err))
	assert.Contains(t, err.Error(), "99")
}

func TestValidatorService_ValidateUser_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // conexión rechazada

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateUser(context.Background(), 14)

	assert.Equal(t, service.KindUnavailable, kindOf(t, err))
}

func TestValidatorService_ValidateUser_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateUser(context.Background(), 14)

	assert.Equal(t, service.KindInternal, kindOf(t, err))
}

func TestValidatorService_ValidateProductos_CollectsAllMissing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/101"), strings.HasSuffix(r.URL.Path, "/103"):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateProductos(context.Background(), []int{101, 102, 103})

	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, kindOf(t, err))
	// Todos los ids faltantes en un solo error, no sólo el primero
	assert.Contains(t, err.Error(), "101")
	assert.Contains(t, err.Error(), "103")
	assert.NotContains(t, err.Error(), "102")
}

func TestValidatorService_ValidateProductos_DistinctIDsCheckedOnce(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateProductos(context.Background(), []int{101, 101, 102, 101})

	require.NoError(t, err)
	assert.Equal(t, 1, hits["/productos/101"])
	assert.Equal(t, 1, hits["/productos/102"])
	assert.Len(t, hits, 2)
}

func TestValidatorService_ValidateProductos_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateProductos(context.Background(), []int{101})

	assert.Equal(t, service.KindUnavailable, kindOf(t, err))
}

func TestValidatorService_ValidateProductos_AllFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	v := service.NewValidatorService(ts.URL, ts.URL)
	err := v.ValidateProductos(context.Background(), []int{101, 102})

	assert.NoError(t, err)
}
