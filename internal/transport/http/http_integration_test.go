//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/queue/memory"
	pgrepo "github.com/Gunvolt24/order_queue/internal/repo/postgres"
	"github.com/Gunvolt24/order_queue/internal/testutil"
	rest "github.com/Gunvolt24/order_queue/internal/transport/http"
	"github.com/Gunvolt24/order_queue/internal/usecase"
	"github.com/Gunvolt24/order_queue/pkg/logger"
	"github.com/Gunvolt24/order_queue/pkg/metrics"
	"github.com/Gunvolt24/order_queue/pkg/validate"
)

// startServer - Postgres в контейнере + полный пайплайн сервиса.
func startServer(t *testing.T, capacity int) *httptest.Server {
	t.Helper()
	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(logger.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	repo := pgrepo.NewOrderRepository(pg.Pool)
	svc := usecase.NewOrderService(repo, memory.NewOrderStack(capacity), logg, validate.NewOrderValidator(), usecase.PolicyReject)

	h := rest.NewHandler(svc, logg, 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, rest.RouterOptions{Version: "itest"}))
	t.Cleanup(ts.Close)
	return ts
}

func postDraft(t *testing.T, ts *httptest.Server, d domain.OrderDraft) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/orders", "application/json", strings.NewReader(string(testutil.DraftJSON(d))))
	require.NoError(t, err)
	return resp
}

// 1) POST → GET по id: данные из БД, сумма с двумя знаками
func TestHTTP_CreateAndGet_TC(t *testing.T) {
	ts := startServer(t, 10)

	resp := postDraft(t, ts, testutil.MakeDraft(testutil.WithCustomer("Maria Silva"), testutil.WithAmount("1500.5")))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "1500.50", created["amount"])

	id := int64(created["id"].(float64))
	require.Equal(t, fmt.Sprintf("/api/orders/%d", id), resp.Header.Get("Location"))

	get, err := http.Get(ts.URL + resp.Header.Get("Location"))
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(get.Body).Decode(&got))
	require.Equal(t, "Maria Silva", got["customer_name"])
	require.Equal(t, "1500.50", got["amount"])
}

// 2) Очередь ёмкости 2: третий заказ - 409 и не пишется в БД
func TestHTTP_QueueFull_NotPersisted_TC(t *testing.T) {
	ts := startServer(t, 2)
	cust := "queue-" + testutil.UniqSuffix()

	for i := 0; i < 2; i++ {
		resp := postDraft(t, ts, testutil.MakeDraft(testutil.WithCustomer(cust)))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := postDraft(t, ts, testutil.MakeDraft(testutil.WithCustomer(cust)))
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	list, err := http.Get(ts.URL + "/api/orders?customer=" + cust)
	require.NoError(t, err)
	defer list.Body.Close()

	var orders []map[string]any
	require.NoError(t, json.NewDecoder(list.Body).Decode(&orders))
	require.Len(t, orders, 2)

	// LIFO: process отдаёт последний созданный (самый новый в списке)
	proc, err := http.Post(ts.URL+"/api/queue/process", "application/json", http.NoBody)
	require.NoError(t, err)
	defer proc.Body.Close()
	require.Equal(t, http.StatusOK, proc.StatusCode)

	var popped map[string]any
	require.NoError(t, json.NewDecoder(proc.Body).Decode(&popped))
	require.Equal(t, orders[0]["id"], popped["id"])
}

// 3) /health с живой БД, /metrics, 404 на неизвестный маршрут
func TestHTTP_Health_Metrics_And_404_TC(t *testing.T) {
	ts := startServer(t, 5)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "healthy", health["status"])
	require.Equal(t, "itest", health["version"])

	respM, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer respM.Body.Close()
	require.Equal(t, http.StatusOK, respM.StatusCode)
	require.Contains(t, string(readAll(t, respM.Body)), "order_queue_size")

	resp404, err := http.Get(ts.URL + "/no/such/route")
	require.NoError(t, err)
	defer resp404.Body.Close()
	require.Equal(t, http.StatusNotFound, resp404.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp404.Body).Decode(&got))
	require.Equal(t, "route not found", got["message"])
}

// --- функции помощники ---

func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}
