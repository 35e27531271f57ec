package e2e_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"testing"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/config"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/factory"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("e2e-test")

const serviceKey = "test-service-key"

func startDashboard(t *testing.T) string {
	cfg := config.Config{
		ListenAddress: "127.0.0.1:0",
		DatabasePath:  ":memory:",
	}

	handler, err := factory.NewComponentsHandler(serviceKey, cfg)
	require.NoError(t, err)

	handler.Start()
	t.Cleanup(handler.Close)

	_, port, err := net.SplitHostPort(handler.GetServer().Address())
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	return fmt.Sprintf("http://127.0.0.1:%s", port)
}

func getBody(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}

func postImport(t *testing.T, url string, contents string, apiKey string) (int, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url+"/api/import", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}

func TestE2EFlow(t *testing.T) {
	log.Info("======== 1. Start the dashboard service via componentsHandler")
	baseURL := startDashboard(t)

	log.Info("======== 2. Fetch the dashboard for the default period")
	status, body := getBody(t, baseURL+"/api/dashboard")
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, "3m", gjson.Get(body, "period.id").String())
	require.Equal(t, int64(3), gjson.Get(body, "series.#").Int())
	require.Equal(t, "Ago", gjson.Get(body, "series.2.month").String())
	require.Equal(t, 398.0, gjson.Get(body, "series.2.MTBF").Float())
	require.Equal(t, 96.3, gjson.Get(body, "series.2.availability").Float())

	log.Info("======== 3. Verify the derived KPI cards")
	require.Equal(t, int64(5), gjson.Get(body, "kpis.#").Int())
	require.Equal(t, "398h", gjson.Get(body, "kpis.0.value").String())
	require.Equal(t, "96.3%", gjson.Get(body, "kpis.2.value").String())
	require.Equal(t, "87.5%", gjson.Get(body, "kpis.3.value").String())
	require.Equal(t, "R$ 1.20M", gjson.Get(body, "kpis.4.value").String())

	log.Info("======== 4. Verify the ranking and the alerts")
	require.Equal(t, "Esteira B2", gjson.Get(body, "ranking.0.name").String())
	require.Equal(t, "Motor C3", gjson.Get(body, "ranking.2.name").String())
	require.Equal(t, int64(1), gjson.Get(body, "alerts.#").Int())
	require.Equal(t, "Motor C3", gjson.Get(body, "alerts.0.equipmentName").String())
	require.Equal(t, "critical", gjson.Get(body, "alerts.0.severity").String())

	log.Info("======== 5. Verify the periods and categories endpoints")
	status, body = getBody(t, baseURL+"/api/periods")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(3), gjson.Get(body, "periods.#").Int())
	require.Equal(t, "3m", gjson.Get(body, "default").String())

	status, body = getBody(t, baseURL+"/api/categories")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(3), gjson.Get(body, "categories.#").Int())

	log.Info("======== 6. Fetch the chart rendition")
	resp, err := http.Get(baseURL + "/api/chart?period=4m")
	require.NoError(t, err)
	pngHeader := make([]byte, 4)
	_, err = io.ReadFull(resp.Body, pngHeader)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []byte("\x89PNG"), pngHeader)
}

func TestE2EImportFlow(t *testing.T) {
	log.Info("======== 1. Start the dashboard service via componentsHandler")
	baseURL := startDashboard(t)

	log.Info("======== 2. Download the reference template")
	status, template := getBody(t, baseURL+"/api/template")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, template, "id,name,category,month")

	log.Info("======== 3. An import without the service key must be rejected")
	status, _ = postImport(t, baseURL, template, "")
	require.Equal(t, http.StatusUnauthorized, status)

	log.Info("======== 4. Import a reduced dataset with the service key")
	reduced := `id,name,category,month,MTBF,MTTR,Availability,Cost,Status
pump-1,Pump 1,Pumps,Jul,300,3.0,92,0.5,Operational
pump-1,Pump 1,Pumps,Ago,320,2.8,94,0.45,Operational
`
	status, body := postImport(t, baseURL, reduced, serviceKey)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), gjson.Get(body, "equipments").Int())

	log.Info("======== 5. The dashboard now reflects the imported dataset")
	status, body = getBody(t, baseURL+"/api/dashboard")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), gjson.Get(body, "ranking.#").Int())
	require.Equal(t, "pump-1", gjson.Get(body, "ranking.0.id").String())
	require.Equal(t, 320.0, gjson.Get(body, "series.2.MTBF").Float())
	require.Equal(t, 94.0, gjson.Get(body, "series.2.availability").Float())

	log.Info("======== 6. A malformed import leaves the dataset untouched")
	status, _ = postImport(t, baseURL, "id,name\n\"unterminated,Pump 1\n", serviceKey)
	require.Equal(t, http.StatusBadRequest, status)

	status, body = getBody(t, baseURL+"/api/dashboard")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "pump-1", gjson.Get(body, "ranking.0.id").String())

	log.Info("======== 7. Re-importing the full template restores the three equipments")
	status, _ = postImport(t, baseURL, template, serviceKey)
	require.Equal(t, http.StatusOK, status)

	status, body = getBody(t, baseURL+"/api/dashboard")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(3), gjson.Get(body, "ranking.#").Int())
}