package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attachfs "github.com/RamonCharlles/Gestao-componentes/internal/attachment/fs"
	"github.com/RamonCharlles/Gestao-componentes/internal/credential"
	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/internal/repository/csvfile"
	service "github.com/RamonCharlles/Gestao-componentes/internal/service/component"
	"github.com/RamonCharlles/Gestao-componentes/internal/service/export"
	compproducer "github.com/RamonCharlles/Gestao-componentes/internal/service/producer/component"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return newTestServerAt(t, filepath.Join(t.TempDir(), "registros_componentes.csv"))
}

func newTestServerAt(t *testing.T, storePath string) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	attachments, err := attachfs.NewStore(filepath.Join(dir, "images", "uploads"))
	require.NoError(t, err)

	ctrl := lifecycle.New()
	svc := service.NewComponentService(
		csvfile.NewStore(storePath),
		credential.NewStore(map[model.Role]map[string]string{
			model.RoleSupervisor:    {"joao": "1234"},
			model.RoleAdministrator: {"admin": "root"},
		}),
		attachments,
		compproducer.NewLogNotifier(),
		ctrl,
		time.Second,
		time.Second,
	)

	r := chi.NewRouter()
	NewComponentHandler(svc, export.NewExportService(ctrl)).Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func createBody() createRequest {
	return createRequest{
		ResponsibleName:    gofakeit.Name(),
		BadgeID:            gofakeit.Numerify("######"),
		PartNumber:         gofakeit.Numerify("PN-####"),
		Description:        gofakeit.ProductName(),
		EquipmentTag:       "CAT-793",
		HourMeter:          1520.5,
		FailureDescription: "Vazamento",
		ServiceScope:       "Reforma completa",
		WithdrawalOrder:    gofakeit.Numerify("OS-#####"),
		WithdrawalDate:     "2024-01-10",
	}
}

type authUser struct{ name, secret string }

var (
	noAuth     = authUser{}
	supervisor = authUser{"joao", "1234"}
	admin      = authUser{"admin", "root"}
)

func do(t *testing.T, srv *httptest.Server, method, path string, body any, user authUser) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user.name != "" {
		req.SetBasicAuth(user.name, user.secret)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createComponent(t *testing.T, srv *httptest.Server) componentResponse {
	t.Helper()

	resp := do(t, srv, http.MethodPost, "/api/v1/components", createBody(), noAuth)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[createResponse](t, resp).Component
}

func TestCreateAndQuery(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/components", createBody(), noAuth)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[createResponse](t, resp)
	assert.Equal(t, string(model.StatusAwaitingShipment), created.Component.Status)
	assert.Equal(t, int64(1), created.Component.Version)
	assert.Contains(t, created.Summary, "ID: "+created.Component.ID)
	assert.Empty(t, created.NotificationError)

	resp = do(t, srv, http.MethodGet, "/api/v1/components", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[listResponse](t, resp)
	require.Equal(t, 1, list.Total)
	require.NotNil(t, list.Items[0].DurationDays)
	assert.Positive(t, *list.Items[0].DurationDays)

	resp = do(t, srv, http.MethodGet, "/api/v1/components?status=DELIVERED", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[listResponse](t, resp).Total)

	resp = do(t, srv, http.MethodGet, "/api/v1/components?tag=CAT-793&from=2024-01-01&to=2024-01-31", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[listResponse](t, resp).Total)

	resp = do(t, srv, http.MethodGet, "/api/v1/tags", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"CAT-793"}, decode[tagsResponse](t, resp).Tags)

	resp = do(t, srv, http.MethodGet, "/api/v1/components/"+created.Component.ID, nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Component.PartNumber, decode[componentResponse](t, resp).PartNumber)
}

func TestBadRequests(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "missing fields", method: http.MethodPost, path: "/api/v1/components", body: createRequest{}, want: http.StatusBadRequest},
		{name: "unknown status filter", method: http.MethodGet, path: "/api/v1/components?status=LOST", want: http.StatusBadRequest},
		{name: "malformed date filter", method: http.MethodGet, path: "/api/v1/components?from=10/01/2024", want: http.StatusBadRequest},
		{name: "malformed id", method: http.MethodGet, path: "/api/v1/components/42", want: http.StatusBadRequest},
		{name: "unknown id", method: http.MethodGet, path: "/api/v1/components/" + gofakeit.UUID(), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := do(t, srv, tt.method, tt.path, tt.body, noAuth)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, tt.want, decode[errorResponse](t, resp).Code)
		})
	}
}

func TestLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	comp := createComponent(t, srv)
	base := "/api/v1/components/" + comp.ID

	ship := shipRequest{Target: "AWAITING_RETURN", Reference: "RS-1", Note: "NF-9", Date: "2024-01-12"}

	resp := do(t, srv, http.MethodPost, base+"/ship", ship, noAuth)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))

	resp = do(t, srv, http.MethodPost, base+"/ship", ship, admin)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "administrators do not ship")

	resp = do(t, srv, http.MethodPost, base+"/ship", ship, supervisor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shipped := decode[transitionResponse](t, resp).Component
	assert.Equal(t, "Aguardando Retorno", shipped.StatusLabel)
	assert.Equal(t, int64(2), shipped.Version)

	resp = do(t, srv, http.MethodPost, base+"/deliver", deliverRequest{ExpectedVersion: 1, Date: "2024-01-20"}, supervisor)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "stale version")

	resp = do(t, srv, http.MethodDelete, base, nil, admin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "not terminal yet")

	resp = do(t, srv, http.MethodPost, base+"/deliver", deliverRequest{ExpectedVersion: 2, Date: "2024-01-20"}, supervisor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(model.StatusDelivered), decode[transitionResponse](t, resp).Component.Status)

	resp = do(t, srv, http.MethodPost, base+"/cancel", cancelRequest{Reason: "late"}, supervisor)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/reports/status", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[reportResponse](t, resp)
	require.Len(t, report.Groups, len(model.AllStatuses()))
	assert.Equal(t, 1, report.Groups[3].Count)

	resp = do(t, srv, http.MethodGet, "/api/v1/export?format=xlsx", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp = do(t, srv, http.MethodGet, "/api/v1/export?format=pdf", nil, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, base+"?expected_version=3", nil, admin)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, base, nil, noAuth)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDirectDeliveryAndCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	a := createComponent(t, srv)
	b := createComponent(t, srv)

	resp := do(t, srv, http.MethodPost, "/api/v1/components/"+a.ID+"/deliver-direct", deliverRequest{Date: "2024-01-15"}, supervisor)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/v1/components/"+b.ID+"/cancel", cancelRequest{Reason: " "}, supervisor)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/v1/components/"+b.ID+"/cancel", cancelRequest{Reason: "Sem reparo"}, supervisor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cancelled := decode[transitionResponse](t, resp).Component
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, "Sem reparo", cancelled.CancellationReason)
}

func TestMultipartCreateWithImage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	body := createBody()
	image := []byte("\x89PNG fake")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"responsible_name":    body.ResponsibleName,
		"badge_id":            body.BadgeID,
		"part_number":         body.PartNumber,
		"description":         body.Description,
		"equipment_tag":       body.EquipmentTag,
		"hour_meter":          "1520,5",
		"failure_description": body.FailureDescription,
		"service_scope":       body.ServiceScope,
		"withdrawal_order":    body.WithdrawalOrder,
		"withdrawal_date":     body.WithdrawalDate,
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(imageField, "bomba.png")
	require.NoError(t, err)
	_, err = fw.Write(image)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/api/v1/components", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[createResponse](t, resp).Component
	assert.True(t, created.HasImage)
	assert.InDelta(t, 1520.5, created.HourMeter, 0.0001)

	img := do(t, srv, http.MethodGet, "/api/v1/components/"+created.ID+"/image", nil, noAuth)
	require.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
	assert.True(t, strings.Contains(img.Header.Get("Content-Disposition"), "bomba"))

	got := new(bytes.Buffer)
	_, err = got.ReadFrom(img.Body)
	require.NoError(t, err)
	assert.Equal(t, image, got.Bytes())
}

func TestMultipartRejectsBadExtension(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("responsible_name", "Ana"))
	fw, err := mw.CreateFormFile(imageField, "virus.exe")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("MZ"))
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/api/v1/components", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLegacyRecordsKeepTheirIDsAcrossRequests(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registros_componentes.csv")
	legacy := "Responsável,Matrícula,PN,Descrição,TAG,Horímetro,Falha,Escopo,Imagem,OS_Retirada,Data_Retirada,Status,RS,Nota/Passe,Data_Envio,Data_Entrega,Cancelado,Motivo_Cancelamento\n" +
		"Ana,123,PN-1,Bomba,CAT-793,10,Vazamento,Revisão,,OS-1,2024-01-01,Aguardando Envio,,,,,Não,\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	srv := newTestServerAt(t, path)

	resp := do(t, srv, http.MethodGet, "/api/v1/components", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[listResponse](t, resp)
	require.Equal(t, 1, first.Total)

	resp = do(t, srv, http.MethodGet, "/api/v1/components", nil, noAuth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first.Items[0].ID, decode[listResponse](t, resp).Items[0].ID)

	resp = do(t, srv, http.MethodPost, "/api/v1/components/"+first.Items[0].ID+"/cancel", cancelRequest{Reason: "Sem reparo"}, supervisor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[transitionResponse](t, resp).Component.Cancelled)
}
