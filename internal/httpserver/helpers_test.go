package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/storage"
	pkgdb "github.com/Skotchmaster/coffee_shop/pkg/db"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	gdb, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, fmt.Sprintf("file:http_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(ctx))

	uploads := t.TempDir()
	authSvc := &service.AuthService{Repo: r, JWTSecret: testSecret, AccessTTL: time.Hour}

	e := echo.New()
	Register(e, &Deps{
		DB:         gdb,
		JWTSecret:  testSecret,
		UploadsDir: uploads,
		Orders:     &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		Payments:   &PaymentHTTP{Svc: &service.PaymentService{Repo: r}},
		Menu:       &MenuHTTP{Svc: &service.MenuService{Repo: r}},
		Vouchers:   &VoucherHTTP{Svc: &service.VoucherService{Repo: r}},
		Auth:       &AuthHTTP{Svc: authSvc},
		Uploads:    &UploadHTTP{Store: storage.NewFSStore(uploads, "")},
	})

	return &testEnv{T: t, E: e, Repo: r, Auth: authSvc}
}

func tokenFor(t *testing.T, id uint, role models.Role, name string) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(testSecret, fmt.Sprint(id), string(role), name, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return tok
}

func (env *testEnv) doJSONRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) upload(filename string, content []byte) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(env.T, err)
	_, err = fw.Write(content)
	require.NoError(env.T, err)
	require.NoError(env.T, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedMenu(name string, price int64, stock int) models.MenuItem {
	env.T.Helper()
	item := models.MenuItem{Name: name, Category: "Coffee", Price: decimal.NewFromInt(price), Stock: stock}
	require.NoError(env.T, env.Repo.CreateMenuItem(context.Background(), &item))
	return item
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
