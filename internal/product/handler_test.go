package product

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestProductRoutes_Registered(t *testing.T) {
	s, _, _ := newTestService(nil)
	app := makeAppWithProductHandler(NewHandler(s))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /api/v1/products",
		"GET /api/v1/products/:id",
		"POST /api/v1/products",
		"PUT /api/v1/products/:id",
		"DELETE /api/v1/products/:id",
	} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}
}

func TestCreateProduct_JSONAndList(t *testing.T) {
	s, _, _ := newTestService(nil)
	app := makeAppWithProductHandler(NewHandler(s))

	req := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(`{"name":"Cemento","category":"Materiales"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Name != "Cemento" {
		t.Fatalf("unexpected created product %+v", created)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), created.ID) || !strings.Contains(string(b), `"imageUrl":null`) {
		t.Fatalf("listing does not contain created product: %s", b)
	}
}

func TestCreateProduct_MultipartWithImage(t *testing.T) {
	s, _, images := newTestService(nil)
	app := makeAppWithProductHandler(NewHandler(s))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("name", "Herrajes")
	_ = mw.WriteField("description", "Tornillería")
	fw, _ := mw.CreateFormFile("image", "h.png")
	_, _ = fw.Write([]byte("pretend image bytes"))
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if len(images.saved) != 1 {
		t.Fatalf("expected image to be stored, got %v", images.saved)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), images.saved[0]) {
		t.Fatalf("response should carry image url: %s", b)
	}
}

func TestCreateProduct_BlankNameRejected(t *testing.T) {
	s, repo, _ := newTestService(nil)
	app := makeAppWithProductHandler(NewHandler(s))

	req := httptest.NewRequest("POST", "/api/v1/products", strings.NewReader(`{"name":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	all, _ := repo.List(req.Context())
	if len(all) != 0 {
		t.Fatalf("no row should be written")
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	s, _, _ := newTestService([]Product{{ID: "p1", Name: "Old", CreatedAt: time.Now()}})
	app := makeAppWithProductHandler(NewHandler(s))

	req := httptest.NewRequest("PUT", "/api/v1/products/p1", strings.NewReader(`{"name":"New","price":"Por m2"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on update, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Por m2") {
		t.Fatalf("update response unexpected: %s", b)
	}

	req2 := httptest.NewRequest("PUT", "/api/v1/products/missing", strings.NewReader(`{"name":"New"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/products/p1", nil))
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", res3.StatusCode)
	}
	res4, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/p1", nil))
	if res4.StatusCode != fiber.StatusNotFound {
		t.Fatalf("deleted product still served, status %d", res4.StatusCode)
	}

	// deleting again is a no-op
	res5, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/products/p1", nil))
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for repeated delete, got %d", res5.StatusCode)
	}
}

func TestGetProducts_CategoryFilter(t *testing.T) {
	mat, acc := "Materiales", "Accesorios"
	s, _, _ := newTestService([]Product{
		{ID: "1", Name: "A", Category: &mat},
		{ID: "2", Name: "B", Category: &acc},
	})
	app := makeAppWithProductHandler(NewHandler(s))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?category=materiales", nil))
	var got []Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected filter result %+v", got)
	}
}
