// file: internals/helpers/json_response_test.go
package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func resolveOn(t *testing.T, target string, defaultPerPage, maxPerPage int) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, defaultPerPage, maxPerPage)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	return got
}

func TestResolvePaging(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   Paging
	}{
		{"defaults", "/items", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"page and per_page", "/items?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"limit alias", "/items?limit=5", Paging{Page: 1, PerPage: 5, Offset: 0, Limit: 5}},
		{"per_page capped", "/items?per_page=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"garbage falls back", "/items?page=abc&per_page=-3", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveOn(t, tc.target, 20, 100)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("has_next=%v has_prev=%v, want both true on the middle page", p.HasNext, p.HasPrev)
	}

	last := BuildPaginationFromPage(45, 3, 20)
	if last.HasNext {
		t.Error("last page must not report has_next")
	}
}

func TestBuildPaginationFromOffset(t *testing.T) {
	p := BuildPaginationFromOffset(45, 40, 20)
	if p.Page != 3 {
		t.Errorf("page = %d, want 3", p.Page)
	}
	if p.HasNext {
		t.Error("offset past the last full page must not report has_next")
	}
}

func TestJsonListIncludesPagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		data := []string{"a", "b", "c"}
		return JsonList(c, "ok", data, BuildPaginationFromPage(3, 1, 20))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body struct {
		Success    bool        `json:"success"`
		Data       []string    `json:"data"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || len(body.Data) != 3 {
		t.Fatalf("unexpected body: %s", raw)
	}
	if body.Pagination == nil {
		t.Fatal("pagination block missing")
	}
	if body.Pagination.Count != 3 {
		t.Errorf("count = %d, want the page item count 3", body.Pagination.Count)
	}
	if len(body.Pagination.PerPageOptions) == 0 {
		t.Error("per_page_options not filled from defaults")
	}
}
