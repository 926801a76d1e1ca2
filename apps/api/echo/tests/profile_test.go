package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/gradnet/backend/apps/api/echo"
	"github.com/gradnet/backend/core/profile"
)

func TestProfileAPI_own(t *testing.T) {
	app := setup(t)

	viewer := profile.Profile{ID: "11111111-1111-1111-1111-111111111111", Email: "ada@test.grad"}
	token := getToken(t, viewer)

	t.Run("authentication required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profile")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("not found until created", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profile", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("upsert creates", func(t *testing.T) {
		body := []byte(`{"full_name": "Ada Lovelace", "graduation_year": "2018", "major": "Mathematics", "is_mentor": true}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var p profile.Profile
		decodeBody(t, rec, &p)
		if p.ID != viewer.ID {
			t.Errorf("ID = %s, want %s", p.ID, viewer.ID)
		}
		if p.Email != viewer.Email {
			t.Errorf("Email = %s, want %s", p.Email, viewer.Email)
		}
		if p.GraduationYear == nil || *p.GraduationYear != 2018 {
			t.Errorf("GraduationYear = %v, want 2018", p.GraduationYear)
		}
		if !p.IsMentor || p.IsAdmin {
			t.Errorf("IsMentor = %v, IsAdmin = %v; want true, false", p.IsMentor, p.IsAdmin)
		}
	})

	t.Run("upsert updates and clears year", func(t *testing.T) {
		body := []byte(`{"full_name": "Ada Lovelace", "graduation_year": "", "bio": "first programmer"}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var p profile.Profile
		decodeBody(t, rec, &p)
		if p.GraduationYear != nil {
			t.Errorf("GraduationYear = %v, want nil", *p.GraduationYear)
		}
		if p.Bio != "first programmer" {
			t.Errorf("Bio = %q", p.Bio)
		}
	})

	t.Run("upsert preserves admin flag", func(t *testing.T) {
		adm := createProfile(t, "Root Admin", "root@test.grad", nil, false, true)
		admToken := getToken(t, adm)

		body := []byte(`{"full_name": "Still Admin"}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", admToken, body)
		app.ServeHTTP(rec, req)

		var p profile.Profile
		decodeBody(t, rec, &p)
		if !p.IsAdmin {
			t.Error("IsAdmin = false, want true")
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []httpTest{
			{
				name: "full_name required", body: []byte(`{"graduation_year": "2020"}`),
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, map[string]string{"full_name": "this field is required"}),
			},
			{
				name: "bad year", body: []byte(`{"full_name": "Ada", "graduation_year": "soon"}`),
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, map[string]string{"graduation_year": "must be a 4-digit graduation year"}),
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newAuthRequest(http.MethodPut, "/v1/profile", token, tt.body)
				app.ServeHTTP(rec, req)
				checkCodeAndData(t, tt, rec)
			})
		}
	})
}

func TestProfileAPI_retrieve(t *testing.T) {
	app := setup(t)

	ada := createProfile(t, "Ada Lovelace", "ada@test.grad", intPtr(2018), true, false)
	viewer := createProfile(t, "Viewer", "viewer@test.grad", nil, false, false)
	token := getToken(t, viewer)

	t.Run("found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles/"+ada.ID, token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, ada)}, rec)
	})

	t.Run("not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles/nope", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func TestProfileAPI_directory(t *testing.T) {
	app := setup(t)

	viewer := createProfile(t, "Viewer", "viewer@test.grad", intPtr(2020), false, false)
	ada := createProfile(t, "Ada Lovelace", "ada@test.grad", intPtr(2018), true, false)
	grace := createProfile(t, "Grace Hopper", "grace@test.grad", intPtr(2020), false, false)
	token := getToken(t, viewer)

	directory := func(t *testing.T, query string) DirectoryResponse {
		req, rec := newAuthRequest(http.MethodGet, "/v1/directory"+query, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res DirectoryResponse
		decodeBody(t, rec, &res)
		return res
	}

	t.Run("excludes viewer", func(t *testing.T) {
		res := directory(t, "")
		if len(res.Profiles) != 2 {
			t.Errorf("len(Profiles) = %d, want 2", len(res.Profiles))
		}
		for _, p := range res.Profiles {
			if p.ID == viewer.ID {
				t.Error("directory contains the viewer")
			}
		}
		wantYears := []int{2020, 2018}
		if len(res.Years) != 2 || res.Years[0] != wantYears[0] || res.Years[1] != wantYears[1] {
			t.Errorf("Years = %v, want %v", res.Years, wantYears)
		}
	})

	t.Run("search", func(t *testing.T) {
		res := directory(t, "?search=lovelace")
		if len(res.Profiles) != 1 || res.Profiles[0].ID != ada.ID {
			t.Errorf("Profiles = %+v, want [ada]", res.Profiles)
		}
	})

	t.Run("mentor filter", func(t *testing.T) {
		res := directory(t, "?mentor=non-mentors")
		if len(res.Profiles) != 1 || res.Profiles[0].ID != grace.ID {
			t.Errorf("Profiles = %+v, want [grace]", res.Profiles)
		}
	})

	t.Run("year filter", func(t *testing.T) {
		res := directory(t, "?year=2018")
		if len(res.Profiles) != 1 || res.Profiles[0].ID != ada.ID {
			t.Errorf("Profiles = %+v, want [ada]", res.Profiles)
		}
	})

	t.Run("total is the full roster size regardless of filter", func(t *testing.T) {
		res := directory(t, "?search=lovelace")
		if res.Total != 3 {
			t.Errorf("Total = %d, want 3", res.Total)
		}
	})
}

func TestProfileAPI_picture(t *testing.T) {
	app := setup(t)

	viewer := createProfile(t, "Ada Lovelace", "ada@test.grad", nil, false, false)
	token := getToken(t, viewer)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatalf("CreateFormFile(): %v", err)
	}
	if _, err = fw.Write([]byte("not-really-a-png")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/profile/picture", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var p profile.Profile
	decodeBody(t, rec, &p)
	if !strings.HasPrefix(p.PictureURL, "/media/") {
		t.Errorf("PictureURL = %q, want /media/ prefix", p.PictureURL)
	}
}

func intPtr(v int) *int { return &v }
