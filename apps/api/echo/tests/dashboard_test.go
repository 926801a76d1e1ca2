package tests

import (
	"context"
	"net/http"
	"testing"

	. "github.com/gradnet/backend/apps/api/echo"
)

func TestDashboardAPI(t *testing.T) {
	app := setup(t)

	ada := createProfile(t, "Ada Lovelace", "ada@test.grad", intPtr(2018), false, false)
	grace := createProfile(t, "Grace Hopper", "grace@test.grad", nil, false, false)
	adm := createProfile(t, "Root Admin", "root@test.grad", nil, false, true)
	token := getToken(t, ada)

	t.Run("profile required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard", getToken(t, profileFixture("ghost", "ghost@test.grad")))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	seedAnnouncement(t, adm.ID, "First")
	seedAnnouncement(t, adm.ID, "Second")
	seedAnnouncement(t, adm.ID, "Third")
	seedAnnouncement(t, adm.ID, "Fourth")

	seedMessage(t, grace.ID, ada.ID)
	read := seedMessage(t, grace.ID, ada.ID)
	if err := messageSvc.MarkRead(context.Background(), ada.ID, read.ID); err != nil {
		t.Fatalf("MarkRead(): %v", err)
	}

	t.Run("overview", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res DashboardResponse
		decodeBody(t, rec, &res)
		if res.Profile.ID != ada.ID {
			t.Errorf("Profile.ID = %s, want %s", res.Profile.ID, ada.ID)
		}
		if len(res.Announcements) != 3 {
			t.Errorf("len(Announcements) = %d, want 3", len(res.Announcements))
		}
		if res.UnreadCount != 1 {
			t.Errorf("UnreadCount = %d, want 1", res.UnreadCount)
		}
	})
}
