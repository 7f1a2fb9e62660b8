package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/lcboard/internal/adapters/http/api"
	"github.com/okian/lcboard/internal/adapters/leetcode"
	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps implements api.Dependencies and api.StatsProvider.
type fakeDeps struct {
	report      types.Report
	reportErr   error
	rows        []types.SubmissionRow
	contests    []model.AttendedContest
	userErr     error
	gotUsername string
	gotLimit    int
}

func (f *fakeDeps) BuildReport(_ context.Context, usernames []string) (types.Report, error) {
	if f.reportErr != nil {
		return types.Report{}, f.reportErr
	}
	rep := f.report
	rep.Usernames = usernames
	return rep, nil
}

func (f *fakeDeps) RecentSubmissions(_ context.Context, username string, limit int) ([]types.SubmissionRow, error) {
	f.gotUsername, f.gotLimit = username, limit
	return f.rows, f.userErr
}

func (f *fakeDeps) AttendedContests(_ context.Context, username string) ([]model.AttendedContest, error) {
	f.gotUsername = username
	return f.contests, f.userErr
}

func (f *fakeDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *fakeDeps, relay *api.RelayHandler) *httptest.Server {
	if relay == nil {
		relay = api.NewRelayHandler("http://127.0.0.1:0", "https://leetcode.com/")
	}
	mux := http.NewServeMux()
	api.NewServer(deps, deps, relay).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestReportEndpoint(t *testing.T) {
	Convey("Given the report endpoint", t, func() {
		deps := &fakeDeps{
			report: types.Report{
				RunID:    "run-1",
				Problems: types.ProblemSets{Common: []string{"Two Sum"}, Unique: []string{"3Sum"}},
			},
		}
		srv := newTestServer(deps, nil)
		defer srv.Close()

		Convey("When posting a valid username list", func() {
			resp, err := http.Post(srv.URL+"/report", "application/json",
				strings.NewReader(`{"usernames":["alice","bob"]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the report comes back as JSON", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var rep types.Report
				So(json.NewDecoder(resp.Body).Decode(&rep), ShouldBeNil)
				So(rep.Usernames, ShouldResemble, []string{"alice", "bob"})
				So(rep.Problems.Common, ShouldResemble, []string{"Two Sum"})
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/report", "application/json", strings.NewReader(`{`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting only blank usernames", func() {
			resp, err := http.Post(srv.URL+"/report", "application/json",
				strings.NewReader(`{"usernames":["  ",""]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/report")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUsersEndpoints(t *testing.T) {
	Convey("Given the per-user endpoints", t, func() {
		deps := &fakeDeps{
			rows: []types.SubmissionRow{{Username: "alice", Title: "Two Sum"}},
			contests: []model.AttendedContest{
				{Title: "Weekly Contest 1", TitleSlug: "weekly-contest-1", StartTimeUnix: 100},
			},
		}
		srv := newTestServer(deps, nil)
		defer srv.Close()

		Convey("When fetching submissions with a limit", func() {
			resp, err := http.Get(srv.URL + "/users/alice/submissions?limit=5")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then rows come back and the limit is honored", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.gotUsername, ShouldEqual, "alice")
				So(deps.gotLimit, ShouldEqual, 5)
			})
		})

		Convey("When fetching contests", func() {
			resp, err := http.Get(srv.URL + "/users/alice/contests")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			var contests []model.AttendedContest
			So(json.NewDecoder(resp.Body).Decode(&contests), ShouldBeNil)
			So(contests, ShouldHaveLength, 1)
			So(contests[0].Title, ShouldEqual, "Weekly Contest 1")
		})

		Convey("When the limit is not a positive integer", func() {
			resp, err := http.Get(srv.URL + "/users/alice/submissions?limit=zero")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the sub-resource is unknown", func() {
			resp, err := http.Get(srv.URL + "/users/alice/badges")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the upstream blocks the fetch", func() {
			deps.userErr = leetcode.NewKind("leetcode.recent_submissions", leetcode.ErrBlocked)
			resp, err := http.Get(srv.URL + "/users/alice/submissions")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the status distinguishes the blocked kind", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadGateway)
				var body map[string]string
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["code"], ShouldEqual, "upstream_blocked")
			})
		})

		Convey("When the username is empty upstream", func() {
			deps.userErr = leetcode.NewKind("leetcode.recent_submissions", leetcode.ErrEmptyUsername)
			resp, err := http.Get(srv.URL + "/users/x/submissions")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRelayEndpoint(t *testing.T) {
	Convey("Given a relay in front of a fake upstream", t, func(c C) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.Header.Get("x-requested-with"), ShouldEqual, "XMLHttpRequest")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(`{"echo":true}`))
		}))
		defer upstream.Close()

		deps := &fakeDeps{}
		srv := newTestServer(deps, api.NewRelayHandler(upstream.URL, "https://leetcode.com/"))
		defer srv.Close()

		Convey("When forwarding a request", func() {
			resp, err := http.Post(srv.URL+"/api/graphql", "application/json",
				strings.NewReader(`{"query":"query {}"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then status and body pass through unchanged", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTeapot)
				var body map[string]bool
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["echo"], ShouldBeTrue)
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/api/graphql")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		srv := newTestServer(&fakeDeps{}, nil)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/stats")
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		Convey("Then service stats come back as JSON", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})
	})
}
