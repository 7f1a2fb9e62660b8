package leetcode_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/lcboard/internal/adapters/leetcode"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecentAcceptedSubmissions(t *testing.T) {
	Convey("Given an upstream returning a submission list", t, func() {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			_, _ = w.Write([]byte(`{"data":{"recentAcSubmissionList":[
				{"id":"1","title":"Two Sum","titleSlug":"two-sum","timestamp":"1700000000"},
				{"id":"2","title":"3Sum","titleSlug":"3sum","timestamp":1700000100}
			]}}`))
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("When fetching", func() {
			subs, err := client.RecentAcceptedSubmissions(context.Background(), "alice", 15)

			Convey("Then submissions decode with opaque timestamps", func() {
				So(err, ShouldBeNil)
				So(subs, ShouldHaveLength, 2)
				So(subs[0].Title, ShouldEqual, "Two Sum")
				So(subs[0].Timestamp, ShouldEqual, "1700000000")
				So(subs[1].Timestamp, ShouldEqual, "1700000100")
			})

			Convey("And the request carries the exact field set", func() {
				query, _ := gotBody["query"].(string)
				So(query, ShouldContainSubstring, "recentAcSubmissionList(username: $username, limit: $limit)")
				So(query, ShouldContainSubstring, "titleSlug")
				vars, _ := gotBody["variables"].(map[string]any)
				So(vars["username"], ShouldEqual, "alice")
				So(vars["limit"], ShouldEqual, float64(15))
			})
		})

		Convey("When the username is empty after trimming", func() {
			_, err := client.RecentAcceptedSubmissions(context.Background(), "   ", 15)

			Convey("Then it fails before hitting the wire", func() {
				So(err, ShouldWrap, leetcode.ErrEmptyUsername)
			})
		})
	})

	Convey("Given an upstream returning HTTP 403", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("Then the error is the blocked kind with guidance", func() {
			_, err := client.RecentAcceptedSubmissions(context.Background(), "alice", 15)
			So(err, ShouldWrap, leetcode.ErrBlocked)
			So(err.Error(), ShouldContainSubstring, "relay")
		})
	})

	Convey("Given an upstream returning HTTP 500 with a body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("Then the error carries status and raw body", func() {
			_, err := client.RecentAcceptedSubmissions(context.Background(), "alice", 15)
			So(err, ShouldWrap, leetcode.ErrUpstream)
			So(err.Error(), ShouldContainSubstring, "500")
			So(err.Error(), ShouldContainSubstring, "boom")
		})
	})

	Convey("Given an upstream response missing the data path", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"user not found"}],"data":{"recentAcSubmissionList":null}}`))
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("Then the error is the malformed kind", func() {
			_, err := client.RecentAcceptedSubmissions(context.Background(), "ghost", 15)
			So(err, ShouldWrap, leetcode.ErrMalformed)
		})
	})
}

func TestContestHistory(t *testing.T) {
	Convey("Given an upstream returning a mixed history", t, func() {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			_, _ = w.Write([]byte(`{"data":{"userContestRankingHistory":[
				{"attended":false,"trendDirection":"NONE","problemsSolved":0,"totalProblems":4,
				 "finishTimeInSeconds":0,"rating":1500,"ranking":0,"contest":null},
				{"attended":true,"trendDirection":"UP","problemsSolved":3,"totalProblems":4,
				 "finishTimeInSeconds":3600,"rating":1523.5,"ranking":812,
				 "contest":{"title":"Weekly Contest 371","startTime":1700000000,"titleSlug":"weekly-contest-371"}}
			]}}`))
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("When fetching", func() {
			entries, err := client.ContestHistory(context.Background(), "alice")

			Convey("Then all rows decode, attended or not", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Attended, ShouldBeFalse)
				So(entries[0].ContestTitle, ShouldBeEmpty)
				So(entries[1].Attended, ShouldBeTrue)
				So(entries[1].ContestTitle, ShouldEqual, "Weekly Contest 371")
				So(entries[1].StartTimeUnix, ShouldEqual, 1700000000)
				rating, ok := entries[1].Rating.Value()
				So(ok, ShouldBeTrue)
				So(rating, ShouldEqual, 1523.5)
			})

			Convey("And the request carries the exact field set", func() {
				query, _ := gotBody["query"].(string)
				So(query, ShouldContainSubstring, "userContestRankingHistory(username: $username)")
				So(query, ShouldContainSubstring, "finishTimeInSeconds")
				So(query, ShouldContainSubstring, "startTime")
			})
		})
	})

	Convey("Given a history that is not a list", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"userContestRankingHistory":{"oops":true}}}`))
		}))
		defer srv.Close()
		client := leetcode.New(leetcode.WithEndpoint(srv.URL))

		Convey("Then the error is the malformed kind", func() {
			_, err := client.ContestHistory(context.Background(), "alice")
			So(err, ShouldWrap, leetcode.ErrMalformed)
		})
	})

	Convey("Given an empty username", t, func() {
		client := leetcode.New()

		Convey("Then the call is rejected up front", func() {
			_, err := client.ContestHistory(context.Background(), "")
			So(err, ShouldWrap, leetcode.ErrEmptyUsername)
		})
	})
}
