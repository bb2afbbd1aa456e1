package jellyfin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(handler http.HandlerFunc) (*httptest.Server, *Client) {
	server := httptest.NewServer(handler)
	client := New(server.URL, "test-token", "user-1", "device-1")
	return server, client
}

func TestItem(t *testing.T) {
	Convey("Item", t, func() {
		Convey("Should decode the detail record", func() {
			var gotPath, gotAuth string
			server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")

				_ = json.NewEncoder(w).Encode(Item{
					ID:           "item-1",
					Name:         "Some Movie",
					Type:         KindMovie,
					RunTimeTicks: 72000000000,
					MediaSources: []MediaSource{{ID: "src-1", Container: "mkv"}},
					Chapters:     []Chapter{{StartPositionTicks: 0, Name: "Chapter 1"}},
				})
			})
			defer server.Close()

			item, err := client.Item("item-1")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/Users/user-1/Items/item-1")
			So(gotAuth, ShouldContainSubstring, `Token="test-token"`)
			So(item.Name, ShouldEqual, "Some Movie")
			So(item.MediaSources, ShouldHaveLength, 1)
			So(item.Chapters, ShouldHaveLength, 1)
		})

		Convey("Should map 401 to ErrUnauthorized", func() {
			server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			defer server.Close()

			_, err := client.Item("item-1")
			So(errors.Is(err, ErrUnauthorized), ShouldBeTrue)
		})
	})
}

func TestDisplayName(t *testing.T) {
	Convey("DisplayName", t, func() {
		Convey("Episodes carry series numbering", func() {
			item := Item{Type: KindEpisode, SeriesName: "Some Show", ParentIndexNumber: 2, IndexNumber: 5, Name: "The One"}
			So(item.DisplayName(), ShouldEqual, "Some Show S02E05 - The One")
		})

		Convey("Movies use the plain name", func() {
			item := Item{Type: KindMovie, Name: "Some Movie"}
			So(item.DisplayName(), ShouldEqual, "Some Movie")
		})
	})
}

func TestStreamURL(t *testing.T) {
	Convey("StreamURL", t, func() {
		client := New("http://server/", "tok", "user-1", "device-1")

		Convey("Should build an HLS URL with the source id", func() {
			url, err := client.StreamURL("item-1", "src-1", 0)
			So(err, ShouldBeNil)
			So(url, ShouldStartWith, "http://server/Videos/item-1/main.m3u8?")
			So(url, ShouldContainSubstring, "MediaSourceId=src-1")
			So(url, ShouldNotContainSubstring, "VideoBitrate")
		})

		Convey("Should include a bitrate cap when set", func() {
			url, err := client.StreamURL("item-1", "src-1", 8000000)
			So(err, ShouldBeNil)
			So(url, ShouldContainSubstring, "VideoBitrate=8000000")
		})

		Convey("Should reject missing identifiers", func() {
			_, err := client.StreamURL("", "src-1", 0)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSubtitleTracks(t *testing.T) {
	Convey("SubtitleTracks", t, func() {
		Convey("Should keep only subtitle streams", func() {
			source := &MediaSource{MediaStreams: []MediaStream{
				{Index: 0, Type: "Video", Codec: "h264"},
				{Index: 1, Type: "Audio", Language: "jpn"},
				{Index: 2, Type: "Subtitle", Language: "eng", DisplayTitle: "English", IsDefault: true},
				{Index: 3, Type: "Subtitle", Language: "ger"},
			}}

			tracks := SubtitleTracks(source)
			So(tracks, ShouldHaveLength, 2)
			So(tracks[0].Label, ShouldEqual, "English")
			So(tracks[0].Default, ShouldBeTrue)
			So(tracks[1].Label, ShouldEqual, "Track 3")
		})

		Convey("A nil source yields no tracks", func() {
			So(SubtitleTracks(nil), ShouldBeEmpty)
		})
	})
}

func TestSubtitleEvents(t *testing.T) {
	Convey("SubtitleEvents", t, func() {
		var gotPath string
		server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(subtitleResponse{TrackEvents: []TrackEvent{
				{ID: "1", Text: "Hello", StartPositionTicks: 100000000},
			}})
		})
		defer server.Close()

		events, err := client.SubtitleEvents("item-1", "src-1", 2)
		So(err, ShouldBeNil)
		So(gotPath, ShouldEqual, "/Videos/item-1/src-1/Subtitles/2/0/Stream.js")
		So(events, ShouldHaveLength, 1)
		So(events[0].Text, ShouldEqual, "Hello")
	})
}

func TestMediaSegments(t *testing.T) {
	Convey("MediaSegments", t, func() {
		Convey("Should request intro and outro kinds", func() {
			var gotPath string
			var gotTypes []string
			server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotTypes = r.URL.Query()["includeSegmentTypes"]
				_ = json.NewEncoder(w).Encode(segmentsResponse{Items: []MediaSegment{
					{Type: SegmentIntro, StartTicks: 50000000, EndTicks: 350000000},
				}})
			})
			defer server.Close()

			segments, err := client.MediaSegments("item-1")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/MediaSegments/item-1")
			So(gotTypes, ShouldResemble, []string{"Intro", "Outro"})
			So(segments, ShouldHaveLength, 1)
			So(segments[0].Type, ShouldEqual, SegmentIntro)
		})

		Convey("An empty list is not a failure", func() {
			server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(segmentsResponse{})
			})
			defer server.Close()

			segments, err := client.MediaSegments("item-1")
			So(err, ShouldBeNil)
			So(segments, ShouldBeEmpty)
		})
	})
}

func TestSessionReports(t *testing.T) {
	Convey("Session reporting", t, func() {
		var gotPath string
		var gotBody map[string]any

		server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusNoContent)
		})
		defer server.Close()

		Convey("Start carries session identity and capabilities", func() {
			err := client.ReportPlaybackStart("item-1", "src-1", "session-1")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/Sessions/Playing")
			So(gotBody["PlaySessionId"], ShouldEqual, "session-1")
			So(gotBody["CanSeek"], ShouldEqual, true)
		})

		Convey("Progress carries position and pause state", func() {
			err := client.ReportPlaybackProgress("item-1", "src-1", "session-1", 1234, true)
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/Sessions/Playing/Progress")
			So(gotBody["PositionTicks"], ShouldEqual, 1234)
			So(gotBody["IsPaused"], ShouldEqual, true)
		})

		Convey("Stopped carries the final position", func() {
			err := client.ReportPlaybackStopped("item-1", "src-1", "session-1", 5678)
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/Sessions/Playing/Stopped")
			So(gotBody["PositionTicks"], ShouldEqual, 5678)
		})
	})
}

func TestAuthenticateRequest(t *testing.T) {
	Convey("Authenticate", t, func() {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")

			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["Pw"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			_, _ = w.Write([]byte(`{"AccessToken":"tok","User":{"Id":"user-1","Name":"demo"}}`))
		}))
		defer server.Close()

		Convey("Should return credentials on success", func() {
			creds, err := Authenticate(server.URL+"/", "demo", "hunter2")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/Users/AuthenticateByName")
			So(gotAuth, ShouldContainSubstring, "MediaBrowser Client=")
			So(creds.AccessToken, ShouldEqual, "tok")
			So(creds.UserID, ShouldEqual, "user-1")
			So(creds.ServerURL, ShouldEqual, strings.TrimRight(server.URL, "/"))
			So(creds.DeviceID, ShouldNotBeEmpty)
		})

		Convey("Should reject bad credentials", func() {
			_, err := Authenticate(server.URL, "demo", "wrong")
			So(err, ShouldNotBeNil)
		})
	})
}
