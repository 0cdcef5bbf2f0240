package player

import (
	"sync"
	"testing"

	"github.com/cutplay-cli/cutplay/media"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeElement struct {
	mu            sync.Mutex
	notifications chan ElementEvent
	duration      float64
	loads         []string
	playCalls     int
	pauseCalls    int
	currentTime   float64
	volume        float64
	released      bool
}

func newFakeElement() *fakeElement {
	return &fakeElement{notifications: make(chan ElementEvent, 16)}
}

func (f *fakeElement) Load(url, mimeType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, url+"|"+mimeType)
	return nil
}

func (f *fakeElement) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls++
	return nil
}

func (f *fakeElement) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls++
	return nil
}

func (f *fakeElement) Paused() bool { return true }

func (f *fakeElement) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeElement) CurrentTime() float64 { return f.currentTime }

func (f *fakeElement) SetCurrentTime(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentTime = seconds
	return nil
}

func (f *fakeElement) SetVolume(volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
	return nil
}

func (f *fakeElement) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
	close(f.notifications)
	return nil
}

func (f *fakeElement) Notifications() <-chan ElementEvent { return f.notifications }

func (f *fakeElement) setDuration(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duration = seconds
}

type bridgeCall struct {
	Method string
	Value  any
}

type fakeBridge struct {
	mu       sync.Mutex
	messages chan []byte
	sent     []bridgeCall
	closed   bool
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{messages: make(chan []byte, 16)}
}

func (f *fakeBridge) Send(method string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, bridgeCall{Method: method, Value: value})
	return nil
}

func (f *fakeBridge) Messages() <-chan []byte { return f.messages }

func (f *fakeBridge) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	close(f.messages)
	return nil
}

func (f *fakeBridge) calls() []bridgeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bridgeCall, len(f.sent))
	copy(out, f.sent)
	return out
}

func testMedia() *media.Media {
	return &media.Media{
		ID: media.IDList{"vid-1", "vid-2"},
		Sources: []media.Source{
			{Files: []media.Definition{
				{URL: "https://cdn.test/low.mp4", MIME: "video/mp4", Quality: "360p"},
				{URL: "https://cdn.test/high.webm", MIME: "video/webm", Quality: "1080p"},
			}},
			{Files: []media.Definition{
				{URL: "https://cdn.test/alt.mp4", Quality: "720p"},
			}},
		},
		Thumbnail: "https://cdn.test/poster.jpg",
	}
}

func TestNew(t *testing.T) {
	Convey("Constructing adapters", t, func() {
		Convey("An unknown kind fails", func() {
			_, err := New(Kind("flash"), Options{})
			So(err, ShouldNotBeNil)
		})

		Convey("The html backend requires an element", func() {
			_, err := New(KindHTML, Options{ID: "p1"})
			So(err, ShouldNotBeNil)

			p, err := New(KindHTML, Options{ID: "p1", Element: newFakeElement()})
			So(err, ShouldBeNil)
			So(p.Kind(), ShouldEqual, KindHTML)
			So(p.ID(), ShouldEqual, "p1")
		})

		Convey("The iframe backends require a bridge", func() {
			_, err := New(KindVimeo, Options{ID: "p1"})
			So(err, ShouldNotBeNil)

			_, err = New(KindYoutube, Options{ID: "p1"})
			So(err, ShouldNotBeNil)

			p, err := New(KindVimeo, Options{ID: "p1", Bridge: newFakeBridge()})
			So(err, ShouldBeNil)
			So(p.Kind(), ShouldEqual, KindVimeo)
		})
	})
}

func TestParseKind(t *testing.T) {
	Convey("Parsing backend names", t, func() {
		for _, kind := range Kinds() {
			parsed, err := ParseKind(string(kind))
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, kind)
		}

		_, err := ParseKind("realplayer")
		So(err, ShouldNotBeNil)
	})
}

func TestBaseBehaviour(t *testing.T) {
	Convey("Shared adapter behaviour", t, func() {
		p, err := New(KindHTML, Options{ID: "p1", Element: newFakeElement()})
		So(err, ShouldBeNil)

		Convey("Nil media is rejected", func() {
			So(p.SetMedia(nil), ShouldNotBeNil)
		})

		Convey("Source selection is bounded by the media", func() {
			So(p.SetSource(0), ShouldNotBeNil)

			So(p.SetMedia(testMedia()), ShouldBeNil)
			So(p.SetSource(1), ShouldBeNil)
			So(p.SourceIndex(), ShouldEqual, 1)
			So(p.SetSource(2), ShouldNotBeNil)
			So(p.SetSource(-1), ShouldNotBeNil)
		})

		Convey("Replacing the media resets the source selection", func() {
			So(p.SetMedia(testMedia()), ShouldBeNil)
			So(p.SetSource(1), ShouldBeNil)
			So(p.SetMedia(testMedia()), ShouldBeNil)
			So(p.SourceIndex(), ShouldEqual, 0)
		})

		Convey("MIME falls back to mp4", func() {
			So(p.MIME(media.Definition{MIME: "video/webm"}), ShouldEqual, "video/webm")
			So(p.MIME(media.Definition{}), ShouldEqual, "video/mp4")
		})

		Convey("A fresh player is paused", func() {
			So(p.IsPaused(), ShouldBeTrue)
			So(p.IsPlaying(), ShouldBeFalse)
		})

		Convey("Thumbnail comes from the media", func() {
			So(p.Thumbnail(), ShouldEqual, "")
			So(p.SetMedia(testMedia()), ShouldBeNil)
			So(p.Thumbnail(), ShouldEqual, "https://cdn.test/poster.jpg")
		})
	})
}

func TestHTMLAdapter(t *testing.T) {
	Convey("The html adapter", t, func() {
		element := newFakeElement()
		p, err := New(KindHTML, Options{ID: "p1", Element: element})
		So(err, ShouldBeNil)
		So(p.SetMedia(testMedia()), ShouldBeNil)
		So(p.Initialize(), ShouldBeNil)

		Convey("Initialize is idempotent", func() {
			So(p.Initialize(), ShouldBeNil)
			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Metadata produces duration and readiness", func() {
			element.setDuration(120)
			element.notifications <- ElementEvent{Name: "loadedmetadata"}

			So(<-p.Events(), ShouldResemble, Event(DurationChange{Duration: 120000}))
			So(<-p.Events(), ShouldResemble, Event(Ready{}))

			Convey("and progress events carry milliseconds", func() {
				element.notifications <- ElementEvent{Name: "timeupdate", Seconds: 30}
				So(<-p.Events(), ShouldResemble, Event(PlayProgress{Time: 30000, Percent: 25}))

				element.notifications <- ElementEvent{Name: "progress", BufferedStart: 0, BufferedEnd: 60}
				So(<-p.Events(), ShouldResemble, Event(LoadProgress{LoadedStart: 0, LoadedPercent: 50}))
			})

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("State events track playback", func() {
			element.notifications <- ElementEvent{Name: "playing"}
			So(<-p.Events(), ShouldResemble, Event(Playing{}))
			So(p.IsPlaying(), ShouldBeTrue)

			element.notifications <- ElementEvent{Name: "pause"}
			So(<-p.Events(), ShouldResemble, Event(Pause{}))
			So(p.IsPaused(), ShouldBeTrue)

			element.notifications <- ElementEvent{Name: "ended"}
			So(<-p.Events(), ShouldResemble, Event(End{}))
			So(p.IsPlaying(), ShouldBeFalse)

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Native errors map onto the closed enum", func() {
			element.notifications <- ElementEvent{Name: "error", ErrorCode: 2}
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrNetwork}))

			element.notifications <- ElementEvent{Name: "error", ErrorCode: 4}
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrSrcNotSupported}))

			element.notifications <- ElementEvent{Name: "error", ErrorCode: 99}
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrUnknown}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Load picks the first definition and passes its type", func() {
			So(p.Load(), ShouldBeNil)

			element.mu.Lock()
			loads := append([]string(nil), element.loads...)
			element.mu.Unlock()
			So(loads, ShouldResemble, []string{"https://cdn.test/low.mp4|video/mp4"})

			Convey("and SetDefinition reloads with the new variant", func() {
				definitions := p.Definitions()
				So(definitions, ShouldHaveLength, 2)
				So(p.SetDefinition(definitions[1]), ShouldBeNil)

				element.mu.Lock()
				last := element.loads[len(element.loads)-1]
				element.mu.Unlock()
				So(last, ShouldEqual, "https://cdn.test/high.webm|video/webm")
			})

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Seek and volume convert to element units", func() {
			So(p.Seek(42500), ShouldBeNil)
			So(p.SetVolume(150), ShouldBeNil)

			element.mu.Lock()
			currentTime, volume := element.currentTime, element.volume
			element.mu.Unlock()
			So(currentTime, ShouldEqual, 42.5)
			So(volume, ShouldEqual, 1.0)

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("No embed URL exists", func() {
			So(p.SourceURL().IsAbsent(), ShouldBeTrue)
			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Destroy releases the element and closes the stream", func() {
			So(p.Destroy(), ShouldBeNil)

			element.mu.Lock()
			released := element.released
			element.mu.Unlock()
			So(released, ShouldBeTrue)

			_, open := <-p.Events()
			So(open, ShouldBeFalse)

			So(p.Destroy(), ShouldBeNil)
		})
	})
}

func TestVimeoAdapter(t *testing.T) {
	Convey("The vimeo adapter", t, func() {
		bridge := newFakeBridge()
		p, err := New(KindVimeo, Options{ID: "frame-1", Bridge: bridge})
		So(err, ShouldBeNil)
		So(p.SetMedia(testMedia()), ShouldBeNil)
		So(p.Initialize(), ShouldBeNil)

		Convey("Ready subscribes to the frame events", func() {
			bridge.messages <- []byte(`{"event":"ready"}`)
			So(<-p.Events(), ShouldResemble, Event(Ready{}))

			methods := make([]string, 0)
			for _, call := range bridge.calls() {
				So(call.Method, ShouldEqual, "addEventListener")
				methods = append(methods, call.Value.(string))
			}
			So(methods, ShouldResemble, []string{"loadProgress", "playProgress", "play", "pause", "finish", "error"})

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Progress messages convert to milliseconds", func() {
			bridge.messages <- []byte(`{"event":"loadProgress","data":{"percent":0.5,"duration":90}}`)
			So(<-p.Events(), ShouldResemble, Event(DurationChange{Duration: 90000}))
			So(<-p.Events(), ShouldResemble, Event(LoadProgress{LoadedStart: 0, LoadedPercent: 50}))

			bridge.messages <- []byte(`{"event":"playProgress","data":{"seconds":45,"percent":0.5}}`)
			So(<-p.Events(), ShouldResemble, Event(PlayProgress{Time: 45000, Percent: 50}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("State messages track playback", func() {
			bridge.messages <- []byte(`{"event":"play"}`)
			So(<-p.Events(), ShouldResemble, Event(Play{}))
			So(p.IsPlaying(), ShouldBeTrue)

			bridge.messages <- []byte(`{"event":"finish"}`)
			So(<-p.Events(), ShouldResemble, Event(End{}))
			So(p.IsPaused(), ShouldBeTrue)

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Privacy errors surface as permission failures", func() {
			bridge.messages <- []byte(`{"event":"error","data":{"message":"This video has privacy restrictions"}}`)
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrPermission}))

			bridge.messages <- []byte(`{"event":"error","data":{"message":"something broke"}}`)
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrUnknown}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Malformed messages are dropped", func() {
			bridge.messages <- []byte(`not json`)
			bridge.messages <- []byte(`{"event":"pause"}`)
			So(<-p.Events(), ShouldResemble, Event(Pause{}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("The embed URL carries the player id", func() {
			url, ok := p.SourceURL().Get()
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://player.vimeo.com/video/vid-1?api=1&player_id=frame-1")

			So(p.SetSource(1), ShouldBeNil)
			url, _ = p.SourceURL().Get()
			So(url, ShouldEqual, "https://player.vimeo.com/video/vid-2?api=1&player_id=frame-1")

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Quality is adaptive", func() {
			So(p.Definitions(), ShouldBeNil)
			So(p.SetDefinition(media.Definition{}), ShouldNotBeNil)

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Destroy closes the bridge", func() {
			So(p.Destroy(), ShouldBeNil)

			bridge.mu.Lock()
			closed := bridge.closed
			bridge.mu.Unlock()
			So(closed, ShouldBeTrue)

			_, open := <-p.Events()
			So(open, ShouldBeFalse)
		})
	})
}

func TestYoutubeAdapter(t *testing.T) {
	Convey("The youtube adapter", t, func() {
		bridge := newFakeBridge()
		p, err := New(KindYoutube, Options{ID: "frame-2", Bridge: bridge})
		So(err, ShouldBeNil)
		So(p.SetMedia(testMedia()), ShouldBeNil)
		So(p.Initialize(), ShouldBeNil)

		Convey("Readiness and state changes normalize", func() {
			bridge.messages <- []byte(`{"event":"onReady"}`)
			So(<-p.Events(), ShouldResemble, Event(Ready{}))

			bridge.messages <- []byte(`{"event":"onStateChange","info":1}`)
			So(<-p.Events(), ShouldResemble, Event(Playing{}))
			So(<-p.Events(), ShouldResemble, Event(Play{}))
			So(p.IsPlaying(), ShouldBeTrue)

			bridge.messages <- []byte(`{"event":"onStateChange","info":3}`)
			So(<-p.Events(), ShouldResemble, Event(Waiting{}))

			bridge.messages <- []byte(`{"event":"onStateChange","info":2}`)
			So(<-p.Events(), ShouldResemble, Event(Pause{}))
			So(p.IsPaused(), ShouldBeTrue)

			bridge.messages <- []byte(`{"event":"onStateChange","info":0}`)
			So(<-p.Events(), ShouldResemble, Event(End{}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Info deliveries fan out into duration and progress", func() {
			bridge.messages <- []byte(`{"event":"infoDelivery","info":{"currentTime":12,"duration":60,"videoLoadedFraction":0.25}}`)

			So(<-p.Events(), ShouldResemble, Event(DurationChange{Duration: 60000}))
			So(<-p.Events(), ShouldResemble, Event(LoadProgress{LoadedStart: 0, LoadedPercent: 25}))
			So(<-p.Events(), ShouldResemble, Event(PlayProgress{Time: 12000, Percent: 20}))

			Convey("and an unchanged duration is not re-announced", func() {
				bridge.messages <- []byte(`{"event":"infoDelivery","info":{"currentTime":13,"duration":60}}`)
				So(<-p.Events(), ShouldResemble, Event(PlayProgress{Time: 13000, Percent: 21.666666666666668}))
			})

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Error codes map onto the closed enum", func() {
			bridge.messages <- []byte(`{"event":"onError","info":150}`)
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrPermission}))

			bridge.messages <- []byte(`{"event":"onError","info":100}`)
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrNoSource}))

			bridge.messages <- []byte(`{"event":"onError","info":5}`)
			So(<-p.Events(), ShouldResemble, Event(Error{Code: MediaErrDecode}))

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("The embed URL uses the selected source", func() {
			url, ok := p.SourceURL().Get()
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://www.youtube.com/embed/vid-1?enablejsapi=1")

			So(p.Destroy(), ShouldBeNil)
		})

		Convey("Load and controls go through the bridge", func() {
			So(p.Load(), ShouldBeNil)
			So(p.Seek(9000), ShouldBeNil)
			So(p.SetVolume(70), ShouldBeNil)

			So(bridge.calls(), ShouldResemble, []bridgeCall{
				{Method: "loadVideoById", Value: "vid-1"},
				{Method: "seekTo", Value: 9.0},
				{Method: "setVolume", Value: 70},
			})

			So(p.Destroy(), ShouldBeNil)
		})
	})
}

func TestConcurrentStateReads(t *testing.T) {
	Convey("Playback state stays readable while events stream", t, func() {
		element := newFakeElement()
		p, err := New(KindHTML, Options{ID: "p1", Element: element})
		So(err, ShouldBeNil)
		So(p.SetMedia(testMedia()), ShouldBeNil)
		So(p.Initialize(), ShouldBeNil)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for range p.Events() {
				p.IsPlaying()
				p.IsPaused()
			}
		}()

		for i := 0; i < 100; i++ {
			element.notifications <- ElementEvent{Name: "playing"}
			element.notifications <- ElementEvent{Name: "pause"}
		}

		So(p.Destroy(), ShouldBeNil)
		<-done
	})
}

func TestErrorCode(t *testing.T) {
	Convey("Error codes carry stable names and messages", t, func() {
		So(MediaErrDecode.String(), ShouldEqual, "MEDIA_ERR_DECODE")
		So(MediaErrNoSource.Message(), ShouldContainSubstring, "source")
		So(ErrorCode(42).String(), ShouldEqual, "MEDIA_ERR_UNKNOWN")
		So(ErrorCode(42).Message(), ShouldNotBeEmpty)
	})
}
