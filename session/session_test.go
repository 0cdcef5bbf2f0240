package session

import (
	"testing"

	"github.com/cutplay-cli/cutplay/filesystem"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/player"
	"github.com/cutplay-cli/cutplay/position"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakePlayer struct {
	media       *media.Media
	sourceIndex int
	events      chan player.Event
	playing     bool
	initialized bool
	loaded      bool
	destroyed   bool
	seeks       []int64
	volume      int
	toggles     int
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{events: make(chan player.Event, 16)}
}

func (f *fakePlayer) SetMedia(m *media.Media) error {
	f.media = m
	return nil
}

func (f *fakePlayer) SetSource(index int) error {
	f.sourceIndex = index
	return nil
}

func (f *fakePlayer) SourceIndex() int { return f.sourceIndex }

func (f *fakePlayer) SourceURL() mo.Option[string] { return mo.None[string]() }

func (f *fakePlayer) MIME(media.Definition) string { return "video/mp4" }

func (f *fakePlayer) Definitions() []media.Definition { return nil }

func (f *fakePlayer) Thumbnail() string { return "" }

func (f *fakePlayer) Initialize() error {
	f.initialized = true
	return nil
}

func (f *fakePlayer) Load() error {
	f.loaded = true
	return nil
}

func (f *fakePlayer) IsPaused() bool { return !f.playing }

func (f *fakePlayer) IsPlaying() bool { return f.playing }

func (f *fakePlayer) PlayPause() error {
	f.playing = !f.playing
	f.toggles++
	return nil
}

func (f *fakePlayer) SetVolume(level int) error {
	f.volume = level
	return nil
}

func (f *fakePlayer) Seek(ms int64) error {
	f.seeks = append(f.seeks, ms)
	return nil
}

func (f *fakePlayer) SetDefinition(media.Definition) error { return nil }

func (f *fakePlayer) Kind() player.Kind { return player.KindHTML }

func (f *fakePlayer) ID() string { return "fake" }

func (f *fakePlayer) Events() <-chan player.Event { return f.events }

func (f *fakePlayer) Destroy() error {
	if !f.destroyed {
		f.destroyed = true
		close(f.events)
	}
	return nil
}

func cutMedia() *media.Media {
	return &media.Media{
		ID: media.IDList{"vid-1"},
		Cut: []media.CutEdge{
			{Type: media.EdgeBegin, Value: 2000},
			{Type: media.EdgeEnd, Value: 6000},
		},
	}
}

func TestNewSession(t *testing.T) {
	Convey("Constructing a session", t, func() {
		Convey("Requires media and a player", func() {
			_, err := New(Options{Player: newFakePlayer()})
			So(err, ShouldNotBeNil)

			_, err = New(Options{Media: cutMedia()})
			So(err, ShouldNotBeNil)
		})

		Convey("Attaches the media to player and timeline", func() {
			fake := newFakePlayer()
			s, err := New(Options{Media: cutMedia(), Player: fake})
			So(err, ShouldBeNil)
			So(fake.media, ShouldNotBeNil)
			So(s.Timeline().CutsEnabled(), ShouldBeTrue)
			So(s.Player(), ShouldEqual, fake)
		})
	})
}

func TestSessionConfig(t *testing.T) {
	Convey("Starting a session with a volume applies it to the backend", t, func() {
		fake := newFakePlayer()
		s, err := New(Options{Media: cutMedia(), Player: fake, Volume: 55})
		So(err, ShouldBeNil)

		So(s.Start(), ShouldBeNil)
		So(fake.volume, ShouldEqual, 55)

		So(s.Close(), ShouldBeNil)
	})

	Convey("A zero volume leaves the backend untouched", t, func() {
		fake := newFakePlayer()
		fake.volume = 70
		s, err := New(Options{Media: cutMedia(), Player: fake})
		So(err, ShouldBeNil)

		So(s.Start(), ShouldBeNil)
		So(fake.volume, ShouldEqual, 70)

		So(s.Close(), ShouldBeNil)
	})

	Convey("FromConfig wires the configured playback behaviour", t, func() {
		viper.Set(key.PlayerRememberPosition, true)
		viper.Set(key.PlayerStartAtSavedTime, true)
		viper.Set(key.PlayerCompletionPercent, 90)
		viper.Set(key.PlayerVolume, 80)
		defer viper.Reset()

		fake := newFakePlayer()
		s, err := FromConfig(cutMedia(), fake)
		So(err, ShouldBeNil)
		So(s.remember, ShouldBeTrue)
		So(s.resume, ShouldBeTrue)
		So(s.completion, ShouldEqual, 90)

		So(s.Start(), ShouldBeNil)
		So(fake.volume, ShouldEqual, 80)

		So(s.Close(), ShouldBeNil)
	})
}

func TestSessionTranslation(t *testing.T) {
	Convey("Given a running session over a cut media", t, func() {
		fake := newFakePlayer()
		s, err := New(Options{Media: cutMedia(), Player: fake})
		So(err, ShouldBeNil)
		So(s.Start(), ShouldBeNil)
		So(fake.initialized, ShouldBeTrue)
		So(fake.loaded, ShouldBeTrue)

		Convey("Ready passes through once, even when double-fired", func() {
			fake.events <- player.Ready{}
			fake.events <- player.Ready{}
			fake.events <- player.Pause{}

			So(<-s.Events(), ShouldResemble, Event(Ready{}))
			So(<-s.Events(), ShouldResemble, Event(Pause{}))

			So(s.Close(), ShouldBeNil)
		})

		Convey("Duration changes re-emit the cut duration", func() {
			fake.events <- player.DurationChange{Duration: 10000}
			So(<-s.Events(), ShouldResemble, Event(DurationChange{Duration: 4000}))

			Convey("and an unchanged duration is swallowed", func() {
				fake.events <- player.DurationChange{Duration: 10000}
				fake.events <- player.Waiting{}
				So(<-s.Events(), ShouldResemble, Event(Waiting{}))
			})

			Convey("Progress rebases onto the cut window", func() {
				fake.events <- player.PlayProgress{Time: 4000, Percent: 40}
				So(<-s.Events(), ShouldResemble, Event(PlayProgress{Time: 2000, Percent: 50}))
			})

			Convey("Load progress rescales onto the cut window", func() {
				fake.events <- player.LoadProgress{LoadedStart: 25, LoadedPercent: 15}
				So(<-s.Events(), ShouldResemble, Event(LoadProgress{LoadedStart: 12.5, LoadedPercent: 37.5}))
			})

			Convey("Crossing the cut end rewinds and finishes", func() {
				fake.playing = true
				fake.events <- player.PlayProgress{Time: 6000, Percent: 60}

				So(<-s.Events(), ShouldResemble, Event(End{}))
				So(fake.playing, ShouldBeFalse)
				So(fake.seeks, ShouldResemble, []int64{2000})
			})

			So(s.Close(), ShouldBeNil)
		})

		Convey("Errors carry their user-facing message", func() {
			fake.events <- player.Error{Code: player.MediaErrDecode}

			ev := <-s.Events()
			failure, ok := ev.(Error)
			So(ok, ShouldBeTrue)
			So(failure.Code, ShouldEqual, player.MediaErrDecode)
			So(failure.Message, ShouldEqual, player.MediaErrDecode.Message())

			So(s.Close(), ShouldBeNil)
		})

		Convey("Close drains and closes the stream", func() {
			So(s.Close(), ShouldBeNil)
			_, open := <-s.Events()
			So(open, ShouldBeFalse)
		})
	})
}

func TestSessionPositions(t *testing.T) {
	Convey("Given a session that remembers positions", t, func() {
		So(position.Remove("vid-1"), ShouldBeNil)

		fake := newFakePlayer()
		s, err := New(Options{Media: cutMedia(), Player: fake, Remember: true, Resume: true})
		So(err, ShouldBeNil)
		So(s.Start(), ShouldBeNil)

		Convey("Progress persists the cut-relative position", func() {
			fake.events <- player.DurationChange{Duration: 10000}
			fake.events <- player.PlayProgress{Time: 5000, Percent: 50}

			So(<-s.Events(), ShouldResemble, Event(DurationChange{Duration: 4000}))
			So(<-s.Events(), ShouldResemble, Event(PlayProgress{Time: 3000, Percent: 75}))

			saved, err := position.Get("vid-1")
			So(err, ShouldBeNil)
			So(saved.MustGet(), ShouldResemble, position.Record{Time: 3000, Percent: 75})

			Convey("and finishing clears it", func() {
				fake.events <- player.PlayProgress{Time: 6500, Percent: 65}
				So(<-s.Events(), ShouldResemble, Event(End{}))

				saved, err := position.Get("vid-1")
				So(err, ShouldBeNil)
				So(saved.IsAbsent(), ShouldBeTrue)
			})

			So(s.Close(), ShouldBeNil)
		})

		Convey("Reaching the completion threshold discards the position", func() {
			So(s.Close(), ShouldBeNil)

			threshold := newFakePlayer()
			ts, err := New(Options{Media: cutMedia(), Player: threshold, Remember: true, Completion: 90})
			So(err, ShouldBeNil)
			So(ts.Start(), ShouldBeNil)

			threshold.events <- player.DurationChange{Duration: 10000}
			threshold.events <- player.PlayProgress{Time: 5800, Percent: 58}

			So(<-ts.Events(), ShouldResemble, Event(DurationChange{Duration: 4000}))
			So(<-ts.Events(), ShouldResemble, Event(PlayProgress{Time: 3800, Percent: 95}))

			saved, err := position.Get("vid-1")
			So(err, ShouldBeNil)
			So(saved.IsAbsent(), ShouldBeTrue)

			So(ts.Close(), ShouldBeNil)
		})

		Convey("A natural end clears the resume point too", func() {
			So(position.Save("vid-1", position.Record{Time: 1234, Percent: 10}), ShouldBeNil)
			fake.events <- player.End{}
			So(<-s.Events(), ShouldResemble, Event(End{}))

			saved, err := position.Get("vid-1")
			So(err, ShouldBeNil)
			So(saved.IsAbsent(), ShouldBeTrue)

			So(s.Close(), ShouldBeNil)
		})

		So(s.Close(), ShouldBeNil)
	})

	Convey("Given a saved resume point", t, func() {
		So(position.Save("vid-1", position.Record{Time: 1500, Percent: 37.5}), ShouldBeNil)

		fake := newFakePlayer()
		s, err := New(Options{Media: cutMedia(), Player: fake, Remember: true, Resume: true})
		So(err, ShouldBeNil)
		So(s.Start(), ShouldBeNil)

		Convey("Readiness seeks to the saved cut position in real time", func() {
			fake.events <- player.Ready{}
			So(<-s.Events(), ShouldResemble, Event(Ready{}))
			So(fake.seeks, ShouldResemble, []int64{3500})
		})

		So(s.Close(), ShouldBeNil)
		So(position.Remove("vid-1"), ShouldBeNil)
	})
}
