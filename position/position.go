// Package position persists playback resume points per media, so a
// viewer can pick up where they left off.
package position

import (
	"sync"
	"time"

	"github.com/cutplay-cli/cutplay/filesystem"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Record is one saved resume point. Time is in cut milliseconds so a
// change of the cut configuration invalidates nothing; Percent tracks
// completion against the cut duration.
type Record struct {
	Time    int64   `json:"time"`
	Percent float64 `json:"percent"`
}

// cacher provides an abstracted, disk-backed registry for playback
// positions. Records expire after the configured lifetime.
var cacher = sync.OnceValue(func() *gache.Cache[map[string]Record] {
	return gache.New[map[string]Record](&gache.Options{
		Path:       where.Positions(),
		Lifetime:   time.Hour * time.Duration(viper.GetInt(key.PositionsLifetimeHours)),
		FileSystem: &filesystem.GacheFs{},
	})
})

func all() (map[string]Record, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]Record), nil
	}
	return cached, nil
}

// Get returns the saved resume point of a media, if any.
func Get(mediaID string) (mo.Option[Record], error) {
	saved, err := all()
	if err != nil {
		return mo.None[Record](), err
	}

	record, ok := saved[mediaID]
	if !ok {
		return mo.None[Record](), nil
	}
	return mo.Some(record), nil
}

// Save stores the resume point of a media, replacing any previous one.
func Save(mediaID string, record Record) error {
	saved, err := all()
	if err != nil {
		return err
	}

	saved[mediaID] = record
	return cacher().Set(saved)
}

// Remove deletes the resume point of a media. Removing an absent
// record is a no-op.
func Remove(mediaID string) error {
	saved, err := all()
	if err != nil {
		return err
	}

	delete(saved, mediaID)
	return cacher().Set(saved)
}
