// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"sync"

	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/availability"
	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/stats"
	"github.com/trezcool/kocha/core/team"
)

type DB struct {
	sync.RWMutex

	teams        map[string]*team.Team
	players      map[string]*player.Player
	events       map[string]*event.Event
	drills       map[string]*drill.Drill
	eventDrills  map[string]map[string]int // event id -> drill id -> position
	attendance   map[string]map[string]attendance.Record
	availability map[string]map[string]availability.Record
	stats        map[string]map[string]stats.PerformanceStat
}

func Open() (*DB, error) {
	return &DB{
		teams:        make(map[string]*team.Team),
		players:      make(map[string]*player.Player),
		events:       make(map[string]*event.Event),
		drills:       make(map[string]*drill.Drill),
		eventDrills:  make(map[string]map[string]int),
		attendance:   make(map[string]map[string]attendance.Record),
		availability: make(map[string]map[string]availability.Record),
		stats:        make(map[string]map[string]stats.PerformanceStat),
	}, nil
}
