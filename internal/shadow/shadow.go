// Package shadow tracks the managed entities ("shadows") of the facility and
// who is assigned to each. The data is keyed to the logged-in identity, so
// it is reset together with the narrative session.
package shadow

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"daydream/internal/logging"
)

// StorageName is the blob name. The suffix is the schema version: renaming
// it drops older blobs.
const StorageName = "daydream-shadow-storage-v3"

// ErrUnknownCode is returned for a shadow code that does not exist.
var ErrUnknownCode = errors.New("unknown shadow code")

// Grade ranks a shadow from A (benign) to F (hazardous).
type Grade string

// Point is a position on the floor map, in percent.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is one managed shadow.
type Entity struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Grade        Grade  `json:"grade"`
	LocationText string `json:"locationText"`
	Floor        int    `json:"floor"`
	Coordinates  Point  `json:"coordinates"`
	AssigneeName string `json:"assigneeName,omitempty"`
	AssigneeTeam string `json:"assigneeTeam,omitempty"`
	IsAssigned   bool   `json:"isAssigned"`
	Note         string `json:"note,omitempty"`
}

// Persister stores named blobs.
type Persister interface {
	Load(name string) ([]byte, bool, error)
	Save(name string, data []byte) error
}

func initialShadows() []Entity {
	return []Entity{
		{Code: "Qterw-E-63", Name: "안녕 교통정보", Grade: "E", LocationText: "본관 13F D조 사무실", Floor: 13,
			Coordinates: Point{20, 20}, AssigneeName: "박민성", AssigneeTeam: "D조", IsAssigned: true},
		{Code: "Qterw-E-2884", Name: "거울 속의 낯선 얼굴", Grade: "E", LocationText: "본관 10F 화장실", Floor: 10,
			Coordinates: Point{80, 80}},
		{Code: "Qterw-E-1002", Name: "빈 회의실의 난상토론", Grade: "E", LocationText: "본관 13F 응접실", Floor: 13,
			Coordinates: Point{40, 80}, Note: "자정 이후 발생"},
		{Code: "Qterw-E-7", Name: "우는 아이의 낙서", Grade: "E", LocationText: "본관 12F 엘리베이터 앞 복도", Floor: 12,
			Coordinates: Point{80, 50}},
		{Code: "Qterw-F-409", Name: "깜짝 상자!", Grade: "F", LocationText: "본관 1F 엘리베이터 우측", Floor: 1,
			Coordinates: Point{95, 20}, Note: "폭발 시 즉시 보안팀 호출할 것 (비용 청구 X)"},
		{Code: "Qterw-F-6879", Name: "발신자 표시 제한", Grade: "F", LocationText: "본관 14F 회의실", Floor: 14,
			Coordinates: Point{60, 20}},
		{Code: "Qterw-F-2073", Name: "양자택일", Grade: "F", LocationText: "별관 2F 격리실 205호", Floor: 999,
			AssigneeName: "김솔음", AssigneeTeam: "D조", IsAssigned: true, Note: "야간 점검 필수"},
	}
}

type blob struct {
	State struct {
		Shadows []Entity `json:"shadows"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store holds the shadow roster.
type Store struct {
	mu        sync.Mutex
	shadows   []Entity
	persister Persister
}

// New creates a Store hydrated from p. A nil persister keeps it in memory.
func New(p Persister) *Store {
	s := &Store{shadows: initialShadows(), persister: p}
	if p == nil {
		return s
	}
	data, ok, err := p.Load(StorageName)
	if err != nil {
		logging.StoreError("shadow: load failed: %v", err)
		return s
	}
	if !ok {
		return s
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil || len(b.State.Shadows) == 0 {
		logging.Get(logging.CategoryStore).Warn("shadow: discarding stored roster: %v", err)
		return s
	}
	s.shadows = b.State.Shadows
	return s
}

// All returns the roster in display order.
func (s *Store) All() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entity(nil), s.shadows...)
}

// Get returns the shadow with the given code.
func (s *Store) Get(code string) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.shadows {
		if e.Code == code {
			return e, nil
		}
	}
	return Entity{}, fmt.Errorf("%w: %s", ErrUnknownCode, code)
}

// AssignedTo lists the shadows assigned to name.
func (s *Store) AssignedTo(name string) []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entity
	for _, e := range s.shadows {
		if e.IsAssigned && e.AssigneeName == name {
			out = append(out, e)
		}
	}
	return out
}

// Assign hands the shadow to name of team.
func (s *Store) Assign(code, name, team string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shadows {
		if s.shadows[i].Code != code {
			continue
		}
		s.shadows[i].AssigneeName = name
		s.shadows[i].AssigneeTeam = team
		s.shadows[i].IsAssigned = true
		s.persistLocked()
		logging.Session("shadow %s assigned to %s (%s)", code, name, team)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCode, code)
}

// Reset restores the initial roster. It satisfies narrative.Resetter.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shadows = initialShadows()
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	var b blob
	b.State.Shadows = s.shadows
	data, err := json.Marshal(b)
	if err != nil {
		logging.StoreError("shadow: marshal failed: %v", err)
		return
	}
	if err := s.persister.Save(StorageName, data); err != nil {
		logging.StoreError("shadow: save failed: %v", err)
	}
}
