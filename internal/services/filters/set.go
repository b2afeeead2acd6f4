// Package filters implements the two-phase filter pipeline used by list
// views: a staged set the user edits, an applied set that drives the remote
// query and pagination, and a client-only refinement pass over the page the
// server returned.
package filters

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// Key identifies one filter.
type Key string

const (
	KeySearch      Key = "search"
	KeyStatus      Key = "status"
	KeyAgent       Key = "agentId"
	KeyPhone       Key = "phone"
	KeyMinDuration Key = "minDuration"
	KeyMaxDuration Key = "maxDuration"
	KeyDateFrom    Key = "dateFrom"
	KeyDateTo      Key = "dateTo"
)

// Keys lists every filter key in display order.
var Keys = []Key{
	KeySearch,
	KeyStatus,
	KeyAgent,
	KeyPhone,
	KeyMinDuration,
	KeyMaxDuration,
	KeyDateFrom,
	KeyDateTo,
}

const keyCount = 8

func (k Key) index() int {
	for i, key := range Keys {
		if key == k {
			return i
		}
	}
	return -1
}

// ParseKey validates a filter key name.
func ParseKey(name string) (Key, bool) {
	k := Key(name)
	return k, k.index() >= 0
}

// ServerEvaluable reports whether the remote API accepts k as a query
// parameter. The others are applied locally to the fetched page.
func (k Key) ServerEvaluable() bool {
	switch k {
	case KeyStatus, KeyAgent, KeyPhone, KeyDateFrom, KeyDateTo:
		return true
	}
	return false
}

// Entry is one active filter.
type Entry struct {
	Key   Key    `json:"key"`
	Value string `json:"value"`
}

// Set is an immutable filter set. The zero value is the empty set. Sets are
// comparable with ==.
type Set struct {
	values [keyCount]string
}

// NewSet builds a set from entries; unknown keys are ignored.
func NewSet(entries ...Entry) Set {
	var s Set
	for _, e := range entries {
		s = s.With(e.Key, e.Value)
	}
	return s
}

// FromMap builds a set from a key/value map; unknown keys are ignored.
func FromMap(m map[string]string) Set {
	var s Set
	for name, value := range m {
		if k, ok := ParseKey(name); ok {
			s = s.With(k, value)
		}
	}
	return s
}

// With returns a copy of s with k set to value. A blank value removes k.
func (s Set) With(k Key, value string) Set {
	i := k.index()
	if i < 0 {
		return s
	}
	s.values[i] = strings.TrimSpace(value)
	return s
}

// Without returns a copy of s with k removed.
func (s Set) Without(k Key) Set {
	return s.With(k, "")
}

// Get returns the value of k, or "" when unset.
func (s Set) Get(k Key) string {
	i := k.index()
	if i < 0 {
		return ""
	}
	return s.values[i]
}

// Has reports whether k is set.
func (s Set) Has(k Key) bool {
	return s.Get(k) != ""
}

// IsEmpty reports whether no filter is set.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// Active returns the set filters in display order.
func (s Set) Active() []Entry {
	entries := make([]Entry, 0, keyCount)
	for i, k := range Keys {
		if s.values[i] != "" {
			entries = append(entries, Entry{Key: k, Value: s.values[i]})
		}
	}
	return entries
}

// Map returns the set filters as a map.
func (s Set) Map() map[string]string {
	m := make(map[string]string)
	for _, e := range s.Active() {
		m[string(e.Key)] = e.Value
	}
	return m
}

// Server returns the server-evaluable part of s.
func (s Set) Server() Set {
	var out Set
	for i, k := range Keys {
		if k.ServerEvaluable() {
			out.values[i] = s.values[i]
		}
	}
	return out
}

// Client returns the client-only part of s.
func (s Set) Client() Set {
	var out Set
	for i, k := range Keys {
		if !k.ServerEvaluable() {
			out.values[i] = s.values[i]
		}
	}
	return out
}

// Query encodes the server-evaluable filters with page and page size.
// Client-only filters are never included.
func (s Set) Query(page, pageSize int) url.Values {
	q := url.Values{}
	for _, e := range s.Server().Active() {
		q.Set(string(e.Key), e.Value)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// MarshalJSON encodes the set as an object of active filters.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes an object of filters, ignoring unknown keys.
func (s *Set) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = FromMap(m)
	return nil
}

// Gates are the validation gates over a staged set.
type Gates struct {
	DateRangeValid     bool `json:"dateRangeValid"`
	DurationRangeValid bool `json:"durationRangeValid"`
	FormatValid        bool `json:"formatValid"`
}

// OK reports whether every gate holds.
func (g Gates) OK() bool {
	return g.DateRangeValid && g.DurationRangeValid && g.FormatValid
}

// Err returns a validation error naming the first failing constraint.
func (g Gates) Err() error {
	switch {
	case !g.FormatValid:
		return errors.NewConstraintError(errors.ConstraintValue, "duration bounds must be non-negative numbers and dates must be YYYY-MM-DD or RFC 3339")
	case !g.DateRangeValid:
		return errors.NewConstraintError(errors.ConstraintDateOrder, "start date must not be after end date")
	case !g.DurationRangeValid:
		return errors.NewConstraintError(errors.ConstraintDurationOrder, "minimum duration must not exceed maximum duration")
	}
	return nil
}

// Gates evaluates the validation gates of s.
func (s Set) Gates() Gates {
	g := Gates{DateRangeValid: true, DurationRangeValid: true, FormatValid: true}

	minDur, minOK := parseDuration(s.Get(KeyMinDuration))
	maxDur, maxOK := parseDuration(s.Get(KeyMaxDuration))
	if !minOK || !maxOK {
		g.FormatValid = false
	} else if s.Has(KeyMinDuration) && s.Has(KeyMaxDuration) && minDur > maxDur {
		g.DurationRangeValid = false
	}

	from, fromOK := ParseDate(s.Get(KeyDateFrom))
	to, toOK := ParseDate(s.Get(KeyDateTo))
	if !fromOK || !toOK {
		g.FormatValid = false
	} else if s.Has(KeyDateFrom) && s.Has(KeyDateTo) && from.After(to) {
		g.DateRangeValid = false
	}

	return g
}

// Promote is the apply transition: it returns staged as the new applied set
// when every gate holds, otherwise the failing constraint.
func Promote(staged Set) (Set, error) {
	if err := staged.Gates().Err(); err != nil {
		return Set{}, err
	}
	return staged, nil
}

// MinDuration returns the minimum duration bound in seconds, if set.
func (s Set) MinDuration() (float64, bool) {
	return boundOf(s.Get(KeyMinDuration))
}

// MaxDuration returns the maximum duration bound in seconds, if set.
func (s Set) MaxDuration() (float64, bool) {
	return boundOf(s.Get(KeyMaxDuration))
}

func boundOf(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	v, ok := parseDuration(value)
	return v, ok
}

// parseDuration accepts "" (unset) or a non-negative number of seconds.
func parseDuration(value string) (float64, bool) {
	if value == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

// ParseDate accepts "" (unset), a calendar date or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
