package gestures

import (
	"fmt"
	"sort"

	"github.com/swipetools/gesturectl/config"
)

// DelayEntry maps a minimum elapsed-hold time to the motion label whose rule
// should fire.
type DelayEntry struct {
	Delay  float64
	Motion string
}

// DelayTable is the precomputed hold lookup: per finger-count bucket ("" is
// the wildcard), delay entries sorted by descending threshold. Built once
// after configuration load, read-only afterwards.
type DelayTable map[string][]DelayEntry

// NewDelayTable derives the hold delay table from the configured hold rules.
// Finger-specific buckets inherit the wildcard entries as a baseline, then
// finger-specific delays are overlaid on top.
func NewDelayTable(rules []*config.Rule) DelayTable {
	table := make(DelayTable)

	for _, r := range rules {
		if r.Fingers == "" {
			table[""] = append(table[""], DelayEntry{Delay: r.HoldDelay, Motion: r.Motion})
		}
	}
	for _, r := range rules {
		if r.Fingers == "" {
			continue
		}
		if _, ok := table[r.Fingers]; !ok {
			table[r.Fingers] = append([]DelayEntry(nil), table[""]...)
		}
		table[r.Fingers] = overlay(table[r.Fingers], DelayEntry{Delay: r.HoldDelay, Motion: r.Motion})
	}

	for fingers := range table {
		sort.SliceStable(table[fingers], func(i, j int) bool {
			return table[fingers][i].Delay > table[fingers][j].Delay
		})
	}
	return table
}

// overlay replaces an inherited entry with the same delay, or adds a new one.
func overlay(entries []DelayEntry, e DelayEntry) []DelayEntry {
	for i := range entries {
		if entries[i].Delay == e.Delay {
			entries[i] = e
			return entries
		}
	}
	return append(entries, e)
}

// bucket returns the entries for a finger count, falling back to the
// wildcard bucket.
func (t DelayTable) bucket(fingers string) []DelayEntry {
	if entries, ok := t[fingers]; ok {
		return entries
	}
	return t[""]
}

// Hold is delay-tiered: the motion that fires is the configured entry with
// the largest delay threshold not exceeding the actual hold duration. Unlike
// swipe and pinch, hold is exempt from the global gesture timeout.
type Hold struct {
	gestureState
	table DelayTable
}

func NewHold(table DelayTable) *Hold {
	return &Hold{table: table}
}

// Update ignores the payload: hold gestures carry no motion data.
func (h *Hold) Update(fields []string) bool {
	return true
}

func (h *Hold) End() (string, bool) {
	elapsed := h.Elapsed().Seconds()
	h.Reset()

	entries := h.table.bucket(h.fingers)
	if len(entries) == 0 {
		if elapsed > 0 {
			// nothing configured for this finger count: report the raw
			// delay so thresholds can be tuned against verbose output
			return fmt.Sprintf("on+%.1f", elapsed), true
		}
		return "", false
	}

	for _, e := range entries {
		if e.Delay <= elapsed {
			return e.Motion, true
		}
	}
	return "", false
}
