package gameplay

import "strings"

// SkippedID is returned in place of a row id when a reserved nickname is submitted.
const SkippedID = "skipped-ai-agent"

// NicknameSet is an immutable set of nicknames whose plays are never recorded.
// Matching is exact.
type NicknameSet struct {
	names map[string]struct{}
}

func NewNicknameSet(names ...string) NicknameSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		m[n] = struct{}{}
	}
	return NicknameSet{names: m}
}

func (s NicknameSet) Contains(nickname string) bool {
	_, ok := s.names[nickname]
	return ok
}
