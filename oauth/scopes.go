package oauth

import (
	"sort"
	"strings"
)

type Scope string

const (
	ScopeCommentList       Scope = "comment.list"
	ScopeCommentListManage Scope = "comment.list.manage"
	ScopeResearchAdlib     Scope = "research.adlib.basic"
	ScopeResearchData      Scope = "research.data.basic"
	ScopeUserAccountType   Scope = "user.account.type"
	ScopeUserInfoBasic     Scope = "user.info.basic"
	ScopeUserInfoProfile   Scope = "user.info.profile"
	ScopeUserInfoStats     Scope = "user.info.stats"
	ScopeUserInfoUsername  Scope = "user.info.username"
	ScopeUserInsights      Scope = "user.insights"
	ScopeVideoInsights     Scope = "video.insights"
	ScopeVideoList         Scope = "video.list"
	ScopeVideoPublish      Scope = "video.publish"
	ScopeVideoUpload       Scope = "video.upload"
)

func (s Scope) String() string {
	return string(s)
}

// AllScopes lists every scope the Business API grants.
func AllScopes() []Scope {
	return []Scope{
		ScopeCommentList,
		ScopeCommentListManage,
		ScopeResearchAdlib,
		ScopeResearchData,
		ScopeUserAccountType,
		ScopeUserInfoBasic,
		ScopeUserInfoProfile,
		ScopeUserInfoStats,
		ScopeUserInfoUsername,
		ScopeUserInsights,
		ScopeVideoInsights,
		ScopeVideoList,
		ScopeVideoPublish,
		ScopeVideoUpload,
	}
}

// AccountScopes is the set a business account integration normally requests.
func AccountScopes() []Scope {
	return []Scope{
		ScopeCommentList,
		ScopeCommentListManage,
		ScopeUserAccountType,
		ScopeUserInfoBasic,
		ScopeUserInfoStats,
		ScopeUserInfoUsername,
		ScopeUserInsights,
		ScopeVideoInsights,
		ScopeVideoList,
		ScopeVideoPublish,
	}
}

// ParseScope trims, lowercases and drops a "tiktok:" prefix.
func ParseScope(raw string) Scope {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimPrefix(value, "tiktok:")
	return Scope(strings.TrimSpace(value))
}

// ParseScopes splits a comma or space separated scope list as returned in
// token responses. Duplicates and blanks are dropped; order is preserved.
func ParseScopes(raw string) []Scope {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	seen := map[Scope]struct{}{}
	out := make([]Scope, 0, len(fields))
	for _, field := range fields {
		scope := ParseScope(field)
		if scope == "" {
			continue
		}
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		out = append(out, scope)
	}
	return out
}

func ScopesFromStrings(values []string) []Scope {
	return ParseScopes(strings.Join(values, ","))
}

// JoinScopes renders scopes comma separated in the given order.
func JoinScopes(scopes []Scope) string {
	parts := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if scope == "" {
			continue
		}
		parts = append(parts, string(scope))
	}
	return strings.Join(parts, ",")
}

// MissingScopes returns the requested scopes absent from granted, sorted.
func MissingScopes(requested []Scope, granted []Scope) []Scope {
	have := map[Scope]struct{}{}
	for _, scope := range granted {
		have[scope] = struct{}{}
	}
	var missing []Scope
	for _, scope := range requested {
		if _, ok := have[scope]; !ok {
			missing = append(missing, scope)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
