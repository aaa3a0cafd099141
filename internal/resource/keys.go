package resource

import (
	"net/url"
	"strconv"
)

// Query holds list-query parameters. The zero value is the unfiltered "all
// records" query.
type Query struct {
	SearchText  string
	SearchField string
	Limit       int
	StartAfter  string
}

// Values encodes the query as request parameters. Zero-valued fields are
// omitted so logically identical queries produce identical encodings.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.SearchText != "" {
		v.Set("searchText", q.SearchText)
		field := q.SearchField
		if field == "" {
			field = "universal"
		}
		v.Set("searchField", field)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.StartAfter != "" {
		v.Set("startAfter", q.StartAfter)
	}
	return v
}

// Cache keys are derived deterministically from the resource name plus the
// sorted, stringified query parameters. url.Values.Encode sorts by key, so
// two logically identical queries always map to the same cache key.
//
// Layout:
//
//	<resource>:list              unfiltered snapshot (offline fallback source)
//	<resource>:list?<params>     one cached list variant
//	<resource>:id:<id>           a single record

func listKey(name string, q Query) string {
	v := q.Values()
	if len(v) == 0 {
		return name + ":list"
	}
	return name + ":list?" + v.Encode()
}

func listPrefix(name string) string {
	return name + ":list"
}

func idKey(name, id string) string {
	return name + ":id:" + id
}
