package cms

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Query is a nested populate/filters object serialized with the
// nested-bracket encoding the CMS query parser expects, e.g.
// populate[broadcasters][populate][0]=avatar.
type Query map[string]interface{}

// Encode serializes the query deterministically (keys sorted at every level)
func (q Query) Encode() string {
	values := url.Values{}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flatten(k, q[k], values)
	}
	return values.Encode()
}

func flatten(prefix string, value interface{}, values url.Values) {
	switch t := value.(type) {
	case Query:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(prefix+"["+k+"]", t[k], values)
		}
	case map[string]interface{}:
		flatten(prefix, Query(t), values)
	case []string:
		for i, item := range t {
			values.Set(prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case []interface{}:
		for i, item := range t {
			flatten(prefix+"["+strconv.Itoa(i)+"]", item, values)
		}
	case string:
		values.Set(prefix, t)
	default:
		values.Set(prefix, fmt.Sprint(t))
	}
}
