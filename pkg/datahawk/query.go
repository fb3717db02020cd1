package datahawk

import (
	"net/url"
	"strconv"
)

type queryPair struct {
	key    string
	values []string
}

// Query holds query-string parameters for list operations. Unlike url.Values
// it preserves insertion order, and multi-value keys encode in repeat format
// (a=1&a=2), which is what the DataHawk API expects.
type Query struct {
	pairs []queryPair
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Set replaces all values for key. Empty value lists are dropped entirely so
// an unset parameter never reaches the wire.
func (q *Query) Set(key string, values ...string) *Query {
	if len(values) == 0 {
		return q
	}

	for i := range q.pairs {
		if q.pairs[i].key == key {
			q.pairs[i].values = values

			return q
		}
	}

	q.pairs = append(q.pairs, queryPair{key: key, values: values})

	return q
}

// Add appends values for key, keeping any existing ones.
func (q *Query) Add(key string, values ...string) *Query {
	if len(values) == 0 {
		return q
	}

	for i := range q.pairs {
		if q.pairs[i].key == key {
			q.pairs[i].values = append(q.pairs[i].values, values...)

			return q
		}
	}

	q.pairs = append(q.pairs, queryPair{key: key, values: values})

	return q
}

// WithPage sets the page parameter.
func (q *Query) WithPage(page int) *Query {
	return q.Set("page", strconv.Itoa(page))
}

// WithPerPage sets the per_page parameter.
func (q *Query) WithPerPage(perPage int) *Query {
	return q.Set("per_page", strconv.Itoa(perPage))
}

// WithOrderBy sets the order_by parameter. Prefix the field with "-" for
// descending order.
func (q *Query) WithOrderBy(field string) *Query {
	return q.Set("order_by", field)
}

// IsEmpty reports whether the query has no parameters.
func (q *Query) IsEmpty() bool {
	return q == nil || len(q.pairs) == 0
}

// Encode serializes the query in repeat-array format, preserving insertion
// order. It never emits a leading "?".
func (q *Query) Encode() string {
	if q.IsEmpty() {
		return ""
	}

	var buf []byte

	for _, pair := range q.pairs {
		escapedKey := url.QueryEscape(pair.key)
		for _, value := range pair.values {
			if len(buf) > 0 {
				buf = append(buf, '&')
			}

			buf = append(buf, escapedKey...)
			buf = append(buf, '=')
			buf = append(buf, url.QueryEscape(value)...)
		}
	}

	return string(buf)
}
