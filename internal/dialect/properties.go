package dialect

import (
	"sort"

	"github.com/spf13/cast"
)

// Property keys consumed by the connection layer.
const (
	PropUseStreamsForBinary = "use_streams_for_binary"
	PropStatementBatchSize  = "statement_batch_size"
)

// DefaultBatchSize is the statement batch size a dialect advertises when it
// enables batching.
const DefaultBatchSize = 15

// Properties is a dialect's default configuration, keyed by lower-case name.
type Properties map[string]string

// Merge returns a copy of p with overrides applied on top.
func (p Properties) Merge(overrides map[string]string) Properties {
	out := make(Properties, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func (p Properties) Int(key string, fallback int) int {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fallback
	}
	return n
}

func (p Properties) Bool(key string, fallback bool) bool {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}
	return b
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
