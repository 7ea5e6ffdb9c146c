package types

// Metadata is a map of key-value pairs attached to domain records
type Metadata map[string]string

// Merge combines the current metadata with other, other takes precedence
func (m Metadata) Merge(other Metadata) Metadata {
	if m == nil {
		m = Metadata{}
	}
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Copy returns a shallow copy of the metadata
func (m Metadata) Copy() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
