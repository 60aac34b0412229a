package runtime

// collected is an insertion-ordered map of field values.
// Overwriting a key keeps its original slot.
type collected struct {
	keys   []string
	values map[string]any
}

func newCollected() *collected {
	return &collected{values: map[string]any{}}
}

func (c *collected) set(key string, value any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

func (c *collected) has(key string) bool {
	_, ok := c.values[key]
	return ok
}

func (c *collected) len() int { return len(c.keys) }

func (c *collected) names() []string {
	return append([]string{}, c.keys...)
}

// snapshot returns a shallow copy of the values.
func (c *collected) snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
