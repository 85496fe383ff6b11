package vcf

// Field is one canonical name/value pair of an assembled contact.
type Field struct {
	Name  string
	Value string
}

// Contact is an ordered mapping from canonical field name to value. Order is
// encounter order within the record; renaming a field (when a duplicate
// archives it under a numeric suffix) moves it to the end, matching how the
// fields surface in the exported documents.
type Contact struct {
	names  []string
	values map[string]string
}

// NewContact creates an empty contact record.
func NewContact() *Contact {
	return &Contact{values: make(map[string]string)}
}

// Set stores a value under a canonical name, replacing any existing value
// while keeping its original position.
func (c *Contact) Set(name, value string) {
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = value
}

// Append concatenates a continuation fragment onto an existing value. A
// fragment for an unknown name is dropped.
func (c *Contact) Append(name, fragment string) {
	if _, ok := c.values[name]; !ok {
		return
	}
	c.values[name] += fragment
}

// Get returns the value stored under a canonical name.
func (c *Contact) Get(name string) (string, bool) {
	value, ok := c.values[name]
	return value, ok
}

// Has reports whether the contact carries the given field.
func (c *Contact) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Rename moves a value from one canonical name to another. The renamed
// field is appended at the end of the order.
func (c *Contact) Rename(from, to string) {
	value, ok := c.values[from]
	if !ok {
		return
	}
	delete(c.values, from)
	for i, name := range c.names {
		if name == from {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	c.Set(to, value)
}

// Fields returns the contact's fields in order.
func (c *Contact) Fields() []Field {
	fields := make([]Field, 0, len(c.names))
	for _, name := range c.names {
		fields = append(fields, Field{Name: name, Value: c.values[name]})
	}
	return fields
}

// Len returns the number of fields.
func (c *Contact) Len() int {
	return len(c.names)
}
