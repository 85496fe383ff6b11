package vcf

// StoredContact is one accepted contact with its sequential identifier.
type StoredContact struct {
	ID      int
	Contact *Contact
}

// Store is the ordered, append-only collection of accepted contacts.
// Identifiers are assigned densely from 0 in acceptance order; rejected
// records never consume one.
type Store struct {
	contacts []StoredContact
}

func NewStore() *Store {
	return &Store{}
}

// Append adds a contact and returns its identifier.
func (s *Store) Append(contact *Contact) int {
	id := len(s.contacts)
	s.contacts = append(s.contacts, StoredContact{ID: id, Contact: contact})
	return id
}

// All returns the contacts ordered by identifier.
func (s *Store) All() []StoredContact {
	return s.contacts
}

// Len returns the number of accepted contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}
