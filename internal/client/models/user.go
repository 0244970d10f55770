package models

import "strings"

// Record is one user as served by the remote API and held in the cache.
// Records are treated as values: an update replaces the record with the same
// identity.
type Record struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Website  string   `json:"website,omitempty"`
	Address  *Address `json:"address,omitempty"`
	Company  Company  `json:"company"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// Field returns the value of a sortable field by its JSON name. Identities
// come back as int64 when integer-valued; every other field is a string.
// Nested fields are addressed as "company.name" or "address.city"; "company"
// and "city" are accepted as shorthands.
func (r Record) Field(name string) (any, bool) {
	switch strings.ToLower(name) {
	case "id":
		if n, ok := r.ID.Int(); ok {
			return n, true
		}
		return r.ID.String(), true
	case "name":
		return r.Name, true
	case "username":
		return r.Username, true
	case "email":
		return r.Email, true
	case "phone":
		return r.Phone, true
	case "website":
		return r.Website, true
	case "company", "company.name":
		return r.Company.Name, true
	case "city", "address.city":
		if r.Address == nil {
			return "", true
		}
		return r.Address.City, true
	default:
		return nil, false
	}
}

// Patch carries a partial update. Nil fields are left untouched; a non-nil
// Company or Address replaces the nested object as a whole.
type Patch struct {
	Name     *string  `json:"name,omitempty"`
	Username *string  `json:"username,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Website  *string  `json:"website,omitempty"`
	Address  *Address `json:"address,omitempty"`
	Company  *Company `json:"company,omitempty"`
}

// Apply returns r with the patch merged in. The identity of r is preserved.
func (p Patch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Username != nil {
		r.Username = *p.Username
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Website != nil {
		r.Website = *p.Website
	}
	if p.Address != nil {
		a := *p.Address
		r.Address = &a
	}
	if p.Company != nil {
		r.Company = *p.Company
	}
	return r
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r.Address != nil {
		a := *r.Address
		r.Address = &a
	}
	return r
}

// FindByID returns the first record with the given identity.
func FindByID(records []Record, id ID) (Record, bool) {
	for _, r := range records {
		if r.ID.Equal(id) {
			return r, true
		}
	}
	return Record{}, false
}
