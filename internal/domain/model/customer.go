package model

// CustomerDetails holds the shipping and contact information collected by the
// checkout form. All fields except Email are mandatory before submission.
type CustomerDetails struct {
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	Address    string
	City       string
	State      string
	PostalCode string
}

// FullName joins first and last name for gateway prefill and invoices.
func (d CustomerDetails) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Location is the normalised result of a postal-code lookup.
type Location struct {
	City  string
	State string
}
