package importer

// Profile describes the header layout of a customer CSV export.
// Each field lists the accepted header names for that column, compared case-insensitively.
type Profile struct {
	Name        string
	CompanyName []string
	TaxID       []string
	Address     []string
	Email       []string
	Phone       []string
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:        "billkerfy",
		CompanyName: []string{"companyName", "company_name"},
		TaxID:       []string{"taxId", "tax_id"},
		Address:     []string{"address"},
		Email:       []string{"email"},
		Phone:       []string{"phone"},
	},
	{
		Name:        "es",
		CompanyName: []string{"Razón social", "Empresa", "Nombre"},
		TaxID:       []string{"NIF", "CIF", "RFC", "RUT", "NIT"},
		Address:     []string{"Dirección", "Domicilio"},
		Email:       []string{"Correo", "Correo electrónico", "Email"},
		Phone:       []string{"Teléfono", "Telefono"},
	},
	{
		Name:        "en",
		CompanyName: []string{"Company", "Company name", "Name"},
		TaxID:       []string{"Tax ID", "VAT", "VAT number"},
		Address:     []string{"Address"},
		Email:       []string{"Email", "E-mail"},
		Phone:       []string{"Phone", "Telephone"},
	},
}
