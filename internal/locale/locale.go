// Package locale holds the few user-facing strings that vary by language:
// short month names and the labels built from them.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Labels is a resolved set of localized strings.
type Labels struct {
	Tag           language.Tag
	months        [12]string
	customerSince string
	noInvoices    string
	noContact     string
}

var catalog = []Labels{
	{
		Tag:           language.English,
		months:        [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		customerSince: "Customer since %s %02d",
		noInvoices:    "No invoices",
		noContact:     "No contact",
	},
	{
		Tag:           language.Spanish,
		months:        [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sept", "Oct", "Nov", "Dic"},
		customerSince: "Cliente desde %s %02d",
		noInvoices:    "Sin facturas",
		noContact:     "Sin contacto",
	},
}

var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, len(catalog))
	for i, l := range catalog {
		tags[i] = l.Tag
	}

	return tags
}())

// Match returns the labels closest to the given BCP 47 locales, e.g. "es-ES" or
// "en-US,en;q=0.9". English is used when nothing matches.
func Match(locales ...string) *Labels {
	_, idx := language.MatchStrings(matcher, locales...)

	return &catalog[idx]
}

// Month returns the capitalized short name of m.
func (l *Labels) Month(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}

	return l.months[m-1]
}

// CustomerSince renders the "customer since" caption for a first invoice date.
// The zero time yields the no-invoices label.
func (l *Labels) CustomerSince(first time.Time) string {
	if first.IsZero() {
		return l.noInvoices
	}

	return fmt.Sprintf(l.customerSince, l.Month(first.Month()), first.Year()%100)
}

func (l *Labels) NoContact() string {
	return l.noContact
}
