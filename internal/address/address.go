// Package address turns raw geocoder door strings into canonical
// street addresses.
package address

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	trailingNumber = regexp.MustCompile(`\s\d+.*$`)
	doorNumber     = regexp.MustCompile(`\s(\d+)(?:\s|$)`)
	avenueSuffix   = regexp.MustCompile(`^(.+) AV\.?$`)
	commaForm      = regexp.MustCompile(`^(.+), (.+)$`)
)

// Parts splits a door string into its street name and street number. The
// number is the first run of digits bounded by whitespace; the name is
// everything before the trailing numeric text. The number may be empty.
func Parts(door string) (name, number string) {
	name = trailingNumber.ReplaceAllString(door, "")
	if m := doorNumber.FindStringSubmatch(door); m != nil {
		number = m[1]
	}
	return name, number
}

// NormalizeStreet rewrites an abbreviated avenue marker to its full
// "Avenida" form, inverts "suffix, prefix" comma names, and title-cases
// the result word by word.
func NormalizeStreet(name string) string {
	name = avenueSuffix.ReplaceAllString(name, "Avenida $1")
	name = commaForm.ReplaceAllString(name, "$2 $1")
	name = strings.ToLower(name)
	// A Caser is stateful, so build one per call.
	return cases.Title(language.Spanish).String(name)
}

// FromDoor composes the final address for a door string. An empty result
// means the door carried nothing usable.
func FromDoor(door string) string {
	name, number := Parts(door)
	return strings.TrimSpace(NormalizeStreet(name) + " " + number)
}
