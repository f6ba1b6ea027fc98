package library

import "regexp"

var (
	// local@domain.tld with word/dot/hyphen characters on both sides.
	emailRx = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	// 10 or 13 digits (13 starts with 978/979, last may be X), or
	// hyphen-delimited groups with a final digit-or-X check character.
	isbnRx = regexp.MustCompile(`^(97[89])?\d{9}(\d|X)$|^\d{1,5}-\d{1,7}-\d{1,7}-[\dX]$`)
)

func validateEmail(email string) error {
	if !emailRx.MatchString(email) {
		return validationErr("email", "must look like local@domain.tld")
	}
	return nil
}

func validateISBN(isbn string) error {
	if !isbnRx.MatchString(isbn) {
		return validationErr("isbn", "must be a 10 or 13 digit ISBN, plain or hyphenated")
	}
	return nil
}

// compileFilter builds the case-insensitive pattern used by the list
// filters. An empty pattern means no filtering and yields a nil regexp.
func compileFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	rgx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, validationErr("filter", "not a valid pattern")
	}
	return rgx, nil
}
