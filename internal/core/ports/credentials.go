package ports

// Credentials decides how passwords are stored and compared.
type Credentials interface {
	// Seal turns a supplied password into its stored form.
	Seal(password string) (string, error)
	// Matches reports whether the supplied password matches the stored form.
	Matches(stored, supplied string) bool
}
