package greeting

import "fmt"

// Personalized returns the greeting for name. The name is inserted verbatim.
func Personalized(name string) string {
	return fmt.Sprintf(personalizedFormat, name)
}
