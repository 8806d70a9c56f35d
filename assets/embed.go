// assets/embed.go
//
// Embedded default word list so the solver works with no configuration.
// Override with WORDLIST_FILE (see internal/words).
package assets

import _ "embed"

//go:embed wordlist.txt
var Wordlist string
