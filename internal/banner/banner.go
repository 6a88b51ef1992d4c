// Package banner renders the CLI start-up banner.
package banner

import "fmt"

const art = `
 _ __   ___ _ __ _ __  _ __ ___ | |__   ___
| '_ \ / _ \ '__| '_ \| '__/ _ \| '_ \ / _ \
| | | |  __/ |  | |_) | | | (_) | |_) |  __/
|_| |_|\___|_|  | .__/|_|  \___/|_.__/ \___|
                |_|
`

// Banner returns the banner text for version.
func Banner(version string) string {
	return fmt.Sprintf("%s  linear NER probe %s\n\n", art, version)
}
