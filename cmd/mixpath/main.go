// Command mixpath builds harmonic playlists from track lists.
package main

import "github.com/katalvlaran/mixpath/internal/cli"

func main() {
	cli.Execute()
}
