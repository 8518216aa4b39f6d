// Command smartfolder watches folders and runs an agentic workflow against
// whatever files land in them. See cmd.Execute for the command surface.
package main

import "github.com/smartfolder/smartfolder/cmd"

func main() {
	cmd.Execute()
}
