// gzio CLI entry point
//
// gzio reads and writes gzip-compressed JSON and UTF-8 text files:
// cat prints decompressed payloads, pack compresses files or stdin,
// and watch compresses files as they appear in a directory.
package main

import "github.com/jbctechsolutions/gzio/internal/presentation/cli/commands"

func main() {
	commands.Execute()
}
