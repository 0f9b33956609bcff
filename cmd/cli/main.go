// textgrab extracts text from images and splits column text into two columns.
package main

import (
	"os"

	"github.com/ccollicutt/textgrab/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
