/*
Package cmdutil provides helpers shared by the kvgateway commands.
*/
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintError writes err to w prefixed with a red "Error:".
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.HiRedString("Error:"), err.Error())
}
