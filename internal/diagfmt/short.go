package diagfmt

import (
	"fmt"
	"io"

	"redux/internal/diag"
	"redux/internal/source"
)

// Short prints one line per diagnostic: <source-name>:<line>: <message>.
// This is the format other tools parse; it carries no color.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		if _, err := fmt.Fprintf(w, "%s:%d: %s\n", f.Path, fs.Line(d.Primary), d.Message); err != nil {
			return err
		}
	}
	return nil
}
