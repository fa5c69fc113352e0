package inline

import "strconv"

// TempPrefix starts the name of every return-value temporary.
const TempPrefix = "__retval"

// Context carries per-unit state of the call inliner. A fresh Context must
// be used for every compilation unit.
type Context struct {
	next    int
	renamed int
	// OnInline, when set, is told the name of every inlined function.
	OnInline func(name string)
}

func NewContext() *Context {
	return &Context{}
}

// Temp allocates the next temporary name. Names are never reused.
func (c *Context) Temp() string {
	name := TempPrefix + strconv.Itoa(c.next)
	c.next++
	return name
}

// Temps reports how many temporaries were allocated.
func (c *Context) Temps() int { return c.next }

// Rename allocates a fresh name for a declaration of name that would
// otherwise shadow a binding it must not see.
func (c *Context) Rename(name string) string {
	out := "__" + name + "_" + strconv.Itoa(c.renamed)
	c.renamed++
	return out
}
