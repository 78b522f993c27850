package fn

// FuncList collects cleanup functions of a multi-step construction so that a failing
// step can undo the steps that already succeeded.
type FuncList []func()

// Execute runs all added functions in reverse order they were added.
func (c FuncList) Execute() {
	for i := range c {
		c[len(c)-1-i]()
	}
}

// Disarm drops all functions, once the construction they guard has succeeded.
func (c *FuncList) Disarm() {
	*c = (*c)[:0]
}
