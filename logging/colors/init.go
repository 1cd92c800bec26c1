package colors

// init probes the console for ANSI support. Unix terminals always support it, Windows consoles need to be asked.
func init() {
	EnableColor()
}
