// Package command defines the commands accepted at the normalization prompt
// and handles parsing of commands from input sources.
package command

// Command is a valid command received from an input source.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as "SHOW",
	// "STEP", "ACCEPTS", or "QUIT". Some verbs may have shorthand forms which
	// are typed differently, for instance "LS" could be typed instead of
	// "SHOW", and for all those cases they would result in a Command with a
	// verb of SHOW.
	Verb string

	// Arg is the argument to the verb, if it takes one. For STEP it is the
	// stage name, for ACCEPTS it is the input string with its case kept as
	// typed, and for SHOW it is "ORIGINAL" or empty.
	Arg string
}

// String gives the command as it would be typed in canonical form.
func (c Command) String() string {
	if c.Arg == "" {
		return c.Verb
	}
	return c.Verb + " " + c.Arg
}
