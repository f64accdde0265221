// Package ignore implements the follower's message ignore rules.
//
// A rule has the form "<la>,<opcode>", where either side may be "all".
// Rules accumulate into a Table that the message processor consults for
// every received message:
//
//	var t ignore.Table
//	if err := t.Apply("3,0x46"); err != nil { ... }
//	t.Ignored(3, 0x46) // true
package ignore
