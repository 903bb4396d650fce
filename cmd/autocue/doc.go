// Command autocue writes phrase cues around a hand-picked drop into a
// rekordbox XML export, one playlist at a time.
package main
