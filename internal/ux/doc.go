// Package ux renders conversion outcomes for the terminal.
//
// Output is styled with lipgloss using the brand palette, adapting to dark
// terminals. With color disabled every line is plain text, suitable for logs
// and pipes.
package ux
