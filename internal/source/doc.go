// Package source resolves the text a user wants processed. Text may come
// from command-line arguments, a file, standard input or a web page; web
// pages are reduced to their article text. The package also flags input
// that does not look like English.
package source
