// Package layouts holds the page chrome shared by the server's HTML pages.
package layouts
