// Package filter implements the dubbed-entry classification for simulcast
// calendar pages. It knows nothing about HTML: pages are reached through a
// TitleSource, containers through the Container capability.
package filter
