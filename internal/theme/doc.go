// Package theme manages the application's colour theme preference.
//
// A Store holds the active Theme (light, dark or system), persists it to a
// storage.Storage under a configurable key and notifies subscribers when it
// changes. A Resolver turns the preference into a concrete Appearance, and
// embedded palettes provide the lipgloss styles for each appearance.
package theme
