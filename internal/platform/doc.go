// Package platform hides the permission differences between Unix and Windows
// hosts from the copy code.
package platform
