// Package anim provides cooperative scheduling for banner presentation.
// All callbacks run on a single event loop; a Loop implementation decides
// how that loop is driven (a host toolkit main loop, a terminal program, or
// a virtual clock in tests).
package anim
