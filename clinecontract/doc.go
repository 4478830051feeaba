// Package clinecontract pins down the external contract of the cline CLI:
// flag names, event discriminants and subtypes, the shapes of its debug log
// and task-creation announcements, and the locations its binary is
// installed to.
//
// Keeping these strings in one place means a CLI change is a one-file edit
// here rather than a hunt through the driver.
package clinecontract
